package kernel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

const (
	latitudeMin  = -90.0
	latitudeMax  = 90.0
	longitudeMin = -180.0
	longitudeMax = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 position reported by a driver's device.
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates the coordinate ranges.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < latitudeMin || lat > latitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, latitudeMin, latitudeMax)
	}
	if lng < longitudeMin || lng > longitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lng, longitudeMin, longitudeMax)
	}
	return GeoPoint{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}
