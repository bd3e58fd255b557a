package parcel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"parcelhub/internal/pkg/errs"
)

const returnTrackingPrefix = "RTN-"

var primaryTrackingPattern = regexp.MustCompile(`^SD[0-9]{4}$`)

// TrackingNumber is the human-facing parcel reference: SD#### for primary
// parcels and RTN-<outbound> for exchange return legs. Uniqueness is checked
// against the store at booking time, not by construction.
type TrackingNumber string

// NewRandomTrackingNumber draws a primary tracking number.
func NewRandomTrackingNumber() TrackingNumber {
	return TrackingNumber(fmt.Sprintf("SD%04d", rand.IntN(10000))) //nolint:gosec // not a secret
}

// ReturnTrackingNumber derives the return leg reference of an exchange.
func ReturnTrackingNumber(outbound TrackingNumber) TrackingNumber {
	return TrackingNumber(returnTrackingPrefix + string(outbound))
}

// ParseTrackingNumber validates either format.
func ParseTrackingNumber(s string) (TrackingNumber, error) {
	tn := TrackingNumber(strings.ToUpper(strings.TrimSpace(s)))
	if err := tn.Validate(); err != nil {
		return "", err
	}
	return tn, nil
}

func (t TrackingNumber) Validate() error {
	s := string(t)
	if strings.HasPrefix(s, returnTrackingPrefix) {
		s = strings.TrimPrefix(s, returnTrackingPrefix)
	}
	if !primaryTrackingPattern.MatchString(s) {
		return errs.NewValueIsInvalidErrorWithCause("tracking number", fmt.Errorf("%q does not match SD####", string(t)))
	}
	return nil
}

func (t TrackingNumber) IsReturnLeg() bool {
	return strings.HasPrefix(string(t), returnTrackingPrefix)
}

func (t TrackingNumber) String() string {
	return string(t)
}
