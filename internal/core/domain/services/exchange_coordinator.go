package services

import (
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
)

// ExchangeCoordinator creates and completes exchange pairs.
type ExchangeCoordinator struct{}

func NewExchangeCoordinator() ExchangeCoordinator {
	return ExchangeCoordinator{}
}

// Create prices the replacement exactly like an ordinary booking of the
// original parcel's weight and returns the two linked legs.
func (ExchangeCoordinator) Create(
	original *parcel.Parcel,
	brand *user.User,
	order parcel.ExchangeOrder,
	outboundTrackingNumber parcel.TrackingNumber,
	actor parcel.Actor,
	at time.Time,
) (parcel.ExchangePair, error) {
	if err := original.Validate(); err != nil {
		return parcel.ExchangePair{}, err
	}
	quote, err := brand.Quote(original.Weight())
	if err != nil {
		return parcel.ExchangePair{}, err
	}
	return parcel.NewExchangePair(original, brand, order, quote, outboundTrackingNumber, actor, at)
}

// Complete applies "delivered & exchange collected" to both legs or to neither.
func (ExchangeCoordinator) Complete(outbound, ret *parcel.Parcel, actor parcel.Actor, notes string, at time.Time) error {
	return parcel.CompleteExchange(outbound, ret, actor, notes, at)
}
