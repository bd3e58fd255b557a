package parcel

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota
	Booked
	PickedUp
	AtHub
	OutForDelivery
	Delivered
	DeliveryFailed
	CustomerRefused
	PendingDelivery
	PendingReturn
	OutForReturn
	Returned
	Canceled
	Lost
	Damaged
	Fraudulent
	Solved
	PendingExchangePickup
)

var statusNames = map[Status]string{
	Unknown:               "UNKNOWN",
	Booked:                "BOOKED",
	PickedUp:              "PICKED_UP",
	AtHub:                 "AT_HUB",
	OutForDelivery:        "OUT_FOR_DELIVERY",
	Delivered:             "DELIVERED",
	DeliveryFailed:        "DELIVERY_FAILED",
	CustomerRefused:       "CUSTOMER_REFUSED",
	PendingDelivery:       "PENDING_DELIVERY",
	PendingReturn:         "PENDING_RETURN",
	OutForReturn:          "OUT_FOR_RETURN",
	Returned:              "RETURNED",
	Canceled:              "CANCELED",
	Lost:                  "LOST",
	Damaged:               "DAMAGED",
	Fraudulent:            "FRAUDULENT",
	Solved:                "SOLVED",
	PendingExchangePickup: "PENDING_EXCHANGE_PICKUP",
}

var terminalStatuses = map[Status]struct{}{
	Delivered:  {},
	Returned:   {},
	Canceled:   {},
	Lost:       {},
	Damaged:    {},
	Fraudulent: {},
	Solved:     {},
}

// ParseStatus maps the persisted / wire name back to a Status.
func ParseStatus(name string) (Status, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for s, str := range statusNames {
		if s != Unknown && str == n {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return statusNames[Unknown]
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further status transitions are defined.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// IsFailure reports whether the status records a failed delivery attempt.
func (s Status) IsFailure() bool {
	return s == DeliveryFailed || s == CustomerRefused
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(statusNames)-1)
	for s := Booked; s <= PendingExchangePickup; s++ {
		out = append(out, s)
	}
	return out
}
