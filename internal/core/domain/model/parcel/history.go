package parcel

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/core/domain/model/user"
)

// HistoryEvent is one append-only entry of a parcel's audit trail.
// Proof is an opaque reference (e.g. an image payload) stored verbatim.
type HistoryEvent struct {
	ID         kernel.UUID
	Status     Status
	At         time.Time
	ActorID    kernel.UUID
	ActorName  string
	Notes      string
	ReasonCode string
	Proof      string
}

// TransitionDetails carries the target-specific inputs of a transition.
type TransitionDetails struct {
	// Zone is required when checking a parcel in at the hub.
	Zone string
	// Driver is the driver being assigned (dispatch, pickup or return on behalf of a driver).
	Driver *user.User
	// Quote re-prices the parcel from the verified hub weight.
	Quote *pricing.Quote
	// ReasonCode and Proof are required for failed or refused deliveries.
	ReasonCode string
	Proof      string
	Notes      string
}
