package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// BulkOutcome is the result for one parcel of a bulk transition.
type BulkOutcome struct {
	ParcelID kernel.UUID
	Parcel   *parcel.Parcel
	Err      error
}

// BulkResult lists outcomes in request order.
type BulkResult struct {
	Outcomes []BulkOutcome
}

func (r BulkResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

func (r BulkResult) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// BulkTransitionCommandHandler runs one single-parcel transition per id.
// Each parcel is committed on its own, so one rejected parcel never blocks
// the rest of the batch.
//
// Example:
//
//	handler := NewBulkTransitionCommandHandler(uowFactory)
//	cmd, _ := NewBulkTransitionCommand(actorID, ids, parcel.OutForDelivery, TransitionInput{DriverID: &driverID})
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("%d moved, %d rejected", result.Succeeded(), result.Failed())
type BulkTransitionCommandHandler struct {
	single TransitionParcelCommandHandler
}

// NewBulkTransitionCommandHandler creates a bulk handler backed by the
// single-parcel transition handler.
func NewBulkTransitionCommandHandler(uowFactory ParcelUoWFactory) BulkTransitionCommandHandler {
	return BulkTransitionCommandHandler{single: NewTransitionParcelCommandHandler(uowFactory)}
}

// Handle never fails as a whole once the command is valid; per-parcel errors
// are reported in the result. A cancelled context stops the remaining items,
// which are reported with the context error.
func (h BulkTransitionCommandHandler) Handle(ctx context.Context, command BulkTransitionCommand) (BulkResult, error) {
	if err := command.Validate(); err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{Outcomes: make([]BulkOutcome, 0, len(command.parcelIDs))}
	for _, id := range command.parcelIDs {
		if err := ctx.Err(); err != nil {
			result.Outcomes = append(result.Outcomes, BulkOutcome{ParcelID: id, Err: err})
			continue
		}

		single, err := NewTransitionParcelCommand(command.actorID, id, command.target, command.input)
		if err != nil {
			result.Outcomes = append(result.Outcomes, BulkOutcome{ParcelID: id, Err: err})
			continue
		}
		p, err := h.single.Handle(ctx, single)
		result.Outcomes = append(result.Outcomes, BulkOutcome{ParcelID: id, Parcel: p, Err: err})
	}
	return result, nil
}
