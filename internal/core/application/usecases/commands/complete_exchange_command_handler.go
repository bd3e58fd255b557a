package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"
)

// CompleteExchangeCommandHandler writes both legs of the composite transition
// in one transaction.
//
// Example:
//
//	handler := NewCompleteExchangeCommandHandler(uowFactory)
//	cmd, _ := NewCompleteExchangeCommand(driverID, outboundID, "old item checked")
//	pair, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrTransitionIsNotAllowed):
//	    log.Printf("exchange cannot complete: %v", err)
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("%s delivered, %s picked up", pair.Outbound.TrackingNumber(), pair.Return.TrackingNumber())
//	}
type CompleteExchangeCommandHandler struct {
	uowFactory  ParcelUoWFactory
	coordinator services.ExchangeCoordinator
}

// NewCompleteExchangeCommandHandler creates a handler for the
// "delivered & exchange collected" step.
func NewCompleteExchangeCommandHandler(uowFactory ParcelUoWFactory) CompleteExchangeCommandHandler {
	return CompleteExchangeCommandHandler{uowFactory: uowFactory, coordinator: services.NewExchangeCoordinator()}
}

// Handle loads the outbound leg and its linked return leg, moves both and
// persists them together. A driver actor must be the outbound leg's
// delivery driver.
func (h CompleteExchangeCommandHandler) Handle(ctx context.Context, command CompleteExchangeCommand) (parcel.ExchangePair, error) {
	if err := command.Validate(); err != nil {
		return parcel.ExchangePair{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return parcel.ExchangePair{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, uow.UserRepository(), command.actorID)
	if err != nil {
		return parcel.ExchangePair{}, err
	}

	outbound, err := parcels.Get(ctx, command.outboundID)
	if err != nil {
		return parcel.ExchangePair{}, err
	}
	if outbound.LinkedParcelID() == nil {
		return parcel.ExchangePair{}, errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is not part of an exchange", outbound.TrackingNumber()))
	}
	ret, err := parcels.Get(ctx, *outbound.LinkedParcelID())
	if err != nil {
		return parcel.ExchangePair{}, err
	}

	if err = h.coordinator.Complete(outbound, ret, actor, command.notes, time.Now().UTC()); err != nil {
		return parcel.ExchangePair{}, err
	}

	if err = parcels.Update(ctx, outbound); err != nil {
		return parcel.ExchangePair{}, err
	}
	if err = parcels.Update(ctx, ret); err != nil {
		return parcel.ExchangePair{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return parcel.ExchangePair{}, err
	}
	return parcel.ExchangePair{Outbound: outbound, Return: ret}, nil
}
