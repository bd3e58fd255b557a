package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/user"
)

// SetDriverDutyCommandHandler toggles duty and appends the duty log. Drivers
// switch themselves; warehouse and admin may switch anyone.
type SetDriverDutyCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewSetDriverDutyCommandHandler creates a handler for duty toggles.
func NewSetDriverDutyCommandHandler(uowFactory UserUoWFactory) SetDriverDutyCommandHandler {
	return SetDriverDutyCommandHandler{uowFactory: uowFactory}
}

func (h SetDriverDutyCommandHandler) Handle(ctx context.Context, command SetDriverDutyCommand) (*user.User, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	driver, actor, err := resolveActor(ctx, users, command.actorID)
	if err != nil {
		return nil, err
	}
	if !actor.ID.IsEqual(command.driverID) {
		if err = requireRole(actor, user.RoleAdmin, user.RoleWarehouse); err != nil {
			return nil, err
		}
		if driver, err = users.Get(ctx, command.driverID); err != nil {
			return nil, err
		}
	}
	entry, err := driver.SetDuty(command.onDuty, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return driver, nil
	}

	if err = users.Update(ctx, driver); err != nil {
		return nil, err
	}
	if err = users.AppendDutyLog(ctx, *entry); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return driver, nil
}
