package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/pkg/guard"
)

var ErrRecordSalaryPaymentCommandIsNotConstructed = errors.New(
	"RecordSalaryPaymentCommand must be created via NewRecordSalaryPaymentCommand constructor",
)

// RecordSalaryPaymentCommand pays a user's computed salary for one period.
type RecordSalaryPaymentCommand struct {
	actorID kernel.UUID
	userID  kernel.UUID
	period  salary.Period

	guard guard.ConstructorGuard
}

func NewRecordSalaryPaymentCommand(actorID, userID kernel.UUID, period salary.Period) (RecordSalaryPaymentCommand, error) {
	if err := errors.Join(actorID.Validate(), userID.Validate()); err != nil {
		return RecordSalaryPaymentCommand{}, err
	}
	if _, err := salary.NewPeriod(period.Start, period.End); err != nil {
		return RecordSalaryPaymentCommand{}, err
	}
	return RecordSalaryPaymentCommand{
		actorID: actorID,
		userID:  userID,
		period:  period,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RecordSalaryPaymentCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RecordSalaryPaymentCommand) Period() salary.Period {
	return c.period
}

func (c RecordSalaryPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordSalaryPaymentCommandIsNotConstructed)
}
