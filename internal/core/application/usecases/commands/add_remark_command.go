package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrAddRemarkCommandIsNotConstructed = errors.New(
	"AddRemarkCommand must be created via NewAddRemarkCommand constructor",
)

// AddRemarkCommand appends a note to a parcel's history without changing its status.
type AddRemarkCommand struct {
	actorID  kernel.UUID
	parcelID kernel.UUID
	remark   string

	guard guard.ConstructorGuard
}

func NewAddRemarkCommand(actorID, parcelID kernel.UUID, remark string) (AddRemarkCommand, error) {
	if err := errors.Join(actorID.Validate(), parcelID.Validate()); err != nil {
		return AddRemarkCommand{}, err
	}
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return AddRemarkCommand{}, parcel.ErrRemarkIsRequired
	}
	return AddRemarkCommand{actorID: actorID, parcelID: parcelID, remark: remark, guard: guard.NewConstructorGuard()}, nil
}

func (c AddRemarkCommand) Remark() string {
	return c.remark
}

func (c AddRemarkCommand) Validate() error {
	return c.guard.Validate(ErrAddRemarkCommandIsNotConstructed)
}
