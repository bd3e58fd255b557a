package parcel

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// Actor is the resolved user a change is attributed to.
type Actor struct {
	ID   kernel.UUID
	Name string
	Role user.Role
	// Inactive blocks a driver from taking new work for themselves.
	Inactive bool
}

// ActorFromUser attributes an action to a loaded user record.
func ActorFromUser(u *user.User) Actor {
	return Actor{ID: u.ID(), Name: u.Name(), Role: u.Role(), Inactive: !u.IsActive()}
}

func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	if a.Name == "" {
		return errs.NewValueIsRequiredError("actor name")
	}
	return a.Role.Validate()
}
