package commands

import (
	"context"
	"fmt"
	"slices"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// resolveActor loads the acting user so actions are attributed to a display name and role.
func resolveActor(ctx context.Context, users ports.UserRepository, actorID kernel.UUID) (*user.User, parcel.Actor, error) {
	u, err := users.Get(ctx, actorID)
	if err != nil {
		return nil, parcel.Actor{}, err
	}
	return u, parcel.ActorFromUser(u), nil
}

func requireRole(actor parcel.Actor, roles ...user.Role) error {
	if slices.Contains(roles, actor.Role) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("actor",
		fmt.Errorf("role %s may not perform this operation", actor.Role))
}
