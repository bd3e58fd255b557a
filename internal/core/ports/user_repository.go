package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// UserRepository persists users and the driver duty log.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	// Get returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	FindByRole(ctx context.Context, role user.Role) ([]*user.User, error)

	// AppendDutyLog stores one on/off duty switch.
	AppendDutyLog(ctx context.Context, entry user.DutyLogEntry) error

	// UpdateLocation writes only the driver's last known position.
	UpdateLocation(ctx context.Context, driverID kernel.UUID, at kernel.GeoPoint, seenAt time.Time) error
}
