package userrepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the profile. The last known location is owned by
// UpdateLocation and left untouched.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "location_lat", "location_lng", "location_seen_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate(result.Error, "user", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, pgerrs.Translate(err, "user", id.String())
	}

	return toDomain(dto)
}

// FindByRole lists users of one role ordered by name.
func (r *GormUserRepository) FindByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Where("role = ?", role.String()).Order("name").Find(&dtos).Error; err != nil {
		return nil, pgerrs.Translate(err, "users", role.String())
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *GormUserRepository) AppendDutyLog(ctx context.Context, entry user.DutyLogEntry) error {
	if err := entry.DriverID.Validate(); err != nil {
		return err
	}

	dto := DutyLogDTO{DriverID: entry.DriverID.Bytes(), OnDuty: entry.OnDuty, At: entry.At}
	return pgerrs.Translate(r.db.WithContext(ctx).Create(&dto).Error, "duty log", entry.DriverID.String())
}

// UpdateLocation overwrites a driver's last known position without loading
// the aggregate.
func (r *GormUserRepository) UpdateLocation(ctx context.Context, driverID kernel.UUID, at kernel.GeoPoint, seenAt time.Time) error {
	if err := errors.Join(driverID.Validate(), at.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ? AND role = ?", driverID.Bytes(), user.RoleDriver.String()).
		Updates(map[string]any{
			"location_lat":     at.Lat(),
			"location_lng":     at.Lng(),
			"location_seen_at": seenAt,
		})
	if result.Error != nil {
		return pgerrs.Translate(result.Error, "driver", driverID.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", driverID.String())
	}
	return nil
}
