// Package outboxrepo stores change events written alongside aggregate changes
// and hands them to the relay.
package outboxrepo

import (
	"context"
	"time"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxEventDTO is one outbox_events row. PublishedAt stays NULL until the
// relay has delivered the event.
type OutboxEventDTO struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	AggregateType string     `gorm:"type:varchar(64);not null"`
	AggregateID   string     `gorm:"type:varchar(64);not null;index"`
	EventType     string     `gorm:"type:varchar(64);not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	OccurredAt    time.Time  `gorm:"not null"`
	PublishedAt   *time.Time `gorm:"index"`
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append writes new events. It runs on the caller's transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxEventDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, OutboxEventDTO{
			AggregateType: m.AggregateType,
			AggregateID:   m.AggregateID,
			EventType:     m.EventType,
			Payload:       m.Payload,
			OccurredAt:    m.OccurredAt,
		})
	}
	return pgerrs.Translate(r.db.WithContext(ctx).Create(&dtos).Error, "outbox", "")
}

// FetchUnpublished locks the oldest unpublished events. Rows locked by another
// relay are skipped.
func (r *GormOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrs.Translate(err, "outbox", "")
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:            dto.ID,
			AggregateType: dto.AggregateType,
			AggregateID:   dto.AggregateID,
			EventType:     dto.EventType,
			Payload:       dto.Payload,
			OccurredAt:    dto.OccurredAt.UTC(),
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&OutboxEventDTO{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
	return pgerrs.Translate(err, "outbox", "")
}
