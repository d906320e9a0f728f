package repository

import (
	"context"
	"time"

	"attendance-service/internal/domain/entity"
)

// ScheduleRepository defines the persistence contract for schedules.
// Find methods return (nil, nil) when no row matches.
type ScheduleRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Schedule, error)
	FindByIDAndGuildID(ctx context.Context, id uint, guildID string) (*entity.Schedule, error)
	// FindActiveByGuildID returns active schedules ordered by start time descending.
	FindActiveByGuildID(ctx context.Context, guildID string) ([]*entity.Schedule, error)
	FindByEndTimeBefore(ctx context.Context, threshold time.Time) ([]*entity.Schedule, error)
	// Save inserts or updates the schedule and its crew association,
	// assigning the id on first insert.
	Save(ctx context.Context, schedule *entity.Schedule) (*entity.Schedule, error)
	Delete(ctx context.Context, id uint) error
	CountActiveByGuildID(ctx context.Context, guildID string) (int64, error)
}
