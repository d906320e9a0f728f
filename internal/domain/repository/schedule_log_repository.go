package repository

import (
	"context"

	"attendance-service/internal/domain/entity"
)

// ScheduleLogRepository defines the audit trail contract.
type ScheduleLogRepository interface {
	Append(ctx context.Context, log *entity.ScheduleLog) error
	FindByScheduleID(ctx context.Context, scheduleID uint) ([]*entity.ScheduleLog, error)
}
