package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"attendance-service/internal/domain/entity"
	"attendance-service/internal/domain/repository"
	"attendance-service/pkg/apperrors"
	"attendance-service/pkg/logger"
	"attendance-service/pkg/metrics"
	"attendance-service/templates"
)

// DefaultCleanupThresholdDays is how old a closed schedule must be
// before the maintenance job removes it.
const DefaultCleanupThresholdDays = 30

// ScheduleUseCase orchestrates the mission lifecycle
type ScheduleUseCase struct {
	scheduleRepo repository.ScheduleRepository
	logRepo      repository.ScheduleLogRepository
	notifier     repository.NotificationRepository
	userUseCase  *UserUseCase
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewScheduleUseCase creates a new schedule use case
func NewScheduleUseCase(
	scheduleRepo repository.ScheduleRepository,
	logRepo repository.ScheduleLogRepository,
	notifier repository.NotificationRepository,
	userUseCase *UserUseCase,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		scheduleRepo: scheduleRepo,
		logRepo:      logRepo,
		notifier:     notifier,
		userUseCase:  userUseCase,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateScheduleParams carries the input for CreateSchedule.
type CreateScheduleParams struct {
	GuildID         string
	Title           string
	Aircraft        entity.AircraftType
	Mission         entity.MissionType
	CreatorID       string
	CreatorUsername string
	ActionSubType   entity.ActionSubType
	ActionOption    string
	// Description is the free text required for OUTROS missions.
	Description string
}

// CreateSchedule validates params, builds the aggregate and persists
// it. The returned schedule carries its assigned id.
func (uc *ScheduleUseCase) CreateSchedule(ctx context.Context, p CreateScheduleParams) (*entity.Schedule, error) {
	const op = "failed to create schedule"

	// The entity validates this too; checking here keeps a malformed
	// OUTROS request from ever reaching construction.
	if p.Mission == entity.MissionOutros && strings.TrimSpace(p.Description) == "" {
		return nil, uc.fail(op, apperrors.Validation("Description is required for OUTROS missions"))
	}

	schedule, err := entity.NewSchedule(entity.NewScheduleParams{
		GuildID:           p.GuildID,
		Title:             p.Title,
		Aircraft:          p.Aircraft,
		Mission:           p.Mission,
		ActionSubType:     p.ActionSubType,
		ActionOption:      p.ActionOption,
		OutrosDescription: p.Description,
		CreatedByID:       p.CreatorID,
		CreatedByUsername: p.CreatorUsername,
	})
	if err != nil {
		return nil, uc.fail(op, err)
	}

	saved, err := uc.scheduleRepo.Save(ctx, schedule)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.metrics.SchedulesCreated.Inc()
	uc.logger.Info("Created schedule", "scheduleId", saved.ID(), "guildId", saved.GuildID, "title", saved.Title)
	uc.record(ctx, saved, entity.LogActionCreated, saved.CreatedByID, saved.CreatedByUsername, templates.MissionSummary(saved))
	uc.announce(ctx, templates.ScheduleCreated(saved))
	return saved, nil
}

// AddCrewMemberParams carries the input for AddCrewMember.
type AddCrewMemberParams struct {
	GuildID    string
	ScheduleID uint
	DiscordID  string
	Username   string
	Nickname   string
}

// AddCrewMember boards the acting user on an active schedule, creating
// the user record on first contact.
func (uc *ScheduleUseCase) AddCrewMember(ctx context.Context, p AddCrewMemberParams) (*entity.Schedule, error) {
	const op = "failed to add crew member"

	schedule, err := uc.findActiveSchedule(ctx, p.ScheduleID, p.GuildID)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	user, err := uc.userUseCase.GetOrCreateUser(ctx, p.DiscordID, p.Username, p.Nickname)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	if err := schedule.AddCrewMember(user); err != nil {
		return nil, uc.fail(op, err)
	}

	saved, err := uc.scheduleRepo.Save(ctx, schedule)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.metrics.CrewJoins.Inc()
	uc.record(ctx, saved, entity.LogActionCrewAdded, user.DiscordID, user.Nickname, "")
	uc.announce(ctx, templates.CrewJoined(saved, user.Nickname))
	return saved, nil
}

// RemoveCrewMember takes a user off an active schedule's roster.
func (uc *ScheduleUseCase) RemoveCrewMember(ctx context.Context, guildID string, scheduleID uint, discordID string) (*entity.Schedule, error) {
	const op = "failed to remove crew member"

	schedule, err := uc.findActiveSchedule(ctx, scheduleID, guildID)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	nickname := discordID
	for _, m := range schedule.CrewMembers() {
		if m.DiscordID == discordID {
			nickname = m.Nickname
			break
		}
	}

	if err := schedule.RemoveCrewMember(discordID); err != nil {
		return nil, uc.fail(op, err)
	}

	saved, err := uc.scheduleRepo.Save(ctx, schedule)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.metrics.CrewLeaves.Inc()
	uc.record(ctx, saved, entity.LogActionCrewRemoved, discordID, nickname, "")
	uc.announce(ctx, templates.CrewLeft(saved, nickname))
	return saved, nil
}

// CloseSchedule moves an active schedule to its terminal state. Any
// user may close; closedByID only ends up in the audit trail.
func (uc *ScheduleUseCase) CloseSchedule(ctx context.Context, guildID string, scheduleID uint, closedByID string) (*entity.Schedule, error) {
	const op = "failed to close schedule"

	schedule, err := uc.findActiveSchedule(ctx, scheduleID, guildID)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	if err := schedule.Close(closedByID); err != nil {
		return nil, uc.fail(op, err)
	}

	saved, err := uc.scheduleRepo.Save(ctx, schedule)
	if err != nil {
		return nil, uc.fail(op, err)
	}

	uc.metrics.SchedulesClosed.Inc()
	uc.logger.Info("Closed schedule", "scheduleId", saved.ID(), "guildId", saved.GuildID, "closedBy", closedByID)
	uc.record(ctx, saved, entity.LogActionClosed, closedByID, "", "")
	uc.announce(ctx, templates.ScheduleClosed(saved))
	return saved, nil
}

// GetActiveSchedules returns a tenant's active schedules, newest first.
func (uc *ScheduleUseCase) GetActiveSchedules(ctx context.Context, guildID string) ([]*entity.Schedule, error) {
	const op = "failed to get active schedules"

	if guildID == "" {
		return nil, uc.fail(op, apperrors.Validation("Guild ID is required"))
	}
	schedules, err := uc.scheduleRepo.FindActiveByGuildID(ctx, guildID)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	return schedules, nil
}

// GenerateNextGraTitle numbers the next mission after the tenant's
// currently active ones.
func (uc *ScheduleUseCase) GenerateNextGraTitle(ctx context.Context, guildID string) (string, error) {
	const op = "failed to generate GRA title"

	if guildID == "" {
		return "G.R.A - 1", nil
	}
	count, err := uc.scheduleRepo.CountActiveByGuildID(ctx, guildID)
	if err != nil {
		return "", uc.fail(op, err)
	}
	return fmt.Sprintf("G.R.A - %d", count+1), nil
}

// FindSchedule looks up a schedule scoped to its tenant.
func (uc *ScheduleUseCase) FindSchedule(ctx context.Context, scheduleID uint, guildID string) (*entity.Schedule, error) {
	const op = "failed to find schedule"

	if scheduleID == 0 || guildID == "" {
		return nil, uc.fail(op, apperrors.Validation("Schedule ID and Guild ID are required"))
	}
	schedule, err := uc.scheduleRepo.FindByIDAndGuildID(ctx, scheduleID, guildID)
	if err != nil {
		return nil, uc.fail(op, err)
	}
	if schedule == nil {
		return nil, uc.fail(op, apperrors.NotFound("Schedule", scheduleID))
	}
	return schedule, nil
}

// CleanupOldSchedules deletes closed schedules whose end time precedes
// now minus daysThreshold days, across all tenants, and returns how
// many went away. A non-positive threshold falls back to the default.
func (uc *ScheduleUseCase) CleanupOldSchedules(ctx context.Context, daysThreshold int) (int, error) {
	const op = "failed to cleanup old schedules"

	if daysThreshold <= 0 {
		daysThreshold = DefaultCleanupThresholdDays
	}
	cutoff := time.Now().AddDate(0, 0, -daysThreshold)

	old, err := uc.scheduleRepo.FindByEndTimeBefore(ctx, cutoff)
	if err != nil {
		return 0, uc.fail(op, err)
	}

	cleaned := 0
	for _, schedule := range old {
		if err := uc.scheduleRepo.Delete(ctx, schedule.ID()); err != nil {
			return cleaned, uc.fail(op, err)
		}
		cleaned++
		uc.record(ctx, schedule, entity.LogActionCleanedUp, "", "", fmt.Sprintf("closed at %s", schedule.EndTime.Format(time.RFC3339)))
	}

	if cleaned > 0 {
		uc.metrics.SchedulesCleaned.Add(float64(cleaned))
		uc.logger.Info("Cleaned up old schedules", "count", cleaned, "thresholdDays", daysThreshold)
	}
	return cleaned, nil
}

// findActiveSchedule loads a schedule by id and tenant and rejects
// missing or closed ones.
func (uc *ScheduleUseCase) findActiveSchedule(ctx context.Context, scheduleID uint, guildID string) (*entity.Schedule, error) {
	if scheduleID == 0 || guildID == "" {
		return nil, apperrors.Validation("Schedule ID and Guild ID are required")
	}
	schedule, err := uc.scheduleRepo.FindByIDAndGuildID(ctx, scheduleID, guildID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperrors.NotFound("Schedule", scheduleID)
	}
	if !schedule.Active {
		return nil, apperrors.ErrScheduleClosed
	}
	return schedule, nil
}

// fail counts the error for the operation and wraps it.
func (uc *ScheduleUseCase) fail(op string, err error) error {
	uc.metrics.ErrorsCount.WithLabelValues(op).Inc()
	return apperrors.Wrap(op, err)
}

// record appends an audit entry, logging instead of failing the
// operation when the trail is unavailable.
func (uc *ScheduleUseCase) record(ctx context.Context, s *entity.Schedule, action, userID, username, details string) {
	if uc.logRepo == nil {
		return
	}
	entry := &entity.ScheduleLog{
		ScheduleID: s.ID(),
		GuildID:    s.GuildID,
		Action:     action,
		UserID:     userID,
		Username:   username,
		Details:    details,
		Timestamp:  time.Now(),
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		uc.logger.Warn("Failed to append schedule log", "scheduleId", s.ID(), "action", action, "error", err)
	}
}

// announce pushes a lifecycle message, best effort.
func (uc *ScheduleUseCase) announce(ctx context.Context, content string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Send(ctx, content); err != nil {
		uc.logger.Warn("Failed to send notification", "error", err)
	}
}
