package repository

import (
	"context"
	"errors"
	"time"

	"attendance-service/internal/domain/entity"
	"attendance-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormScheduleRepository implements the ScheduleRepository interface
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository
func NewGormScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &GormScheduleRepository{
		db: db,
	}
}

// ScheduleModel GORM model for database mapping
type ScheduleModel struct {
	ID                uint       `gorm:"primaryKey"`
	GuildID           string     `gorm:"column:guild_id;index"`
	Title             string     `gorm:"column:title"`
	AircraftType      string     `gorm:"column:aircraft_type"`
	MissionType       string     `gorm:"column:mission_type"`
	ActionSubType     string     `gorm:"column:action_sub_type"`
	ActionOption      string     `gorm:"column:action_option"`
	OutrosDescription string     `gorm:"column:outros_description"`
	StartTime         time.Time  `gorm:"column:start_time"`
	EndTime           *time.Time `gorm:"column:end_time;index"`
	CreatedByID       string     `gorm:"column:created_by_id"`
	CreatedByUsername string     `gorm:"column:created_by_username"`
	Active            bool       `gorm:"column:active;index"`
	CrewMembers       []CrewMemberModel `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the default table name
func (ScheduleModel) TableName() string {
	return "schedules"
}

// CrewMemberModel GORM model for the crew association
type CrewMemberModel struct {
	ID         uint   `gorm:"primaryKey"`
	ScheduleID uint   `gorm:"column:schedule_id;uniqueIndex:idx_schedule_crew"`
	DiscordID  string `gorm:"column:discord_id;uniqueIndex:idx_schedule_crew;index"`
	Username   string `gorm:"column:username"`
	Nickname   string `gorm:"column:nickname"`
}

// TableName overrides the default table name
func (CrewMemberModel) TableName() string {
	return "schedule_crew_members"
}

// FindByID finds a schedule by ID
func (r *GormScheduleRepository) FindByID(ctx context.Context, id uint) (*entity.Schedule, error) {
	var model ScheduleModel
	result := r.db.WithContext(ctx).Preload("CrewMembers").First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return toScheduleEntity(&model)
}

// FindByIDAndGuildID finds a schedule by ID scoped to a guild
func (r *GormScheduleRepository) FindByIDAndGuildID(ctx context.Context, id uint, guildID string) (*entity.Schedule, error) {
	var model ScheduleModel
	result := r.db.WithContext(ctx).Preload("CrewMembers").
		Where("id = ?", id).
		Where("guild_id = ?", guildID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return toScheduleEntity(&model)
}

// FindActiveByGuildID finds active schedules for a guild, newest first
func (r *GormScheduleRepository) FindActiveByGuildID(ctx context.Context, guildID string) ([]*entity.Schedule, error) {
	var models []ScheduleModel
	result := r.db.WithContext(ctx).Preload("CrewMembers").
		Where("guild_id = ?", guildID).
		Where("active = ?", true).
		Order("start_time DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toScheduleEntities(models)
}

// FindByEndTimeBefore finds closed schedules older than the threshold,
// regardless of guild
func (r *GormScheduleRepository) FindByEndTimeBefore(ctx context.Context, threshold time.Time) ([]*entity.Schedule, error) {
	var models []ScheduleModel
	result := r.db.WithContext(ctx).Preload("CrewMembers").
		Where("end_time IS NOT NULL").
		Where("end_time < ?", threshold).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toScheduleEntities(models)
}

// Save inserts or updates a schedule together with its crew rows
func (r *GormScheduleRepository) Save(ctx context.Context, schedule *entity.Schedule) (*entity.Schedule, error) {
	rec := schedule.ToRecord()
	model := ScheduleModel{
		ID:                rec.ID,
		GuildID:           rec.GuildID,
		Title:             rec.Title,
		AircraftType:      rec.AircraftType,
		MissionType:       rec.MissionType,
		ActionSubType:     rec.ActionSubType,
		ActionOption:      rec.ActionOption,
		OutrosDescription: rec.OutrosDescription,
		StartTime:         schedule.StartTime,
		EndTime:           schedule.EndTime,
		CreatedByID:       rec.CreatedByID,
		CreatedByUsername: rec.CreatedByUsername,
		Active:            rec.Active,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.ID == 0 {
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&model).Error; err != nil {
				return err
			}
			// Crew rows are replaced wholesale; the entity owns the roster.
			if err := tx.Where("schedule_id = ?", model.ID).Delete(&CrewMemberModel{}).Error; err != nil {
				return err
			}
		}
		for _, member := range rec.CrewMembers {
			row := CrewMemberModel{
				ScheduleID: model.ID,
				DiscordID:  member.DiscordID,
				Username:   member.Username,
				Nickname:   member.Nickname,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if schedule.ID() == 0 {
		if err := schedule.SetID(model.ID); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// Delete removes a schedule by ID; a missing row is not an error
func (r *GormScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&CrewMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ScheduleModel{}, id).Error
	})
}

// CountActiveByGuildID counts a guild's active schedules
func (r *GormScheduleRepository) CountActiveByGuildID(ctx context.Context, guildID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&ScheduleModel{}).
		Where("guild_id = ?", guildID).
		Where("active = ?", true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func toScheduleEntity(model *ScheduleModel) (*entity.Schedule, error) {
	var endTime *string
	if model.EndTime != nil {
		t := model.EndTime.Format(time.RFC3339Nano)
		endTime = &t
	}
	crew := make([]entity.CrewMember, 0, len(model.CrewMembers))
	for _, m := range model.CrewMembers {
		crew = append(crew, entity.CrewMember{
			DiscordID: m.DiscordID,
			Username:  m.Username,
			Nickname:  m.Nickname,
		})
	}
	return entity.ScheduleFromRecord(entity.ScheduleRecord{
		ID:                model.ID,
		GuildID:           model.GuildID,
		Title:             model.Title,
		AircraftType:      model.AircraftType,
		MissionType:       model.MissionType,
		ActionSubType:     model.ActionSubType,
		ActionOption:      model.ActionOption,
		OutrosDescription: model.OutrosDescription,
		StartTime:         model.StartTime.Format(time.RFC3339Nano),
		EndTime:           endTime,
		CreatedByID:       model.CreatedByID,
		CreatedByUsername: model.CreatedByUsername,
		Active:            model.Active,
		CrewMembers:       crew,
	})
}

func toScheduleEntities(models []ScheduleModel) ([]*entity.Schedule, error) {
	entities := make([]*entity.Schedule, 0, len(models))
	for i := range models {
		e, err := toScheduleEntity(&models[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
