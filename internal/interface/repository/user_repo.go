package repository

import (
	"context"
	"errors"
	"time"

	"attendance-service/internal/domain/entity"
	"attendance-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements the UserRepository interface
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &GormUserRepository{
		db: db,
	}
}

// UserModel GORM model for database mapping
type UserModel struct {
	DiscordID string `gorm:"column:discord_id;primaryKey"`
	Username  string `gorm:"column:username;index"`
	Nickname  string `gorm:"column:nickname"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (UserModel) TableName() string {
	return "users"
}

// FindByID finds a user by discord id. The schedule back-references are
// derived from the crew association on load.
func (r *GormUserRepository) FindByID(ctx context.Context, discordID string) (*entity.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return r.toUserEntity(ctx, &model)
}

// Save upserts a user keyed by discord id
func (r *GormUserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	model := UserModel{
		DiscordID: user.DiscordID,
		Username:  user.Username,
		Nickname:  user.Nickname,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "nickname", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

// Delete removes a user by discord id
func (r *GormUserRepository) Delete(ctx context.Context, discordID string) error {
	return r.db.WithContext(ctx).Where("discord_id = ?", discordID).Delete(&UserModel{}).Error
}

// FindByUsernamePattern matches usernames case-insensitively
func (r *GormUserRepository) FindByUsernamePattern(ctx context.Context, pattern string) ([]*entity.User, error) {
	var models []UserModel
	result := r.db.WithContext(ctx).
		Where("username ILIKE ?", "%"+pattern+"%").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.User, 0, len(models))
	for i := range models {
		e, err := r.toUserEntity(ctx, &models[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *GormUserRepository) toUserEntity(ctx context.Context, model *UserModel) (*entity.User, error) {
	user, err := entity.NewUser(model.DiscordID, model.Username, model.Nickname)
	if err != nil {
		return nil, err
	}

	var scheduleIDs []uint
	result := r.db.WithContext(ctx).Model(&CrewMemberModel{}).
		Where("discord_id = ?", model.DiscordID).
		Pluck("schedule_id", &scheduleIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, id := range scheduleIDs {
		user.AddSchedule(id)
	}
	return user, nil
}
