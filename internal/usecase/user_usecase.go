package usecase

import (
	"context"

	"attendance-service/internal/domain/entity"
	"attendance-service/internal/domain/repository"
	"attendance-service/pkg/apperrors"
	"attendance-service/pkg/logger"
)

// UserUseCase handles user identity logic
type UserUseCase struct {
	userRepo repository.UserRepository
	logger   logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo repository.UserRepository, logger logger.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetOrCreateUser returns the stored user for discordID, creating it on
// first reference. An existing user's nickname is refreshed only when
// it actually changed, so the repeat path issues no write.
func (uc *UserUseCase) GetOrCreateUser(ctx context.Context, discordID, username, nickname string) (*entity.User, error) {
	const op = "failed to get or create user"

	if discordID == "" || username == "" || nickname == "" {
		return nil, apperrors.Wrap(op, apperrors.Validation("Discord ID, username, and nickname are required"))
	}

	existing, err := uc.userRepo.FindByID(ctx, discordID)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}

	if existing != nil {
		if existing.Nickname == nickname {
			return existing, nil
		}
		if err := existing.UpdateNickname(nickname); err != nil {
			return nil, apperrors.Wrap(op, err)
		}
		saved, err := uc.userRepo.Save(ctx, existing)
		if err != nil {
			return nil, apperrors.Wrap(op, err)
		}
		uc.logger.Debug("Refreshed user nickname", "discordId", discordID, "nickname", nickname)
		return saved, nil
	}

	user, err := entity.NewUser(discordID, username, nickname)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	saved, err := uc.userRepo.Save(ctx, user)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	uc.logger.Info("Created user", "discordId", discordID, "username", username)
	return saved, nil
}

// FindUser looks up a user by discord id.
func (uc *UserUseCase) FindUser(ctx context.Context, discordID string) (*entity.User, error) {
	const op = "failed to find user"

	if discordID == "" {
		return nil, apperrors.Wrap(op, apperrors.Validation("Discord ID is required"))
	}
	user, err := uc.userRepo.FindByID(ctx, discordID)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	if user == nil {
		return nil, apperrors.Wrap(op, apperrors.NotFound("User", discordID))
	}
	return user, nil
}

// UpdateUserNickname replaces a user's display name and persists it.
func (uc *UserUseCase) UpdateUserNickname(ctx context.Context, discordID, newNickname string) (*entity.User, error) {
	const op = "failed to update user nickname"

	if discordID == "" || newNickname == "" {
		return nil, apperrors.Wrap(op, apperrors.Validation("Discord ID and new nickname are required"))
	}
	user, err := uc.userRepo.FindByID(ctx, discordID)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	if user == nil {
		return nil, apperrors.Wrap(op, apperrors.NotFound("User", discordID))
	}
	if err := user.UpdateNickname(newNickname); err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	saved, err := uc.userRepo.Save(ctx, user)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return saved, nil
}

// SearchUsersByUsername matches users by a case-insensitive pattern.
func (uc *UserUseCase) SearchUsersByUsername(ctx context.Context, pattern string) ([]*entity.User, error) {
	const op = "failed to search users"

	if pattern == "" {
		return nil, apperrors.Wrap(op, apperrors.Validation("Search pattern is required"))
	}
	users, err := uc.userRepo.FindByUsernamePattern(ctx, pattern)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return users, nil
}
