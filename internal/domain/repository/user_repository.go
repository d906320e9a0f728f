package repository

import (
	"context"

	"attendance-service/internal/domain/entity"
)

// UserRepository defines the persistence contract for users.
// FindByID returns (nil, nil) when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, discordID string) (*entity.User, error)
	// Save upserts keyed by discord id.
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, discordID string) error
	// FindByUsernamePattern matches usernames case-insensitively.
	FindByUsernamePattern(ctx context.Context, pattern string) ([]*entity.User, error)
}
