package interfaces

import (
	"context"
	"storybook-server/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data persistence (PostgreSQL).
type UserRepository interface {
	// GetUserByID retrieves a user by their ID.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// IncrementStoriesGenerated atomically bumps the user's story-usage
	// counter. Concurrent completions for the same user never under-count.
	IncrementStoriesGenerated(ctx context.Context, userID uuid.UUID) error
}
