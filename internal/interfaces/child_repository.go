package interfaces

import (
	"context"
	"storybook-server/internal/models"

	"github.com/google/uuid"
)

// ChildRepository defines the interface for child profile persistence.
// Profiles are always scoped to their owning user.
type ChildRepository interface {
	// CreateChild inserts a new child profile for the user.
	CreateChild(ctx context.Context, child *models.ChildProfile) error

	// GetChildByID retrieves a child owned by the given user.
	// Returns models.ErrChildNotFound if no such profile exists.
	GetChildByID(ctx context.Context, userID, childID uuid.UUID) (*models.ChildProfile, error)

	// ListChildren returns all child profiles of the user, oldest first.
	ListChildren(ctx context.Context, userID uuid.UUID) ([]models.ChildProfile, error)

	// UpdateChild persists name/age/photo/preferences changes.
	UpdateChild(ctx context.Context, child *models.ChildProfile) error

	// DeleteChild removes a child profile. Stories generated from it keep
	// working from their metadata snapshot.
	DeleteChild(ctx context.Context, userID, childID uuid.UUID) error
}
