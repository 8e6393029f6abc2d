package interfaces

import (
	"context"
	"storybook-server/internal/models"

	"github.com/google/uuid"
)

// StoryRepository defines the interface for story persistence.
type StoryRepository interface {
	// CreateStory inserts a new story record (status=generating, no pages yet).
	CreateStory(ctx context.Context, story *models.Story) error

	// GetStoryByID retrieves a story by its ID regardless of owner.
	// Returns models.ErrStoryNotFound if the story does not exist.
	GetStoryByID(ctx context.Context, id uuid.UUID) (*models.Story, error)

	// GetStoryForUser retrieves a story owned by the given user.
	// Returns models.ErrStoryNotFound if no such story exists.
	GetStoryForUser(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error)

	// SaveStory persists pages, status, generation details and pdf_url.
	SaveStory(ctx context.Context, story *models.Story) error

	// DeleteStory removes a story and its pages.
	DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error

	// ListStories returns the user's stories, newest first, with the total
	// count matching the filter.
	ListStories(ctx context.Context, userID uuid.UUID, filter models.StoryListFilter) ([]models.Story, int64, error)
}
