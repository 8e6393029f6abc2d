package mocks

import (
	"context"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) IncrementStoriesGenerated(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

var _ interfaces.UserRepository = (*UserRepository)(nil)

// ChildRepository is a mock type for the ChildRepository type
type ChildRepository struct {
	mock.Mock
}

func (_m *ChildRepository) CreateChild(ctx context.Context, child *models.ChildProfile) error {
	ret := _m.Called(ctx, child)
	return ret.Error(0)
}

func (_m *ChildRepository) GetChildByID(ctx context.Context, userID, childID uuid.UUID) (*models.ChildProfile, error) {
	ret := _m.Called(ctx, userID, childID)

	var r0 *models.ChildProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.ChildProfile)
	}
	return r0, ret.Error(1)
}

func (_m *ChildRepository) ListChildren(ctx context.Context, userID uuid.UUID) ([]models.ChildProfile, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.ChildProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.ChildProfile)
	}
	return r0, ret.Error(1)
}

func (_m *ChildRepository) UpdateChild(ctx context.Context, child *models.ChildProfile) error {
	ret := _m.Called(ctx, child)
	return ret.Error(0)
}

func (_m *ChildRepository) DeleteChild(ctx context.Context, userID, childID uuid.UUID) error {
	ret := _m.Called(ctx, userID, childID)
	return ret.Error(0)
}

var _ interfaces.ChildRepository = (*ChildRepository)(nil)

// StoryRepository is a mock type for the StoryRepository type
type StoryRepository struct {
	mock.Mock
}

func (_m *StoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	ret := _m.Called(ctx, story)
	return ret.Error(0)
}

func (_m *StoryRepository) GetStoryByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Story)
	}
	return r0, ret.Error(1)
}

func (_m *StoryRepository) GetStoryForUser(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error) {
	ret := _m.Called(ctx, userID, storyID)

	var r0 *models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Story)
	}
	return r0, ret.Error(1)
}

func (_m *StoryRepository) SaveStory(ctx context.Context, story *models.Story) error {
	ret := _m.Called(ctx, story)
	return ret.Error(0)
}

func (_m *StoryRepository) DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error {
	ret := _m.Called(ctx, userID, storyID)
	return ret.Error(0)
}

func (_m *StoryRepository) ListStories(ctx context.Context, userID uuid.UUID, filter models.StoryListFilter) ([]models.Story, int64, error) {
	ret := _m.Called(ctx, userID, filter)

	var r0 []models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Story)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

var _ interfaces.StoryRepository = (*StoryRepository)(nil)
