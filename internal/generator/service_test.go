package generator_test

import (
	"context"
	"errors"
	"testing"

	"storybook-server/internal/generator"
	"storybook-server/internal/mocks"
	"storybook-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceMocks struct {
	stories  *mocks.StoryRepository
	users    *mocks.UserRepository
	children *mocks.ChildRepository
	images   *mocks.ImageGenerator
	tasks    *mocks.TaskSubmitter
}

func newTestService(t *testing.T) (*generator.Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		stories:  new(mocks.StoryRepository),
		users:    new(mocks.UserRepository),
		children: new(mocks.ChildRepository),
		images:   new(mocks.ImageGenerator),
		tasks:    new(mocks.TaskSubmitter),
	}
	logger := zap.NewNop()
	svc := generator.NewService(
		m.stories,
		m.users,
		m.children,
		generator.NewIllustrator(m.images, logger),
		m.tasks,
		logger,
	)
	return svc, m
}

func testChild(userID uuid.UUID) *models.ChildProfile {
	return &models.ChildProfile{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Mia",
		Age:    4,
		Preferences: models.ChildPreferences{
			Hobbies:      []string{"drawing", "dancing"},
			FavoriteToys: []string{"a plush bunny"},
			ParentNames:  models.ParentNames{Mother: "Anna", Father: "Ben"},
		},
	}
}

func TestCreateStory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates generating story with metadata snapshot", func(t *testing.T) {
		svc, m := newTestService(t)
		child := testChild(userID)

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierFree, StoriesGenerated: 0}, nil).Once()
		m.children.On("GetChildByID", ctx, userID, child.ID).Return(child, nil).Once()
		m.stories.On("CreateStory", ctx, mock.MatchedBy(func(story *models.Story) bool {
			assert.Equal(t, userID, story.UserID)
			assert.Equal(t, child.ID, story.ChildID)
			assert.Equal(t, "Mia's Adventure", story.Title)
			assert.Equal(t, models.StatusGenerating, story.Status)
			// Снимок метаданных фиксируется в момент создания.
			assert.Equal(t, "Mia", story.Metadata.ChildName)
			assert.Equal(t, 4, story.Metadata.ChildAge)
			assert.Equal(t, "Anna", story.Metadata.ParentNames.Mother)
			assert.False(t, story.GenerationDetails.StartedAt.IsZero())
			return true
		})).Return(nil).Once()
		m.tasks.On("SubmitTask", ctx, mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()

		summary, err := svc.CreateStory(ctx, userID, child.ID, "brave-steps")

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, models.StatusGenerating, summary.Status)
		assert.Equal(t, "brave-steps", summary.Theme)
		m.stories.AssertExpectations(t)
		m.tasks.AssertExpectations(t)
	})

	t.Run("free tier user with one story is rejected", func(t *testing.T) {
		svc, m := newTestService(t)
		childID := uuid.New()

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierFree, StoriesGenerated: 1}, nil).Once()

		summary, err := svc.CreateStory(ctx, userID, childID, "brave-steps")

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, models.ErrStoryLimitReached)
		m.stories.AssertNotCalled(t, "CreateStory", mock.Anything, mock.Anything)
		m.tasks.AssertNotCalled(t, "SubmitTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("premium user is never limited", func(t *testing.T) {
		svc, m := newTestService(t)
		child := testChild(userID)

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierPremium, StoriesGenerated: 42}, nil).Once()
		m.children.On("GetChildByID", ctx, userID, child.ID).Return(child, nil).Once()
		m.stories.On("CreateStory", ctx, mock.Anything).Return(nil).Once()
		m.tasks.On("SubmitTask", ctx, mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()

		_, err := svc.CreateStory(ctx, userID, child.ID, "sweet-dreams-solo")

		require.NoError(t, err)
	})

	t.Run("unknown theme is rejected", func(t *testing.T) {
		svc, m := newTestService(t)
		child := testChild(userID)

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierPremium}, nil).Once()
		m.children.On("GetChildByID", ctx, userID, child.ID).Return(child, nil).Once()

		_, err := svc.CreateStory(ctx, userID, child.ID, "space-pirates")

		assert.ErrorIs(t, err, models.ErrThemeNotFound)
		m.stories.AssertNotCalled(t, "CreateStory", mock.Anything, mock.Anything)
	})

	t.Run("unknown child is rejected", func(t *testing.T) {
		svc, m := newTestService(t)
		childID := uuid.New()

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierPremium}, nil).Once()
		m.children.On("GetChildByID", ctx, userID, childID).Return(nil, models.ErrChildNotFound).Once()

		_, err := svc.CreateStory(ctx, userID, childID, "brave-steps")

		assert.ErrorIs(t, err, models.ErrChildNotFound)
	})

	t.Run("story is marked failed when task submission fails", func(t *testing.T) {
		svc, m := newTestService(t)
		child := testChild(userID)

		m.users.On("GetUserByID", ctx, userID).
			Return(&models.User{ID: userID, SubscriptionTier: models.TierPremium}, nil).Once()
		m.children.On("GetChildByID", ctx, userID, child.ID).Return(child, nil).Once()
		m.stories.On("CreateStory", ctx, mock.Anything).Return(nil).Once()
		m.tasks.On("SubmitTask", ctx, mock.Anything, mock.Anything).
			Return(uuid.UUID{}, errors.New("too many active tasks")).Once()
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(story *models.Story) bool {
			return story.Status == models.StatusFailed
		})).Return(nil).Once()

		_, err := svc.CreateStory(ctx, userID, child.ID, "brave-steps")

		assert.Error(t, err)
		m.stories.AssertExpectations(t)
	})
}

func TestRegenerateStory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	storyID := uuid.New()

	t.Run("conflict while previous generation is running", func(t *testing.T) {
		svc, m := newTestService(t)

		m.stories.On("GetStoryForUser", ctx, userID, storyID).
			Return(&models.Story{ID: storyID, UserID: userID, Status: models.StatusGenerating}, nil).Once()

		_, err := svc.RegenerateStory(ctx, userID, storyID)

		assert.ErrorIs(t, err, models.ErrGenerationInProgress)
		m.stories.AssertNotCalled(t, "SaveStory", mock.Anything, mock.Anything)
	})

	t.Run("completed story is reset and resubmitted", func(t *testing.T) {
		svc, m := newTestService(t)
		pdfURL := "/pdfs/story-old.pdf"
		story := &models.Story{
			ID:     storyID,
			UserID: userID,
			Theme:  "brave-steps",
			Status: models.StatusCompleted,
			Pages:  []models.Page{{PageNumber: 1, Text: "old"}},
			PDFURL: &pdfURL,
		}

		m.stories.On("GetStoryForUser", ctx, userID, storyID).Return(story, nil).Once()
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			assert.Equal(t, models.StatusGenerating, s.Status)
			assert.Nil(t, s.Pages)
			assert.Nil(t, s.PDFURL)
			return true
		})).Return(nil).Once()
		m.tasks.On("SubmitTask", ctx, mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()

		summary, err := svc.RegenerateStory(ctx, userID, storyID)

		require.NoError(t, err)
		assert.Equal(t, models.StatusGenerating, summary.Status)
		m.stories.AssertExpectations(t)
		m.tasks.AssertExpectations(t)
	})

	t.Run("failed story can be regenerated", func(t *testing.T) {
		svc, m := newTestService(t)
		errMsg := "image service down"
		story := &models.Story{
			ID:     storyID,
			UserID: userID,
			Theme:  "brave-steps",
			Status: models.StatusFailed,
			GenerationDetails: models.GenerationDetails{
				ErrorMessage: &errMsg,
			},
		}

		m.stories.On("GetStoryForUser", ctx, userID, storyID).Return(story, nil).Once()
		m.stories.On("SaveStory", ctx, mock.Anything).Return(nil).Once()
		m.tasks.On("SubmitTask", ctx, mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()

		_, err := svc.RegenerateStory(ctx, userID, storyID)

		require.NoError(t, err)
	})
}

func TestGenerateCompleteStory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	storyID := uuid.New()
	childID := uuid.New()

	snapshot := models.StoryMetadata{
		ChildName:   "Mia",
		ChildAge:    4,
		ParentNames: models.ParentNames{Mother: "Anna", Father: "Ben"},
		Preferences: models.ChildPreferences{
			Hobbies:      []string{"drawing", "dancing"},
			FavoriteToys: []string{"a plush bunny"},
			ParentNames:  models.ParentNames{Mother: "Anna", Father: "Ben"},
		},
	}

	generatingStory := func(theme string) *models.Story {
		return &models.Story{
			ID:       storyID,
			UserID:   userID,
			ChildID:  childID,
			Theme:    theme,
			Status:   models.StatusGenerating,
			Metadata: snapshot,
		}
	}

	t.Run("full pipeline completes the story and bumps usage once", func(t *testing.T) {
		svc, m := newTestService(t)
		story := generatingStory("brush-like-hero")

		m.stories.On("GetStoryByID", ctx, storyID).Return(story, nil).Once()
		m.children.On("GetChildByID", ctx, userID, childID).Return(testChild(userID), nil).Once()
		m.images.On("Generate", ctx, mock.Anything).Return("https://img.test/page.png", nil)
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			assert.Equal(t, models.StatusCompleted, s.Status)
			require.NotEmpty(t, s.Pages)
			// Страницы нумеруются с единицы, по порядку.
			for i, page := range s.Pages {
				assert.Equal(t, i+1, page.PageNumber)
				assert.NotEmpty(t, page.Text)
				require.NotNil(t, page.ImageURL)
			}
			require.NotNil(t, s.GenerationDetails.CompletedAt)
			return true
		})).Return(nil).Once()
		m.users.On("IncrementStoriesGenerated", ctx, userID).Return(nil).Once()

		err := svc.GenerateCompleteStory(ctx, storyID)

		require.NoError(t, err)
		m.stories.AssertExpectations(t)
		m.users.AssertNumberOfCalls(t, "IncrementStoriesGenerated", 1)
	})

	t.Run("deleted child falls back to the metadata snapshot", func(t *testing.T) {
		svc, m := newTestService(t)
		story := generatingStory("brave-steps")

		m.stories.On("GetStoryByID", ctx, storyID).Return(story, nil).Once()
		m.children.On("GetChildByID", ctx, userID, childID).Return(nil, models.ErrChildNotFound).Once()
		var prompts []string
		m.images.On("Generate", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				prompts = append(prompts, args.String(1))
			}).
			Return("https://img.test/page.png", nil)
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			return s.Status == models.StatusCompleted
		})).Return(nil).Once()
		m.users.On("IncrementStoriesGenerated", ctx, userID).Return(nil).Once()

		err := svc.GenerateCompleteStory(ctx, storyID)

		require.NoError(t, err)
		// Промпты все еще персонализированы из снимка: первый шаблон содержит
		// имя, остальные - как минимум без сырых токенов (не у каждого
		// шаблона есть {childName}).
		require.NotEmpty(t, prompts)
		assert.Contains(t, prompts[0], "Mia")
		for _, prompt := range prompts {
			assert.NotContains(t, prompt, "{childName}")
		}
	})

	t.Run("every illustration failing still completes the story", func(t *testing.T) {
		svc, m := newTestService(t)
		story := generatingStory("sweet-dreams-solo")

		m.stories.On("GetStoryByID", ctx, storyID).Return(story, nil).Once()
		m.children.On("GetChildByID", ctx, userID, childID).Return(nil, models.ErrChildNotFound).Once()
		m.images.On("Generate", ctx, mock.Anything).Return("", errors.New("service down"))
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			assert.Equal(t, models.StatusCompleted, s.Status)
			for _, page := range s.Pages {
				assert.Nil(t, page.ImageURL)
				assert.NotEmpty(t, page.Text)
			}
			return true
		})).Return(nil).Once()
		m.users.On("IncrementStoriesGenerated", ctx, userID).Return(nil).Once()

		err := svc.GenerateCompleteStory(ctx, storyID)

		require.NoError(t, err)
	})

	t.Run("unknown theme leaves the story failed, not generating", func(t *testing.T) {
		svc, m := newTestService(t)
		story := generatingStory("does-not-exist")

		m.stories.On("GetStoryByID", ctx, storyID).Return(story, nil).Once()
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			assert.Equal(t, models.StatusFailed, s.Status)
			require.NotNil(t, s.GenerationDetails.ErrorMessage)
			return true
		})).Return(nil).Once()

		err := svc.GenerateCompleteStory(ctx, storyID)

		assert.Error(t, err)
		m.users.AssertNotCalled(t, "IncrementStoriesGenerated", mock.Anything, mock.Anything)
		m.stories.AssertExpectations(t)
	})

	t.Run("missing snapshot and missing child fails the story", func(t *testing.T) {
		svc, m := newTestService(t)
		story := generatingStory("brave-steps")
		story.Metadata = models.StoryMetadata{}

		m.stories.On("GetStoryByID", ctx, storyID).Return(story, nil).Once()
		m.children.On("GetChildByID", ctx, userID, childID).Return(nil, models.ErrChildNotFound).Once()
		m.stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			return s.Status == models.StatusFailed
		})).Return(nil).Once()

		err := svc.GenerateCompleteStory(ctx, storyID)

		assert.ErrorIs(t, err, models.ErrChildNotFound)
	})
}
