package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
	"storybook-server/internal/themes"
	"storybook-server/pkg/taskmanager"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskSubmitter is the subset of the task manager the generation service
// needs. The HTTP boundary never awaits the submitted task; the service
// itself guarantees the story reaches a terminal status.
type TaskSubmitter interface {
	SubmitTask(ctx context.Context, taskFunc taskmanager.TaskFunc, params interface{}) (uuid.UUID, error)
}

// Service координирует генерацию историй: создает запись, запускает фоновую
// задачу и доводит историю до терминального статуса completed либо failed.
type Service struct {
	stories     interfaces.StoryRepository
	users       interfaces.UserRepository
	children    interfaces.ChildRepository
	illustrator *Illustrator
	tasks       TaskSubmitter
	logger      *zap.Logger
}

// NewService creates a new story generation Service.
func NewService(
	stories interfaces.StoryRepository,
	users interfaces.UserRepository,
	children interfaces.ChildRepository,
	illustrator *Illustrator,
	tasks TaskSubmitter,
	logger *zap.Logger,
) *Service {
	return &Service{
		stories:     stories,
		users:       users,
		children:    children,
		illustrator: illustrator,
		tasks:       tasks,
		logger:      logger.Named("GeneratorService"),
	}
}

// CreateStory validates the request, persists a new story in generating
// status with a metadata snapshot of the child, and submits the background
// generation task. It returns immediately; clients poll the status endpoint.
func (s *Service) CreateStory(ctx context.Context, userID, childID uuid.UUID, themeID string) (*models.StorySummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanGenerateStory() {
		return nil, models.ErrStoryLimitReached
	}

	child, err := s.children.GetChildByID(ctx, userID, childID)
	if err != nil {
		return nil, err
	}

	theme, err := themes.Lookup(themeID)
	if err != nil {
		return nil, err
	}

	story := &models.Story{
		UserID:   userID,
		ChildID:  childID,
		Title:    child.Name + "'s Adventure",
		Theme:    theme.ID,
		Status:   models.StatusGenerating,
		Metadata: snapshotChild(child),
		GenerationDetails: models.GenerationDetails{
			StartedAt: time.Now(),
		},
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}

	if err := s.submitGeneration(ctx, story.ID); err != nil {
		// Задача не запустилась — история не должна навсегда остаться в generating.
		story.MarkFailed(err.Error())
		if saveErr := s.stories.SaveStory(ctx, story); saveErr != nil {
			s.logger.Error("Failed to mark story failed after submit error",
				zap.Error(saveErr), zap.String("storyID", story.ID.String()))
		}
		return nil, err
	}

	return &models.StorySummary{
		ID:        story.ID,
		Title:     story.Title,
		Theme:     story.Theme,
		Status:    story.Status,
		CreatedAt: story.CreatedAt,
	}, nil
}

// RegenerateStory resets a non-generating story and submits a fresh
// generation task. Returns models.ErrGenerationInProgress while a previous
// generation is still running.
func (s *Service) RegenerateStory(ctx context.Context, userID, storyID uuid.UUID) (*models.StorySummary, error) {
	story, err := s.stories.GetStoryForUser(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	if story.Status == models.StatusGenerating {
		return nil, models.ErrGenerationInProgress
	}

	story.ResetForRegeneration()
	if err := s.stories.SaveStory(ctx, story); err != nil {
		return nil, err
	}

	if err := s.submitGeneration(ctx, story.ID); err != nil {
		story.MarkFailed(err.Error())
		if saveErr := s.stories.SaveStory(ctx, story); saveErr != nil {
			s.logger.Error("Failed to mark story failed after submit error",
				zap.Error(saveErr), zap.String("storyID", story.ID.String()))
		}
		return nil, err
	}

	return &models.StorySummary{
		ID:        story.ID,
		Title:     story.Title,
		Theme:     story.Theme,
		Status:    story.Status,
		CreatedAt: story.CreatedAt,
	}, nil
}

// submitGeneration hands the pipeline to the task manager. The task result
// is awaited by the manager, not by the HTTP caller.
func (s *Service) submitGeneration(ctx context.Context, storyID uuid.UUID) error {
	_, err := s.tasks.SubmitTask(ctx, func(taskCtx context.Context, _ interface{}) (interface{}, error) {
		return nil, s.GenerateCompleteStory(taskCtx, storyID)
	}, storyID)
	if err != nil {
		return fmt.Errorf("failed to submit generation task: %w", err)
	}
	return nil
}

// GenerateCompleteStory runs the full pipeline for one story: render page
// texts, request illustrations, assemble pages and persist the terminal
// status. Whatever goes wrong, the story never stays in generating.
func (s *Service) GenerateCompleteStory(ctx context.Context, storyID uuid.UUID) error {
	log := s.logger.With(zap.String("storyID", storyID.String()))
	metricsIncrementGenerationsStarted()

	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		log.Error("Story not found for generation", zap.Error(err))
		metricsIncrementGenerationsFailed("story_not_found")
		return err
	}

	pages, genErr := s.generatePages(ctx, story, log)
	if genErr != nil {
		story.MarkFailed(genErr.Error())
		metricsIncrementGenerationsFailed("pipeline")
		if saveErr := s.stories.SaveStory(ctx, story); saveErr != nil {
			log.Error("Failed to persist failed story status", zap.Error(saveErr))
			return errors.Join(genErr, saveErr)
		}
		log.Warn("Story generation failed", zap.Error(genErr))
		return genErr
	}

	story.Pages = pages
	story.MarkCompleted()
	if err := s.stories.SaveStory(ctx, story); err != nil {
		log.Error("Failed to persist completed story", zap.Error(err))
		// Терминальная запись не удалась - повторная попытка с failed,
		// чтобы история не зависла в generating.
		story.MarkFailed(err.Error())
		if saveErr := s.stories.SaveStory(ctx, story); saveErr != nil {
			log.Error("Failed to persist failed story status", zap.Error(saveErr))
		}
		metricsIncrementGenerationsFailed("save")
		return err
	}

	if err := s.users.IncrementStoriesGenerated(ctx, story.UserID); err != nil {
		// Счетчик не критичен для самой истории; фиксируем и продолжаем.
		log.Warn("Failed to increment user story counter", zap.Error(err))
	}

	metricsIncrementGenerationsCompleted()
	metricsObserveGenerationDuration(story.GenerationDetails.GenerationTime)
	log.Info("Story generation completed",
		zap.Int("pages", len(story.Pages)),
		zap.Duration("generationTime", story.GenerationDetails.GenerationTime))
	return nil
}

// generatePages renders the text and requests illustrations, zipping both
// into the final ordered page sequence.
func (s *Service) generatePages(ctx context.Context, story *models.Story, log *zap.Logger) ([]models.Page, error) {
	theme, err := themes.Lookup(story.Theme)
	if err != nil {
		return nil, err
	}

	// Генерация всегда идет от снимка метаданных: если живой профиль еще
	// существует, снимок освежается, если профиль удален - используется
	// снимок на момент создания истории.
	if child, err := s.children.GetChildByID(ctx, story.UserID, story.ChildID); err == nil {
		story.Metadata = snapshotChild(child)
	} else if !errors.Is(err, models.ErrChildNotFound) {
		return nil, err
	} else {
		log.Info("Child profile no longer exists, rendering from snapshot")
	}
	if story.Metadata.ChildName == "" {
		return nil, models.ErrChildNotFound
	}

	pageTexts := RenderPages(theme.Template, story.Metadata, theme.PageCount)
	if len(pageTexts) == 0 {
		return nil, fmt.Errorf("theme %s produced no page text", theme.ID)
	}

	illustrations := s.illustrator.RequestIllustrations(ctx, theme, story.Metadata, len(pageTexts))

	pages := make([]models.Page, len(pageTexts))
	for i, text := range pageTexts {
		pages[i] = models.Page{
			PageNumber:  i + 1,
			Text:        text,
			ImageURL:    illustrations[i].ImageURL,
			ImagePrompt: illustrations[i].Prompt,
		}
	}
	return pages, nil
}

// snapshotChild copies the child data onto the story so later profile edits
// or deletion cannot alter the generated story.
func snapshotChild(child *models.ChildProfile) models.StoryMetadata {
	return models.StoryMetadata{
		ChildName:   child.Name,
		ChildAge:    child.Age,
		ChildPhoto:  child.PhotoURL,
		ParentNames: child.Preferences.ParentNames,
		Preferences: child.Preferences,
	}
}
