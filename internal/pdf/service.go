package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service собирает PDF-книжки из завершенных историй и управляет их
// жизненным циклом в файловом хранилище.
type Service struct {
	stories        interfaces.StoryRepository
	storage        interfaces.FileStorage
	rasterizer     Rasterizer
	publicBasePath string
	renderTimeout  time.Duration
	logger         *zap.Logger
}

// NewService creates a new PDF Service.
func NewService(
	stories interfaces.StoryRepository,
	storage interfaces.FileStorage,
	rasterizer Rasterizer,
	publicBasePath string,
	renderTimeout time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		stories:        stories,
		storage:        storage,
		rasterizer:     rasterizer,
		publicBasePath: strings.TrimSuffix(publicBasePath, "/"),
		renderTimeout:  renderTimeout,
		logger:         logger.Named("PDFService"),
	}
}

// GeneratePDF renders the story into a PDF file and records its public URL.
// Only completed stories can be rendered. Повторный вызов для истории с уже
// существующим PDF идемпотентен и возвращает прежний URL.
func (s *Service) GeneratePDF(ctx context.Context, userID, storyID uuid.UUID) (string, error) {
	story, err := s.stories.GetStoryForUser(ctx, userID, storyID)
	if err != nil {
		return "", err
	}
	if story.Status != models.StatusCompleted {
		return "", models.ErrStoryNotCompleted
	}
	if story.PDFURL != nil {
		return *story.PDFURL, nil
	}

	html := BuildStoryHTML(story, time.Now())

	renderCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	data, err := s.rasterizer.RenderPDF(renderCtx, html)
	if err != nil {
		return "", fmt.Errorf("failed to render story %s: %w", storyID, err)
	}

	filename := fmt.Sprintf("story-%s-%d.pdf", story.ID, time.Now().UnixMilli())
	if err := s.storage.Write(filename, data); err != nil {
		return "", fmt.Errorf("failed to store PDF for story %s: %w", storyID, err)
	}

	pdfURL := s.publicBasePath + "/" + filename
	story.PDFURL = &pdfURL
	if err := s.stories.SaveStory(ctx, story); err != nil {
		// Файл уже на диске; запись без ссылки подчистит плановая очистка.
		return "", fmt.Errorf("failed to save story %s after PDF render: %w", storyID, err)
	}

	s.logger.Info("PDF generated",
		zap.String("storyID", storyID.String()),
		zap.String("file", filename),
		zap.Int("bytes", len(data)))
	return pdfURL, nil
}

// OpenPDF returns a reader over the story's PDF along with its size and
// file name. Returns models.ErrPDFNotFound when the story has no PDF or the
// file vanished from storage.
func (s *Service) OpenPDF(ctx context.Context, userID, storyID uuid.UUID) (io.ReadCloser, int64, string, error) {
	story, err := s.stories.GetStoryForUser(ctx, userID, storyID)
	if err != nil {
		return nil, 0, "", err
	}
	if story.PDFURL == nil {
		return nil, 0, "", models.ErrPDFNotFound
	}

	filename := s.fileNameFromURL(*story.PDFURL)
	reader, size, err := s.storage.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Файл удален очисткой, ссылка в истории устарела.
			return nil, 0, "", models.ErrPDFNotFound
		}
		return nil, 0, "", err
	}
	return reader, size, filename, nil
}

// DeletePDF removes the story's PDF file and clears the stored link, so the
// PDF can be rendered again later. Returns models.ErrPDFNotFound when the
// story has no PDF.
func (s *Service) DeletePDF(ctx context.Context, userID, storyID uuid.UUID) error {
	story, err := s.stories.GetStoryForUser(ctx, userID, storyID)
	if err != nil {
		return err
	}
	if story.PDFURL == nil {
		return models.ErrPDFNotFound
	}

	s.RemovePDF(*story.PDFURL)
	story.PDFURL = nil
	if err := s.stories.SaveStory(ctx, story); err != nil {
		return fmt.Errorf("failed to clear PDF link for story %s: %w", storyID, err)
	}
	return nil
}

// RemovePDF deletes the file behind the given public URL. Missing files are
// tolerated; the boolean reports whether a file was actually removed.
func (s *Service) RemovePDF(pdfURL string) bool {
	if !strings.HasPrefix(pdfURL, s.publicBasePath+"/") {
		return false
	}
	removed, err := s.storage.Delete(s.fileNameFromURL(pdfURL))
	if err != nil {
		s.logger.Warn("Failed to delete PDF file", zap.String("url", pdfURL), zap.Error(err))
		return false
	}
	return removed
}

// CleanupOlderThan removes stored PDFs whose modification time is older than
// the given number of days and returns how many files were deleted.
func (s *Service) CleanupOlderThan(days int) (int, error) {
	files, err := s.storage.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list PDF storage: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	deleted := 0
	for _, file := range files {
		if file.ModTime.Before(cutoff) {
			removed, err := s.storage.Delete(file.Name)
			if err != nil {
				s.logger.Warn("Failed to delete old PDF", zap.String("file", file.Name), zap.Error(err))
				continue
			}
			if removed {
				deleted++
			}
		}
	}

	s.logger.Info("PDF cleanup finished", zap.Int("deleted", deleted), zap.Int("daysOld", days))
	return deleted, nil
}

func (s *Service) fileNameFromURL(pdfURL string) string {
	return strings.TrimPrefix(pdfURL, s.publicBasePath+"/")
}
