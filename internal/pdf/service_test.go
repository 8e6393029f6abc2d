package pdf_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storybook-server/internal/mocks"
	"storybook-server/internal/models"
	"storybook-server/internal/pdf"
	"storybook-server/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newTestPDFService(t *testing.T) (*pdf.Service, *mocks.StoryRepository, *mocks.Rasterizer, *storage.LocalStorage) {
	t.Helper()
	stories := new(mocks.StoryRepository)
	rasterizer := new(mocks.Rasterizer)
	files, err := storage.NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	svc := pdf.NewService(stories, files, rasterizer, "/pdfs", 30*time.Second, zap.NewNop())
	return svc, stories, rasterizer, files
}

func completedStory(userID uuid.UUID) *models.Story {
	return &models.Story{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Mia's Adventure",
		Theme:    "brave-steps",
		Status:   models.StatusCompleted,
		Metadata: models.StoryMetadata{ChildName: "Mia"},
		Pages:    []models.Page{{PageNumber: 1, Text: "Once upon a time."}},
	}
}

func TestGeneratePDF(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("renders, stores and records the URL", func(t *testing.T) {
		svc, stories, rasterizer, files := newTestPDFService(t)
		story := completedStory(userID)

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()
		rasterizer.On("RenderPDF", mock.Anything, mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "A personalized story for Mia")
		})).Return([]byte("%PDF-1.7 fake"), nil).Once()
		stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			require.NotNil(t, s.PDFURL)
			return true
		})).Return(nil).Once()

		pdfURL, err := svc.GeneratePDF(ctx, userID, story.ID)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(pdfURL, "/pdfs/story-"+story.ID.String()+"-"))
		assert.True(t, strings.HasSuffix(pdfURL, ".pdf"))

		// Файл действительно лежит в хранилище.
		stored, err := files.List()
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, int64(len("%PDF-1.7 fake")), stored[0].Size)

		rasterizer.AssertExpectations(t)
		stories.AssertExpectations(t)
	})

	t.Run("incomplete story is rejected", func(t *testing.T) {
		svc, stories, rasterizer, _ := newTestPDFService(t)
		story := completedStory(userID)
		story.Status = models.StatusGenerating

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		_, err := svc.GeneratePDF(ctx, userID, story.ID)

		assert.ErrorIs(t, err, models.ErrStoryNotCompleted)
		rasterizer.AssertNotCalled(t, "RenderPDF", mock.Anything, mock.Anything)
	})

	t.Run("existing PDF makes the call idempotent", func(t *testing.T) {
		svc, stories, rasterizer, _ := newTestPDFService(t)
		story := completedStory(userID)
		story.PDFURL = strPtr("/pdfs/story-existing.pdf")

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		pdfURL, err := svc.GeneratePDF(ctx, userID, story.ID)

		require.NoError(t, err)
		assert.Equal(t, "/pdfs/story-existing.pdf", pdfURL)
		rasterizer.AssertNotCalled(t, "RenderPDF", mock.Anything, mock.Anything)
		stories.AssertNotCalled(t, "SaveStory", mock.Anything, mock.Anything)
	})

	t.Run("render failure does not touch the story", func(t *testing.T) {
		svc, stories, rasterizer, _ := newTestPDFService(t)
		story := completedStory(userID)

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()
		rasterizer.On("RenderPDF", mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).Once()

		_, err := svc.GeneratePDF(ctx, userID, story.ID)

		assert.Error(t, err)
		assert.Nil(t, story.PDFURL)
		stories.AssertNotCalled(t, "SaveStory", mock.Anything, mock.Anything)
	})
}

func TestOpenPDF(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns the stored file", func(t *testing.T) {
		svc, stories, _, files := newTestPDFService(t)
		story := completedStory(userID)
		story.PDFURL = strPtr("/pdfs/story-1.pdf")
		require.NoError(t, files.Write("story-1.pdf", []byte("pdf bytes")))

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		reader, size, name, err := svc.OpenPDF(ctx, userID, story.ID)

		require.NoError(t, err)
		defer reader.Close()
		assert.Equal(t, int64(9), size)
		assert.Equal(t, "story-1.pdf", name)
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(data))
	})

	t.Run("story without a PDF", func(t *testing.T) {
		svc, stories, _, _ := newTestPDFService(t)
		story := completedStory(userID)

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		_, _, _, err := svc.OpenPDF(ctx, userID, story.ID)

		assert.ErrorIs(t, err, models.ErrPDFNotFound)
	})

	t.Run("dangling URL after cleanup", func(t *testing.T) {
		svc, stories, _, _ := newTestPDFService(t)
		story := completedStory(userID)
		story.PDFURL = strPtr("/pdfs/story-gone.pdf")

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		_, _, _, err := svc.OpenPDF(ctx, userID, story.ID)

		assert.ErrorIs(t, err, models.ErrPDFNotFound)
	})
}

func TestDeletePDF(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("removes the file and clears the link", func(t *testing.T) {
		svc, stories, _, files := newTestPDFService(t)
		story := completedStory(userID)
		story.PDFURL = strPtr("/pdfs/story-1.pdf")
		require.NoError(t, files.Write("story-1.pdf", []byte("x")))

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()
		stories.On("SaveStory", ctx, mock.MatchedBy(func(s *models.Story) bool {
			return s.PDFURL == nil
		})).Return(nil).Once()

		require.NoError(t, svc.DeletePDF(ctx, userID, story.ID))

		remaining, err := files.List()
		require.NoError(t, err)
		assert.Empty(t, remaining)
		stories.AssertExpectations(t)
	})

	t.Run("story without a PDF", func(t *testing.T) {
		svc, stories, _, _ := newTestPDFService(t)
		story := completedStory(userID)

		stories.On("GetStoryForUser", ctx, userID, story.ID).Return(story, nil).Once()

		err := svc.DeletePDF(ctx, userID, story.ID)

		assert.ErrorIs(t, err, models.ErrPDFNotFound)
		stories.AssertNotCalled(t, "SaveStory", mock.Anything, mock.Anything)
	})
}

func TestRemovePDF(t *testing.T) {
	svc, _, _, files := newTestPDFService(t)
	require.NoError(t, files.Write("story-1.pdf", []byte("x")))

	assert.True(t, svc.RemovePDF("/pdfs/story-1.pdf"))
	assert.False(t, svc.RemovePDF("/pdfs/story-1.pdf"))
	// URL вне публичного префикса игнорируется.
	assert.False(t, svc.RemovePDF("/etc/passwd"))
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir, zap.NewNop())
	require.NoError(t, err)
	svc := pdf.NewService(new(mocks.StoryRepository), files, new(mocks.Rasterizer), "/pdfs", 30*time.Second, zap.NewNop())

	require.NoError(t, files.Write("old.pdf", []byte("x")))
	require.NoError(t, files.Write("fresh.pdf", []byte("x")))

	// Старим один из файлов за порог очистки.
	stale := time.Now().AddDate(0, 0, -45)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.pdf"), stale, stale))

	deleted, err := svc.CleanupOlderThan(30)

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	remaining, err := files.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh.pdf", remaining[0].Name)
}
