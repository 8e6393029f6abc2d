package api

import (
	"net/http"
	"strconv"

	"storybook-server/internal/generator"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
	"storybook-server/internal/pdf"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// StoryHandler обрабатывает HTTP-запросы жизненного цикла историй.
type StoryHandler struct {
	generator *generator.Service
	stories   interfaces.StoryRepository
	pdfs      *pdf.Service
	logger    *zap.Logger
}

// NewStoryHandler создает новый StoryHandler.
func NewStoryHandler(gen *generator.Service, stories interfaces.StoryRepository, pdfs *pdf.Service, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		generator: gen,
		stories:   stories,
		pdfs:      pdfs,
		logger:    logger.Named("StoryHandler"),
	}
}

// RegisterRoutes регистрирует маршруты историй в защищенной группе.
func (h *StoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	stories := group.Group("/stories")
	{
		stories.GET("", h.listStories)
		stories.POST("", h.createStory)
		stories.GET("/:id", h.getStory)
		stories.GET("/:id/status", h.getStoryStatus)
		stories.POST("/:id/regenerate", h.regenerateStory)
		stories.DELETE("/:id", h.deleteStory)
	}
}

// createStory запускает фоновую генерацию новой истории.
// POST /api/stories
func (h *StoryHandler) createStory(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req models.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "child_id and theme are required"})
		return
	}

	summary, err := h.generator.CreateStory(c.Request.Context(), userID, req.ChildID, req.Theme)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Генерация асинхронная: запись уже создана, клиент опрашивает статус.
	c.JSON(http.StatusCreated, summary)
}

// listStories возвращает истории пользователя с пагинацией.
// GET /api/stories?status=&theme=&page=&limit=
func (h *StoryHandler) listStories(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filter := models.StoryListFilter{
		Page:  parsePositiveInt(c.Query("page"), 1),
		Limit: parsePositiveInt(c.Query("limit"), defaultPageLimit),
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if status := c.Query("status"); status != "" {
		s := models.StoryStatus(status)
		if s != models.StatusGenerating && s != models.StatusCompleted && s != models.StatusFailed {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status filter"})
			return
		}
		filter.Status = &s
	}
	if theme := c.Query("theme"); theme != "" {
		filter.Theme = &theme
	}

	stories, total, err := h.stories.ListStories(c.Request.Context(), userID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}
	c.JSON(http.StatusOK, models.StoryListResponse{
		Stories: stories,
		Pagination: models.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// getStory возвращает историю целиком, включая страницы.
// GET /api/stories/:id
func (h *StoryHandler) getStory(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	story, err := h.stories.GetStoryForUser(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

// getStoryStatus - легкий эндпоинт для опроса хода генерации.
// GET /api/stories/:id/status
func (h *StoryHandler) getStoryStatus(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	story, err := h.stories.GetStoryForUser(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StoryStatusResponse{
		Status:            story.Status,
		GenerationDetails: story.GenerationDetails,
	})
}

// regenerateStory перезапускает генерацию завершенной или упавшей истории.
// POST /api/stories/:id/regenerate
func (h *StoryHandler) regenerateStory(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	summary, err := h.generator.RegenerateStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, summary)
}

// deleteStory удаляет историю вместе с ее PDF-файлом.
// DELETE /api/stories/:id
func (h *StoryHandler) deleteStory(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	story, err := h.stories.GetStoryForUser(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if story.PDFURL != nil {
		h.pdfs.RemovePDF(*story.PDFURL)
	}

	if err := h.stories.DeleteStory(c.Request.Context(), userID, storyID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// requestIDs извлекает ID пользователя и ID истории из запроса. При ошибке
// ответ уже записан.
func (h *StoryHandler) requestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return uuid.UUID{}, uuid.UUID{}, err
	}

	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid story ID"})
		return uuid.UUID{}, uuid.UUID{}, err
	}
	return userID, storyID, nil
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
