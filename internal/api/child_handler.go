package api

import (
	"fmt"
	"net/http"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChildHandler обрабатывает CRUD профилей детей.
type ChildHandler struct {
	children interfaces.ChildRepository
	logger   *zap.Logger
}

// NewChildHandler создает новый ChildHandler.
func NewChildHandler(children interfaces.ChildRepository, logger *zap.Logger) *ChildHandler {
	return &ChildHandler{
		children: children,
		logger:   logger.Named("ChildHandler"),
	}
}

// RegisterRoutes регистрирует маршруты профилей в защищенной группе.
func (h *ChildHandler) RegisterRoutes(group *gin.RouterGroup) {
	children := group.Group("/children")
	{
		children.POST("", h.createChild)
		children.GET("", h.listChildren)
		children.GET("/:id", h.getChild)
		children.PUT("/:id", h.updateChild)
		children.DELETE("/:id", h.deleteChild)
	}
}

// createChild создает новый профиль ребенка.
// POST /api/children
func (h *ChildHandler) createChild(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req models.UpsertChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name and age are required"})
		return
	}

	child := &models.ChildProfile{
		UserID:      userID,
		Name:        req.Name,
		Age:         req.Age,
		PhotoURL:    req.PhotoURL,
		Preferences: req.Preferences,
	}
	if err := child.ValidateAge(); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	if err := h.children.CreateChild(c.Request.Context(), child); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, child)
}

// listChildren возвращает все профили пользователя.
// GET /api/children
func (h *ChildHandler) listChildren(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	children, err := h.children.ListChildren(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, children)
}

// getChild возвращает один профиль.
// GET /api/children/:id
func (h *ChildHandler) getChild(c *gin.Context) {
	userID, childID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	child, err := h.children.GetChildByID(c.Request.Context(), userID, childID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

// updateChild обновляет имя, возраст, фото и предпочтения профиля.
// Изменения не затрагивают уже сгенерированные истории.
// PUT /api/children/:id
func (h *ChildHandler) updateChild(c *gin.Context) {
	userID, childID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	var req models.UpsertChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name and age are required"})
		return
	}

	child, err := h.children.GetChildByID(c.Request.Context(), userID, childID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	child.Name = req.Name
	child.Age = req.Age
	child.PhotoURL = req.PhotoURL
	child.Preferences = req.Preferences
	if err := child.ValidateAge(); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	if err := h.children.UpdateChild(c.Request.Context(), child); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

// deleteChild удаляет профиль. Истории остаются: они читаются из снимка
// метаданных.
// DELETE /api/children/:id
func (h *ChildHandler) deleteChild(c *gin.Context) {
	userID, childID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	if err := h.children.DeleteChild(c.Request.Context(), userID, childID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ChildHandler) requestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := userIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return uuid.UUID{}, uuid.UUID{}, err
	}

	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid child ID"})
		return uuid.UUID{}, uuid.UUID{}, err
	}
	return userID, childID, nil
}
