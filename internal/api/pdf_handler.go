package api

import (
	"fmt"
	"net/http"
	"strconv"

	"storybook-server/internal/models"
	"storybook-server/internal/pdf"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFHandler обрабатывает запросы генерации и выдачи PDF-книжек.
type PDFHandler struct {
	pdfs            *pdf.Service
	cleanupDefaults int
	logger          *zap.Logger
}

// NewPDFHandler создает новый PDFHandler.
func NewPDFHandler(pdfs *pdf.Service, cleanupDaysDefault int, logger *zap.Logger) *PDFHandler {
	return &PDFHandler{
		pdfs:            pdfs,
		cleanupDefaults: cleanupDaysDefault,
		logger:          logger.Named("PDFHandler"),
	}
}

// RegisterRoutes регистрирует PDF-маршруты в защищенной группе.
func (h *PDFHandler) RegisterRoutes(group *gin.RouterGroup) {
	pdfGroup := group.Group("/pdf")
	{
		pdfGroup.POST("/:id/generate", h.generatePDF)
		pdfGroup.GET("/:id/download", h.downloadPDF)
		pdfGroup.GET("/:id/view", h.viewPDF)
		pdfGroup.DELETE("/:id", h.deletePDF)
	}
	// Отдельный путь: сегмент cleanup конфликтовал бы с параметром :id.
	group.POST("/pdf-cleanup", h.cleanup)
}

// generatePDF собирает PDF из завершенной истории.
// POST /api/pdf/:id/generate
func (h *PDFHandler) generatePDF(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	pdfURL, err := h.pdfs.GeneratePDF(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pdf_url": pdfURL})
}

// downloadPDF отдает PDF как attachment.
// GET /api/pdf/:id/download
func (h *PDFHandler) downloadPDF(c *gin.Context) {
	h.servePDF(c, true)
}

// viewPDF отдает PDF для просмотра в браузере.
// GET /api/pdf/:id/view
func (h *PDFHandler) viewPDF(c *gin.Context) {
	h.servePDF(c, false)
}

func (h *PDFHandler) servePDF(c *gin.Context, asAttachment bool) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	reader, size, filename, err := h.pdfs.OpenPDF(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer reader.Close()

	disposition := "inline"
	if asAttachment {
		disposition = "attachment"
	}
	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf(`%s; filename="%s"`, disposition, filename),
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", reader, headers)
}

// deletePDF удаляет PDF истории и очищает ссылку; историю можно
// отрендерить заново.
// DELETE /api/pdf/:id
func (h *PDFHandler) deletePDF(c *gin.Context) {
	userID, storyID, err := h.requestIDs(c)
	if err != nil {
		return
	}

	if err := h.pdfs.DeletePDF(c.Request.Context(), userID, storyID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// cleanup удаляет PDF-файлы старше заданного числа дней.
// POST /api/pdf-cleanup?days=30
func (h *PDFHandler) cleanup(c *gin.Context) {
	days := h.cleanupDefaults
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "days must be a positive integer"})
			return
		}
		days = parsed
	}

	deleted, err := h.pdfs.CleanupOlderThan(days)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "days": days})
}

func (h *PDFHandler) requestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
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
