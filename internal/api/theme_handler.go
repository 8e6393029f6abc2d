package api

import (
	"net/http"

	"storybook-server/internal/models"
	"storybook-server/internal/themes"

	"github.com/gin-gonic/gin"
)

// ThemeSummary - публичное представление темы: шаблон текста и промпты
// иллюстраций наружу не отдаются.
type ThemeSummary struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PageCount     int             `json:"page_count"`
	AgeRange      models.AgeRange `json:"age_range"`
	EstimatedTime string          `json:"estimated_time"`
}

// ThemeHandler отдает каталог доступных тем.
type ThemeHandler struct{}

// NewThemeHandler создает новый ThemeHandler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// RegisterRoutes регистрирует публичные маршруты каталога тем.
func (h *ThemeHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/themes", h.listThemes)
}

// listThemes возвращает все доступные темы историй.
// GET /api/themes
func (h *ThemeHandler) listThemes(c *gin.Context) {
	all := themes.All()
	summaries := make([]ThemeSummary, 0, len(all))
	for _, theme := range all {
		summaries = append(summaries, ThemeSummary{
			ID:            theme.ID,
			Title:         theme.Title,
			Description:   theme.Description,
			PageCount:     theme.PageCount,
			AgeRange:      theme.AgeRange,
			EstimatedTime: theme.EstimatedTime,
		})
	}
	c.JSON(http.StatusOK, gin.H{"themes": summaries})
}
