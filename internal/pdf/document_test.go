package pdf

import (
	"strings"
	"testing"
	"time"

	"storybook-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestFormatPageText(t *testing.T) {
	t.Run("capitalized names are highlighted", func(t *testing.T) {
		got := FormatPageText("Once upon a time, Mia found a key.")

		assert.Contains(t, got, `<span class="child-name">Mia</span>`)
	})

	t.Run("family words stay plain", func(t *testing.T) {
		got := FormatPageText("Then Mom and Dad smiled at her. Mother laughed too.")

		assert.NotContains(t, got, `<span class="child-name">Mom`)
		assert.NotContains(t, got, `<span class="child-name">Dad`)
		assert.NotContains(t, got, `<span class="child-name">Mother`)
	})

	t.Run("multi-word names are one highlight", func(t *testing.T) {
		got := FormatPageText("At night Grandma Rose told a story.")

		assert.Contains(t, got, `<span class="child-name">Grandma Rose</span>`)
	})

	t.Run("each paragraph opens with a drop cap", func(t *testing.T) {
		got := FormatPageText("First paragraph.\n\nSecond paragraph.")

		assert.Equal(t, 2, strings.Count(got, `<span class="first-letter">`))
		assert.Equal(t, 2, strings.Count(got, "<p>"))
	})

	t.Run("paragraph starting with a name keeps valid markup", func(t *testing.T) {
		got := FormatPageText("Mia woke up early.")

		// Первый символ уходит в буквицу, остаток имени остается текстом.
		assert.Contains(t, got, `<span class="first-letter">M</span>`)
		assert.NotContains(t, got, `<span class="first-letter"><`)
	})

	t.Run("html in text is escaped", func(t *testing.T) {
		got := FormatPageText("a <script>alert(1)</script> tag")

		assert.NotContains(t, got, "<script>")
		assert.Contains(t, got, "&lt;script&gt;")
	})

	t.Run("empty text renders nothing", func(t *testing.T) {
		assert.Equal(t, "", FormatPageText(""))
	})
}

func TestBuildStoryHTML(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	story := &models.Story{
		ID:       uuid.New(),
		Title:    "Mia's Adventure",
		Metadata: models.StoryMetadata{ChildName: "Mia"},
		Pages: []models.Page{
			{PageNumber: 1, Text: "Page one text.", ImageURL: strPtr("https://img.test/1.png")},
			{PageNumber: 2, Text: "Page two text."},
		},
	}

	html := BuildStoryHTML(story, now)

	assert.Contains(t, html, "<title>Mia&#39;s Adventure</title>")
	assert.Contains(t, html, "A personalized story for Mia")
	assert.Contains(t, html, `<div class="page-number">1</div>`)
	assert.Contains(t, html, `<img src="https://img.test/1.png"`)
	assert.Contains(t, html, "Generated on March 14, 2026")

	// Страница без иллюстрации не получает пустой блок изображения.
	assert.Equal(t, 1, strings.Count(html, `<div class="page-image">`))
	// Разрыв печатной страницы между страницами, но не после последней.
	assert.Equal(t, 1, strings.Count(html, `<div class="page-break">`))
}
