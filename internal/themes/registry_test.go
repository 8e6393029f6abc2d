package themes_test

import (
	"strings"
	"testing"

	"storybook-server/internal/models"
	"storybook-server/internal/themes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownThemes(t *testing.T) {
	for _, id := range []string{"brave-steps", "sweet-dreams-solo", "brush-like-hero", "big-kid-potty"} {
		theme, err := themes.Lookup(id)
		require.NoError(t, err, "theme %s must exist", id)
		assert.Equal(t, id, theme.ID)
		assert.NotEmpty(t, theme.Title)
		assert.NotEmpty(t, theme.Description)
		assert.NotEmpty(t, theme.Template)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := themes.Lookup("space-pirates")
	assert.ErrorIs(t, err, models.ErrThemeNotFound)
}

// Every theme must define exactly one prompt template per page.
func TestThemes_PromptListMatchesPageCount(t *testing.T) {
	all := themes.All()
	require.Len(t, all, 4)
	for _, theme := range all {
		assert.Equal(t, theme.PageCount, len(theme.ImagePrompts),
			"theme %s: prompt list length must equal page count", theme.ID)
		assert.GreaterOrEqual(t, theme.PageCount, 4)
		assert.LessOrEqual(t, theme.PageCount, 12)
	}
}

func TestThemes_TemplatesUseKnownTokensOnly(t *testing.T) {
	known := []string{"{childName}", "{childAge}", "{parentNames}", "{parentName}", "{hobbies}", "{favoriteToys}", "{interests}"}
	for _, theme := range themes.All() {
		stripped := theme.Template
		for _, token := range known {
			stripped = strings.ReplaceAll(stripped, token, "")
		}
		assert.NotContains(t, stripped, "{", "theme %s contains an unknown placeholder", theme.ID)
	}
}

func TestThemes_AgeRangesWithinProfileBounds(t *testing.T) {
	for _, theme := range themes.All() {
		assert.GreaterOrEqual(t, theme.AgeRange.Min, models.MinChildAge)
		assert.LessOrEqual(t, theme.AgeRange.Max, models.MaxChildAge)
		assert.LessOrEqual(t, theme.AgeRange.Min, theme.AgeRange.Max)
	}
}
