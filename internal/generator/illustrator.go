package generator

import (
	"context"
	"strconv"
	"strings"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"go.uber.org/zap"
)

// StyleSuffix is appended to every illustration prompt to keep the visual
// style consistent and child-safe across pages.
const StyleSuffix = ", children's book illustration style, warm colors, friendly and safe atmosphere, high quality digital art"

// PageIllustration is the per-page result of illustration generation.
// ImageURL and Prompt are nil together when the call for the page failed.
type PageIllustration struct {
	PageNumber int
	ImageURL   *string
	Prompt     *string
}

// Illustrator builds per-page prompts and requests illustrations from the
// external image-generation service.
type Illustrator struct {
	images interfaces.ImageGenerator
	logger *zap.Logger
}

// NewIllustrator creates a new Illustrator.
func NewIllustrator(images interfaces.ImageGenerator, logger *zap.Logger) *Illustrator {
	return &Illustrator{
		images: images,
		logger: logger.Named("Illustrator"),
	}
}

// BuildImagePrompt substitutes child data into a page's prompt template and
// appends the fixed style suffix. Prompts use a subset of the narrative
// token set: name, age, hobbies and toys.
func BuildImagePrompt(template string, child models.StoryMetadata) string {
	replacer := strings.NewReplacer(
		"{childName}", child.ChildName,
		"{childAge}", strconv.Itoa(child.ChildAge),
		"{hobbies}", FormatList(child.Preferences.Hobbies),
		"{favoriteToys}", FormatList(child.Preferences.FavoriteToys),
	)
	return replacer.Replace(template) + StyleSuffix
}

// RequestIllustrations generates one illustration per page, in page order.
//
// Failure isolation: an error on one page records a nil result for that
// page and moves on. A single failed illustration never aborts the story.
func (il *Illustrator) RequestIllustrations(ctx context.Context, theme models.Theme, child models.StoryMetadata, pageCount int) []PageIllustration {
	results := make([]PageIllustration, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		pageNumber := i + 1
		result := PageIllustration{PageNumber: pageNumber}

		if i >= len(theme.ImagePrompts) {
			// Более коротких шаблонов быть не должно (см. тесты реестра),
			// но лишняя страница остается без иллюстрации, а не роняет генерацию.
			il.logger.Warn("No prompt template for page",
				zap.String("theme", theme.ID), zap.Int("page", pageNumber))
			results = append(results, result)
			continue
		}

		prompt := BuildImagePrompt(theme.ImagePrompts[i], child)
		imageURL, err := il.images.Generate(ctx, prompt)
		if err != nil {
			il.logger.Warn("Failed to generate illustration for page",
				zap.String("theme", theme.ID),
				zap.Int("page", pageNumber),
				zap.Error(err))
			metricsIncrementImageFailures()
			results = append(results, result)
			continue
		}

		result.ImageURL = &imageURL
		result.Prompt = &prompt
		results = append(results, result)
	}

	return results
}
