// Package imagegen реализует клиент сервиса генерации иллюстраций поверх
// OpenAI-совместимого API (DALL-E или совместимый прокси).
package imagegen

import (
	"context"
	"fmt"
	"net/http"

	"storybook-server/internal/config"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// openAIImageClient запрашивает иллюстрации у OpenAI Images API.
// Все вызовы проходят через общий rate limiter: внешний сервис считает
// запросы на ключ, а не на страницу.
type openAIImageClient struct {
	client  *openaigo.Client
	model   string
	size    string
	quality string
	style   string
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ interfaces.ImageGenerator = (*openAIImageClient)(nil)

// NewOpenAIImageClient создает новый клиент генерации изображений.
func NewOpenAIImageClient(cfg *config.Config, logger *zap.Logger) (interfaces.ImageGenerator, error) {
	if cfg.ImageAPIKey == "" {
		return nil, fmt.Errorf("image API key is not configured")
	}

	openaiConfig := openaigo.DefaultConfig(cfg.ImageAPIKey)
	if cfg.ImageAPIBaseURL != "" {
		openaiConfig.BaseURL = cfg.ImageAPIBaseURL
	}
	openaiConfig.HTTPClient = &http.Client{
		Timeout: cfg.ImageTimeout,
	}
	client := openaigo.NewClientWithConfig(openaiConfig)

	logger.Info("OpenAI image client created",
		zap.String("baseURL", openaiConfig.BaseURL),
		zap.String("model", cfg.ImageModel),
		zap.Duration("timeout", cfg.ImageTimeout),
		zap.Float64("rateLimit", cfg.ImageRateLimit))

	return &openAIImageClient{
		client:  client,
		model:   cfg.ImageModel,
		size:    cfg.ImageSize,
		quality: cfg.ImageQuality,
		style:   cfg.ImageStyle,
		limiter: rate.NewLimiter(rate.Limit(cfg.ImageRateLimit), cfg.ImageRateBurst),
		logger:  logger.Named("OpenAIImageClient"),
	}, nil
}

// Generate renders one illustration and returns its public URL.
func (c *openAIImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	resp, err := c.client.CreateImage(ctx, openaigo.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		Size:           c.size,
		Quality:        c.quality,
		Style:          c.style,
		N:              1,
		ResponseFormat: openaigo.CreateImageResponseFormatURL,
	})
	if err != nil {
		c.logger.Warn("Image API request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrImageGenerationFailed, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: empty response", models.ErrImageGenerationFailed)
	}

	return resp.Data[0].URL, nil
}
