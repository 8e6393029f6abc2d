package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера историй.
// Значения загружаются из переменных окружения.
type Config struct {
	// HTTP server
	Port         string   `envconfig:"PORT" default:"8080"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding  string   `envconfig:"LOG_ENCODING" default:"json"`
	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	// Auth
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// PostgreSQL
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"storybook_db"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// Настройки сервиса генерации изображений (OpenAI)
	ImageAPIKey     string        `envconfig:"IMAGE_API_KEY" default:""`
	ImageAPIBaseURL string        `envconfig:"IMAGE_API_BASE_URL" default:""`
	ImageModel      string        `envconfig:"IMAGE_MODEL" default:"dall-e-3"`
	ImageSize       string        `envconfig:"IMAGE_SIZE" default:"1024x1024"`
	ImageQuality    string        `envconfig:"IMAGE_QUALITY" default:"hd"`
	ImageStyle      string        `envconfig:"IMAGE_STYLE" default:"vivid"`
	ImageTimeout    time.Duration `envconfig:"IMAGE_TIMEOUT" default:"60s"`
	// Клиентское ограничение частоты обращений к API изображений
	ImageRateLimit float64 `envconfig:"IMAGE_RATE_LIMIT" default:"1"`
	ImageRateBurst int     `envconfig:"IMAGE_RATE_BURST" default:"2"`

	// PDF rendering
	PDFOutputDir        string        `envconfig:"PDF_OUTPUT_DIR" default:"generated_pdfs"`
	PDFPublicBasePath   string        `envconfig:"PDF_PUBLIC_BASE_PATH" default:"/pdfs"`
	PDFRenderTimeout    time.Duration `envconfig:"PDF_RENDER_TIMEOUT" default:"30s"`
	PDFCleanupDaysOld   int           `envconfig:"PDF_CLEANUP_DAYS_OLD" default:"30"`
	RasterizerBinPath   string        `envconfig:"RASTERIZER_BIN_PATH" default:""` // путь к Chrome/Chromium; пусто — managed-браузер
	RasterizerNoSandbox bool          `envconfig:"RASTERIZER_NO_SANDBOX" default:"true"`

	// Background tasks
	MaxGenerationTasks int `envconfig:"MAX_GENERATION_TASKS" default:"10"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return &cfg, nil
}
