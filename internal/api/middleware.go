package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"storybook-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

const userIDContextKey = "user_id"

// AuthMiddleware проверяет Bearer-токен (HS256) и кладет ID пользователя в
// контекст запроса. Subject токена - UUID пользователя.
func AuthMiddleware(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Invalid Authorization header format")
			handleServiceError(c, models.ErrTokenMalformed)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, models.ErrTokenInvalid
			}
			return secret, nil
		})
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				handleServiceError(c, models.ErrTokenExpired)
			case errors.Is(err, jwt.ErrTokenMalformed):
				handleServiceError(c, models.ErrTokenMalformed)
			default:
				handleServiceError(c, models.ErrTokenInvalid)
			}
			return
		}
		if !token.Valid {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Warn("Token subject is not a valid user ID", zap.String("subject", claims.Subject))
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// userIDFromContext достает ID пользователя, установленный AuthMiddleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(userIDContextKey)
	if !exists {
		return uuid.UUID{}, models.ErrUnauthorized
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, models.ErrUnauthorized
	}
	return userID, nil
}

// TaskLoggerMiddleware кладет zerolog-логгер в контекст запроса: фоновые
// задачи, запущенные из обработчика, наследуют его через log.Ctx.
func TaskLoggerMiddleware(taskLogger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := taskLogger.WithContext(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ZapLoggingMiddleware логирует HTTP-запросы через zap, пропуская служебные
// эндпоинты /health и /metrics.
func ZapLoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		c.Next()

		latency := time.Since(start)
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		requestID := c.Writer.Header().Get("X-Request-ID")
		if requestID == "" {
			requestID = c.GetHeader("X-Request-ID")
		}
		if requestID == "" {
			requestID = uuid.NewString()
			c.Header("X-Request-ID", requestID)
		}
		fields = append(fields, zap.String("request_id", requestID))

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors.ByType(gin.ErrorTypeAny) {
				log.Error("Request error", append(fields, zap.Error(ginErr.Err))...)
			}
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Server error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
