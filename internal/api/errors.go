package api

import (
	"errors"
	"net/http"

	"storybook-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError переводит ошибки сервисного слоя в HTTP-ответ.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "Token has expired"}
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "Authentication required"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Error: "Access denied"}
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "User not found"}
	case errors.Is(err, models.ErrChildNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Child profile not found"}
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Story not found"}
	case errors.Is(err, models.ErrThemeNotFound):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Unknown story theme"}
	case errors.Is(err, models.ErrPDFNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "PDF not found, generate it first"}
	case errors.Is(err, models.ErrStoryNotCompleted):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Story is not completed yet"}
	case errors.Is(err, models.ErrGenerationInProgress):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Error: "Story generation is already in progress"}
	case errors.Is(err, models.ErrStoryLimitReached):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Error: "Story limit reached, upgrade to premium for unlimited stories"}
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
