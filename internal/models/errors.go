package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound = errors.New("resource not found") // General not found

	// User & Child Errors
	ErrUserNotFound  = errors.New("user not found")
	ErrChildNotFound = errors.New("child profile not found")
	ErrUnauthorized  = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden     = errors.New("forbidden")    // Authenticated, but lacks permission

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Story & Generation Errors
	ErrStoryNotFound         = errors.New("story not found")
	ErrThemeNotFound         = errors.New("story theme not found")
	ErrStoryNotCompleted     = errors.New("story is not completed yet")
	ErrGenerationInProgress  = errors.New("story generation is already in progress")
	ErrStoryLimitReached     = errors.New("story generation limit reached for this account")
	ErrImageGenerationFailed = errors.New("image generation failed")

	// PDF Errors
	ErrPDFNotFound = errors.New("pdf artifact not found")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input data")
)
