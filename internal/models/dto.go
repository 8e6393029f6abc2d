package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateStoryRequest - тело запроса на создание истории.
type CreateStoryRequest struct {
	ChildID uuid.UUID `json:"child_id" binding:"required"`
	Theme   string    `json:"theme" binding:"required"`
}

// StorySummary - краткое представление истории, возвращаемое сразу после
// создания (генерация еще идет в фоне).
type StorySummary struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Theme     string      `json:"theme"`
	Status    StoryStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// StoryStatusResponse - ответ эндпоинта опроса статуса генерации.
type StoryStatusResponse struct {
	Status            StoryStatus       `json:"status"`
	GenerationDetails GenerationDetails `json:"generation_details"`
}

// StoryListFilter - фильтр списка историй пользователя.
type StoryListFilter struct {
	Status *StoryStatus
	Theme  *string
	Page   int
	Limit  int
}

// Pagination - блок пагинации в списочных ответах.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// StoryListResponse - ответ списочного эндпоинта историй.
type StoryListResponse struct {
	Stories    []Story    `json:"stories"`
	Pagination Pagination `json:"pagination"`
}

// UpsertChildRequest - тело запроса создания/обновления профиля ребенка.
type UpsertChildRequest struct {
	Name        string           `json:"name" binding:"required"`
	Age         int              `json:"age" binding:"required"`
	PhotoURL    *string          `json:"photo_url"`
	Preferences ChildPreferences `json:"preferences"`
}
