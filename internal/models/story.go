package models

import (
	"time"

	"github.com/google/uuid"
)

// StoryStatus определяет возможные статусы истории.
// Совпадает с типом ENUM 'story_status' в БД.
type StoryStatus string

const (
	StatusGenerating StoryStatus = "generating" // Идет генерация текста и иллюстраций
	StatusCompleted  StoryStatus = "completed"  // История готова, страницы заполнены
	StatusFailed     StoryStatus = "failed"     // Генерация завершилась ошибкой
)

// Page — одна страница истории. Pages are owned exclusively by their story
// and are 1-indexed. ImageURL and ImagePrompt are nil together when the
// illustration for the page could not be generated.
type Page struct {
	PageNumber  int     `json:"page_number"`
	Text        string  `json:"text"`
	ImageURL    *string `json:"image_url"`
	ImagePrompt *string `json:"image_prompt"`
}

// StoryMetadata — денормализованный снимок данных ребенка, сделанный в момент
// создания истории. Later edits or deletion of the child profile never
// retroactively alter a generated story.
type StoryMetadata struct {
	ChildName   string           `json:"child_name"`
	ChildAge    int              `json:"child_age"`
	ChildPhoto  *string          `json:"child_photo,omitempty"`
	ParentNames ParentNames      `json:"parent_names"`
	Preferences ChildPreferences `json:"preferences"`
}

// GenerationDetails отслеживает ход фоновой генерации истории.
type GenerationDetails struct {
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	GenerationTime time.Duration `json:"generation_time,omitempty"`
	ErrorMessage   *string       `json:"error_message,omitempty"`
}

// Story представляет персонализированную историю в базе данных.
// ChildID is a weak reference: the profile may no longer exist, in which
// case Metadata is the only source of child data.
type Story struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	UserID            uuid.UUID         `json:"user_id" db:"user_id"`
	ChildID           uuid.UUID         `json:"child_id" db:"child_id"`
	Title             string            `json:"title" db:"title"`
	Theme             string            `json:"theme" db:"theme"`
	Pages             []Page            `json:"pages" db:"pages"`
	Status            StoryStatus       `json:"status" db:"status"`
	Metadata          StoryMetadata     `json:"metadata" db:"metadata"`
	GenerationDetails GenerationDetails `json:"generation_details" db:"generation_details"`
	PDFURL            *string           `json:"pdf_url" db:"pdf_url"`
	IsPublic          bool              `json:"is_public" db:"is_public"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// MarkCompleted переводит историю в терминальный статус completed
// и фиксирует время генерации.
func (s *Story) MarkCompleted() {
	now := time.Now()
	s.Status = StatusCompleted
	s.GenerationDetails.CompletedAt = &now
	s.GenerationDetails.GenerationTime = now.Sub(s.GenerationDetails.StartedAt)
}

// MarkFailed переводит историю в терминальный статус failed с сообщением об ошибке.
func (s *Story) MarkFailed(errorMessage string) {
	s.Status = StatusFailed
	s.GenerationDetails.ErrorMessage = &errorMessage
}

// ResetForRegeneration готовит историю к повторной генерации: страницы и PDF
// сбрасываются, статус возвращается в generating.
func (s *Story) ResetForRegeneration() {
	s.Status = StatusGenerating
	s.Pages = nil
	s.PDFURL = nil
	s.GenerationDetails = GenerationDetails{StartedAt: time.Now()}
}
