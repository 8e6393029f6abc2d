package models

import (
	"time"

	"github.com/google/uuid"
)

// ParentNames хранит имена родителей/опекунов ребенка.
// Any of the fields may be empty; the text renderer falls back to
// neutral phrases when no names are set.
type ParentNames struct {
	Mother   string `json:"mother,omitempty"`
	Father   string `json:"father,omitempty"`
	Guardian string `json:"guardian,omitempty"`
}

// ChildPreferences — интересы и предпочтения ребенка, используемые при генерации.
type ChildPreferences struct {
	Hobbies      []string    `json:"hobbies,omitempty"`
	FavoriteToys []string    `json:"favorite_toys,omitempty"`
	Interests    []string    `json:"interests,omitempty"`
	ParentNames  ParentNames `json:"parent_names,omitempty"`
}

// ChildProfile представляет профиль ребенка, принадлежащий пользователю.
// Stories keep their own denormalized snapshot of this data, so deleting
// a profile never invalidates already generated stories.
type ChildProfile struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	Name        string           `json:"name" db:"name"`
	Age         int              `json:"age" db:"age"` // допустимый диапазон: 1..12
	PhotoURL    *string          `json:"photo_url,omitempty" db:"photo_url"`
	Preferences ChildPreferences `json:"preferences" db:"preferences"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// MinChildAge и MaxChildAge ограничивают возраст профиля ребенка.
const (
	MinChildAge = 1
	MaxChildAge = 12
)

// ValidateAge проверяет инвариант возраста.
func (c *ChildProfile) ValidateAge() error {
	if c.Age < MinChildAge || c.Age > MaxChildAge {
		return ErrInvalidInput
	}
	return nil
}
