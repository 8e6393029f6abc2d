package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier определяет тарифный план пользователя.
// Matches the 'subscription_tier' ENUM in the database.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// User представляет родительский аккаунт, владеющий профилями детей и историями.
type User struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	Email            string           `json:"email" db:"email"`
	Name             string           `json:"name" db:"name"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" db:"subscription_tier"`
	StoriesGenerated int              `json:"stories_generated" db:"stories_generated"`
	IsActive         bool             `json:"is_active" db:"is_active"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// CanGenerateStory сообщает, может ли пользователь запустить новую генерацию.
// Free tier is limited to a single story; premium is unlimited.
func (u *User) CanGenerateStory() bool {
	if u.SubscriptionTier == TierPremium {
		return true
	}
	return u.StoriesGenerated == 0
}
