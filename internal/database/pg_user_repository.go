package database

import (
	"context"
	"errors"
	"fmt"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, email, name, subscription_tier, stories_generated, is_active, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.SubscriptionTier,
		&user.StoriesGenerated, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.String("userID", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by ID from postgres", zap.Error(err), zap.String("userID", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// IncrementStoriesGenerated atomically bumps the user's usage counter.
// Single UPDATE, no read-modify-write, so concurrent story completions
// for the same user cannot under-count.
func (r *pgUserRepository) IncrementStoriesGenerated(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET stories_generated = stories_generated + 1, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to increment stories_generated", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to increment stories_generated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("IncrementStoriesGenerated affected no rows", zap.String("userID", userID.String()))
		return models.ErrUserNotFound
	}
	return nil
}
