package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgChildRepository implements ChildRepository
var _ interfaces.ChildRepository = (*pgChildRepository)(nil)

type pgChildRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgChildRepository creates a new PostgreSQL-backed ChildRepository.
func NewPgChildRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ChildRepository {
	return &pgChildRepository{
		db:     db,
		logger: logger.Named("PgChildRepo"),
	}
}

// CreateChild inserts a new child profile for the user.
func (r *pgChildRepository) CreateChild(ctx context.Context, child *models.ChildProfile) error {
	prefs, err := json.Marshal(child.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal child preferences: %w", err)
	}

	query := `INSERT INTO children (user_id, name, age, photo_url, preferences)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRow(ctx, query, child.UserID, child.Name, child.Age, child.PhotoURL, prefs).
		Scan(&child.ID, &child.CreatedAt, &child.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create child profile", zap.Error(err), zap.String("userID", child.UserID.String()))
		return fmt.Errorf("failed to create child profile: %w", err)
	}
	r.logger.Info("Child profile created", zap.String("childID", child.ID.String()), zap.String("userID", child.UserID.String()))
	return nil
}

// GetChildByID retrieves a child owned by the given user.
func (r *pgChildRepository) GetChildByID(ctx context.Context, userID, childID uuid.UUID) (*models.ChildProfile, error) {
	query := `SELECT id, user_id, name, age, photo_url, preferences, created_at, updated_at
	          FROM children WHERE id = $1 AND user_id = $2`
	child := &models.ChildProfile{}
	var prefs []byte
	err := r.db.QueryRow(ctx, query, childID, userID).Scan(
		&child.ID, &child.UserID, &child.Name, &child.Age, &child.PhotoURL,
		&prefs, &child.CreatedAt, &child.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Child not found", zap.String("childID", childID.String()), zap.String("userID", userID.String()))
			return nil, models.ErrChildNotFound
		}
		r.logger.Error("Failed to get child from postgres", zap.Error(err), zap.String("childID", childID.String()))
		return nil, fmt.Errorf("failed to get child from postgres: %w", err)
	}
	if err := json.Unmarshal(prefs, &child.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal child preferences: %w", err)
	}
	return child, nil
}

// ListChildren returns all child profiles of the user, oldest first.
func (r *pgChildRepository) ListChildren(ctx context.Context, userID uuid.UUID) ([]models.ChildProfile, error) {
	query := `SELECT id, user_id, name, age, photo_url, preferences, created_at, updated_at
	          FROM children WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list children", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	children := make([]models.ChildProfile, 0)
	for rows.Next() {
		var child models.ChildProfile
		var prefs []byte
		if err := rows.Scan(&child.ID, &child.UserID, &child.Name, &child.Age, &child.PhotoURL,
			&prefs, &child.CreatedAt, &child.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan child row: %w", err)
		}
		if err := json.Unmarshal(prefs, &child.Preferences); err != nil {
			return nil, fmt.Errorf("failed to unmarshal child preferences: %w", err)
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

// UpdateChild persists name/age/photo/preferences changes.
func (r *pgChildRepository) UpdateChild(ctx context.Context, child *models.ChildProfile) error {
	prefs, err := json.Marshal(child.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal child preferences: %w", err)
	}

	query := `UPDATE children SET name = $1, age = $2, photo_url = $3, preferences = $4, updated_at = now()
	          WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query, child.Name, child.Age, child.PhotoURL, prefs, child.ID, child.UserID)
	if err != nil {
		r.logger.Error("Failed to update child profile", zap.Error(err), zap.String("childID", child.ID.String()))
		return fmt.Errorf("failed to update child profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChildNotFound
	}
	return nil
}

// DeleteChild removes a child profile.
func (r *pgChildRepository) DeleteChild(ctx context.Context, userID, childID uuid.UUID) error {
	query := `DELETE FROM children WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, childID, userID)
	if err != nil {
		r.logger.Error("Failed to delete child profile", zap.Error(err), zap.String("childID", childID.String()))
		return fmt.Errorf("failed to delete child profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChildNotFound
	}
	r.logger.Info("Child profile deleted", zap.String("childID", childID.String()), zap.String("userID", userID.String()))
	return nil
}
