package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgStoryRepository implements StoryRepository
var _ interfaces.StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgStoryRepository creates a new PostgreSQL-backed StoryRepository.
func NewPgStoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

// storyRow mirrors the stories table layout for scany.
type storyRow struct {
	ID               uuid.UUID  `db:"id"`
	UserID           uuid.UUID  `db:"user_id"`
	ChildID          uuid.UUID  `db:"child_id"`
	Title            string     `db:"title"`
	Theme            string     `db:"theme"`
	Status           string     `db:"status"`
	Pages            []byte     `db:"pages"`
	Metadata         []byte     `db:"metadata"`
	StartedAt        time.Time  `db:"started_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	GenerationTimeMs *int64     `db:"generation_time_ms"`
	ErrorMessage     *string    `db:"error_message"`
	PDFURL           *string    `db:"pdf_url"`
	IsPublic         bool       `db:"is_public"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const storyColumns = `id, user_id, child_id, title, theme, status, pages, metadata,
	started_at, completed_at, generation_time_ms, error_message, pdf_url, is_public, created_at, updated_at`

func (row *storyRow) toModel() (*models.Story, error) {
	story := &models.Story{
		ID:       row.ID,
		UserID:   row.UserID,
		ChildID:  row.ChildID,
		Title:    row.Title,
		Theme:    row.Theme,
		Status:   models.StoryStatus(row.Status),
		PDFURL:   row.PDFURL,
		IsPublic: row.IsPublic,
		GenerationDetails: models.GenerationDetails{
			StartedAt:    row.StartedAt,
			CompletedAt:  row.CompletedAt,
			ErrorMessage: row.ErrorMessage,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.GenerationTimeMs != nil {
		story.GenerationDetails.GenerationTime = time.Duration(*row.GenerationTimeMs) * time.Millisecond
	}
	if len(row.Pages) > 0 {
		if err := json.Unmarshal(row.Pages, &story.Pages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story pages: %w", err)
		}
	}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &story.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story metadata: %w", err)
		}
	}
	return story, nil
}

// CreateStory inserts a new story record (status=generating, no pages yet).
func (r *pgStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	metadata, err := json.Marshal(story.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal story metadata: %w", err)
	}

	query := `INSERT INTO stories (user_id, child_id, title, theme, status, metadata, started_at, is_public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRow(ctx, query,
		story.UserID, story.ChildID, story.Title, story.Theme,
		string(story.Status), metadata, story.GenerationDetails.StartedAt, story.IsPublic,
	).Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create story", zap.Error(err), zap.String("userID", story.UserID.String()))
		return fmt.Errorf("failed to create story: %w", err)
	}
	r.logger.Info("Story created",
		zap.String("storyID", story.ID.String()),
		zap.String("theme", story.Theme),
		zap.String("userID", story.UserID.String()))
	return nil
}

// GetStoryByID retrieves a story by its ID regardless of owner.
func (r *pgStoryRepository) GetStoryByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`
	return r.getStory(ctx, query, id)
}

// GetStoryForUser retrieves a story owned by the given user.
func (r *pgStoryRepository) GetStoryForUser(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1 AND user_id = $2`
	return r.getStory(ctx, query, storyID, userID)
}

func (r *pgStoryRepository) getStory(ctx context.Context, query string, args ...any) (*models.Story, error) {
	var row storyRow
	err := pgxscan.Get(ctx, r.db, &row, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get story from postgres: %w", err)
	}
	return row.toModel()
}

// SaveStory persists pages, status, generation details and pdf_url.
func (r *pgStoryRepository) SaveStory(ctx context.Context, story *models.Story) error {
	pages, err := json.Marshal(story.Pages)
	if err != nil {
		return fmt.Errorf("failed to marshal story pages: %w", err)
	}
	metadata, err := json.Marshal(story.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal story metadata: %w", err)
	}

	var generationTimeMs *int64
	if story.GenerationDetails.GenerationTime > 0 {
		ms := story.GenerationDetails.GenerationTime.Milliseconds()
		generationTimeMs = &ms
	}

	query := `UPDATE stories SET
	              status = $1, pages = $2, metadata = $3, started_at = $4, completed_at = $5,
	              generation_time_ms = $6, error_message = $7, pdf_url = $8, is_public = $9,
	              updated_at = now()
	          WHERE id = $10`
	tag, err := r.db.Exec(ctx, query,
		string(story.Status), pages, metadata,
		story.GenerationDetails.StartedAt, story.GenerationDetails.CompletedAt,
		generationTimeMs, story.GenerationDetails.ErrorMessage,
		story.PDFURL, story.IsPublic, story.ID,
	)
	if err != nil {
		r.logger.Error("Failed to save story", zap.Error(err), zap.String("storyID", story.ID.String()))
		return fmt.Errorf("failed to save story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStoryNotFound
	}
	return nil
}

// DeleteStory removes a story and its pages (pages live on the story row).
func (r *pgStoryRepository) DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error {
	query := `DELETE FROM stories WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, storyID, userID)
	if err != nil {
		r.logger.Error("Failed to delete story", zap.Error(err), zap.String("storyID", storyID.String()))
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStoryNotFound
	}
	r.logger.Info("Story deleted", zap.String("storyID", storyID.String()), zap.String("userID", userID.String()))
	return nil
}

// ListStories returns the user's stories, newest first, with the total count
// matching the filter.
func (r *pgStoryRepository) ListStories(ctx context.Context, userID uuid.UUID, filter models.StoryListFilter) ([]models.Story, int64, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Theme != nil {
		args = append(args, *filter.Theme)
		where += fmt.Sprintf(" AND theme = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM stories ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count stories", zap.Error(err), zap.String("userID", userID.String()))
		return nil, 0, fmt.Errorf("failed to count stories: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`SELECT %s FROM stories %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		storyColumns, where, len(args)-1, len(args))

	var rows []storyRow
	if err := pgxscan.Select(ctx, r.db, &rows, listQuery, args...); err != nil {
		r.logger.Error("Failed to list stories", zap.Error(err), zap.String("userID", userID.String()))
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]models.Story, 0, len(rows))
	for i := range rows {
		story, err := rows[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		stories = append(stories, *story)
	}
	return stories, total, nil
}
