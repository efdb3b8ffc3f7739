package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tablomester/tablomester/internal/review"
)

// ReviewRepository persists review session snapshots as JSONB documents.
type ReviewRepository struct {
	pool *Pool
}

// NewReviewRepository creates a new review session repository.
func NewReviewRepository(pool *Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Save upserts a review session snapshot.
func (r *ReviewRepository) Save(ctx context.Context, id, albumID string, session *review.Session) error {
	state, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal review session: %w", err)
	}

	query := `
		INSERT INTO review_sessions (id, album_id, state, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			album_id = EXCLUDED.album_id,
			state = EXCLUDED.state,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, id, albumID, state); err != nil {
		return fmt.Errorf("save review session: %w", err)
	}
	return nil
}

// Get loads a review session snapshot by id, returns nil if not found.
func (r *ReviewRepository) Get(ctx context.Context, id string) (*review.Session, error) {
	var state []byte
	err := r.pool.QueryRow(ctx, "SELECT state FROM review_sessions WHERE id = $1", id).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review session: %w", err)
	}

	var session review.Session
	if err := json.Unmarshal(state, &session); err != nil {
		return nil, fmt.Errorf("unmarshal review session: %w", err)
	}
	return &session, nil
}

// GetByAlbum returns the most recently updated session id for an album,
// empty string if none exists.
func (r *ReviewRepository) GetByAlbum(ctx context.Context, albumID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM review_sessions
		WHERE album_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, albumID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get review session by album: %w", err)
	}
	return id, nil
}

// Delete removes a review session snapshot.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM review_sessions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete review session: %w", err)
	}
	return nil
}
