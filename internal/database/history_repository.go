package database

import (
	"context"
	"fmt"

	"github.com/example/vocabsrs/pkg/models"
)

// HistoryRepository handles the append-only review history log
type HistoryRepository struct{}

// NewHistoryRepository creates a new repository instance
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Append records one completed review.
func (r *HistoryRepository) Append(ctx context.Context, event models.ReviewEvent) error {
	query := DB.Rebind(`
		INSERT INTO review_history (item_id, quality, reviewed_at)
		VALUES (?, ?, ?)
	`)
	_, err := DB.ExecContext(ctx, query, event.ItemID, event.Quality, event.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to append review event: %v", err)
	}
	return nil
}

// Events returns the full history, oldest first.
func (r *HistoryRepository) Events(ctx context.Context) ([]models.ReviewEvent, error) {
	query := `
		SELECT id, item_id, quality, reviewed_at
		FROM review_history
		ORDER BY reviewed_at ASC, id ASC
	`
	events := []models.ReviewEvent{}
	err := DB.SelectContext(ctx, &events, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load review history: %v", err)
	}
	return events, nil
}
