package database

import (
	"context"
	"fmt"

	"github.com/example/vocabsrs/pkg/models"
)

// ReviewItemRepository handles database operations for review items. It is
// the persistence collaborator behind the in-memory store: the whole
// collection is loaded at session start and written back on flush.
type ReviewItemRepository struct{}

// NewReviewItemRepository creates a new repository instance
func NewReviewItemRepository() *ReviewItemRepository {
	return &ReviewItemRepository{}
}

// LoadReviewItems returns the full persisted collection.
func (r *ReviewItemRepository) LoadReviewItems(ctx context.Context) ([]models.ReviewItem, error) {
	query := `
		SELECT id, front_text, back_text, interval, repetitions,
		       easiness_factor, next_review, last_reviewed, last_quality,
		       created_at, updated_at
		FROM review_items
		ORDER BY id
	`
	items := []models.ReviewItem{}
	err := DB.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load review items: %v", err)
	}
	return items, nil
}

// SaveReviewItems writes the collection back in one transaction, upserting
// row by row. Rows for items deleted by vocabulary management are removed by
// DeleteMissing, not here.
func (r *ReviewItemRepository) SaveReviewItems(ctx context.Context, items []models.ReviewItem) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO review_items (
			id, front_text, back_text, interval, repetitions,
			easiness_factor, next_review, last_reviewed, last_quality,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			front_text = excluded.front_text,
			back_text = excluded.back_text,
			interval = excluded.interval,
			repetitions = excluded.repetitions,
			easiness_factor = excluded.easiness_factor,
			next_review = excluded.next_review,
			last_reviewed = excluded.last_reviewed,
			last_quality = excluded.last_quality,
			updated_at = excluded.updated_at
	`)

	for _, item := range items {
		_, err := tx.ExecContext(ctx, query,
			item.ID,
			item.FrontText,
			item.BackText,
			item.Interval,
			item.Repetitions,
			item.EasinessFactor,
			item.NextReview,
			item.LastReviewed,
			item.LastQuality,
			item.CreatedAt,
			item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save review item %q: %v", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review items: %v", err)
	}
	return nil
}

// Delete removes the row for a vocabulary entry that was deleted by the
// vocabulary-management side.
func (r *ReviewItemRepository) Delete(ctx context.Context, id string) error {
	query := DB.Rebind(`DELETE FROM review_items WHERE id = ?`)
	_, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review item %q: %v", id, err)
	}
	return nil
}
