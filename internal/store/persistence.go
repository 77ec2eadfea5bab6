package store

import (
	"context"
	"errors"

	"github.com/example/vocabsrs/pkg/models"
)

var (
	// ErrNotFound means the id was never entered into the study cycle. The
	// caller recovers by creating the item.
	ErrNotFound = errors.New("review item not found")

	// ErrAlreadyExists means a second create for an id that is already in the
	// study cycle. Creating never resets progress; the caller should fall
	// back to Get.
	ErrAlreadyExists = errors.New("review item already exists")

	// ErrPersistence marks failures coming from the load/save collaborator.
	// The in-memory state stays valid after a save failure, so the caller may
	// retry the save without recomputing any schedule.
	ErrPersistence = errors.New("persistence error")
)

// Persistence loads and saves the full review collection. Implemented by the
// database layer; the store itself holds only the in-memory working set.
type Persistence interface {
	LoadReviewItems(ctx context.Context) ([]models.ReviewItem, error)
	SaveReviewItems(ctx context.Context, items []models.ReviewItem) error
}

// HistoryLog is the append-only record of completed reviews. The engine
// appends exactly one event per completed review and reads the log back only
// for statistics.
type HistoryLog interface {
	Append(ctx context.Context, event models.ReviewEvent) error
	Events(ctx context.Context) ([]models.ReviewEvent, error)
}
