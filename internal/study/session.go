package study

import (
	"context"
	"fmt"
	"time"

	"github.com/example/vocabsrs/internal/spaced_repetition"
	"github.com/example/vocabsrs/internal/store"
	"github.com/example/vocabsrs/pkg/models"
)

// Session drives one study sitting for any of the study modes (flashcards,
// quiz, matching). Each answered item runs the same pipeline: map the answer
// to a quality score, apply the SM-2 step under the item's lock, append the
// history event, flush the collection. A failure on one item never blocks
// scheduling of the others.
type Session struct {
	store      *store.Store
	history    store.HistoryLog
	sm2        *spaced_repetition.SM2
	aggregator *spaced_repetition.Aggregator
}

// NewSession creates a session over the given store and history log.
func NewSession(st *store.Store, history store.HistoryLog) *Session {
	return &Session{
		store:      st,
		history:    history,
		sm2:        spaced_repetition.NewSM2(),
		aggregator: spaced_repetition.NewAggregator(),
	}
}

// BuildQueue selects the items to present, oldest-overdue first. A limit of 0
// means no limit.
func (s *Session) BuildQueue(now time.Time, limit int) []models.ReviewItem {
	due := spaced_repetition.GetItemsDueForReview(s.store.All(), now)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}

// Answer records a correct/incorrect answer with an optional confidence
// signal, as produced by the flashcard and quiz modes.
func (s *Session) Answer(ctx context.Context, id string, isCorrect bool, confidence spaced_repetition.Confidence, now time.Time) (models.ReviewItem, error) {
	quality, err := spaced_repetition.ResponseToQuality(isCorrect, confidence)
	if err != nil {
		return models.ReviewItem{}, err
	}
	return s.review(ctx, id, quality, now)
}

// Rate records a discrete Wrong/Hard/Good/Easy self-rating from the review UI.
func (s *Session) Rate(ctx context.Context, id string, rating spaced_repetition.Rating, now time.Time) (models.ReviewItem, error) {
	quality, err := spaced_repetition.RatingToQuality(rating)
	if err != nil {
		return models.ReviewItem{}, err
	}
	return s.review(ctx, id, quality, now)
}

// Skip records a timeout or explicit skip, the only answer path that produces
// quality 0.
func (s *Session) Skip(ctx context.Context, id string, now time.Time) (models.ReviewItem, error) {
	return s.review(ctx, id, spaced_repetition.QualitySkipped, now)
}

// review runs the scheduling update and the follow-up persistence steps. The
// scheduling update is final once applied: a failing save or history append
// is surfaced as a persistence error, but the in-memory schedule stays valid
// and the caller may retry the save alone.
func (s *Session) review(ctx context.Context, id string, quality int, now time.Time) (models.ReviewItem, error) {
	updated, err := s.store.Update(id, func(item models.ReviewItem) (models.ReviewItem, error) {
		return s.sm2.CalculateNextReview(item, quality, now)
	})
	if err != nil {
		return models.ReviewItem{}, err
	}

	event := models.ReviewEvent{
		ItemID:     id,
		Quality:    quality,
		ReviewedAt: now,
	}
	if err := s.history.Append(ctx, event); err != nil {
		return updated, fmt.Errorf("%w: append review event: %v", store.ErrPersistence, err)
	}

	if err := s.store.Flush(ctx); err != nil {
		return updated, err
	}

	return updated, nil
}

// Statistics computes the dashboard snapshot over the current collection and
// the full review history.
func (s *Session) Statistics(ctx context.Context, now time.Time) (models.StudyStatistics, error) {
	events, err := s.history.Events(ctx)
	if err != nil {
		return models.StudyStatistics{}, fmt.Errorf("%w: load review history: %v", store.ErrPersistence, err)
	}
	return s.aggregator.CalculateStatistics(s.store.All(), events, now), nil
}
