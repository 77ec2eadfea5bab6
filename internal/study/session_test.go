package study

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/vocabsrs/internal/spaced_repetition"
	"github.com/example/vocabsrs/internal/store"
	"github.com/example/vocabsrs/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

type fakePersistence struct {
	mu      sync.Mutex
	items   []models.ReviewItem
	saveErr error
}

func (f *fakePersistence) LoadReviewItems(ctx context.Context) ([]models.ReviewItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ReviewItem(nil), f.items...), nil
}

func (f *fakePersistence) SaveReviewItems(ctx context.Context, items []models.ReviewItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = append([]models.ReviewItem(nil), items...)
	return nil
}

type fakeHistory struct {
	mu        sync.Mutex
	events    []models.ReviewEvent
	appendErr error
}

func (f *fakeHistory) Append(ctx context.Context, event models.ReviewEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return nil
}

func (f *fakeHistory) Events(ctx context.Context) ([]models.ReviewEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ReviewEvent(nil), f.events...), nil
}

func newTestSession(t *testing.T) (*Session, *store.Store, *fakePersistence, *fakeHistory) {
	t.Helper()
	p := &fakePersistence{}
	h := &fakeHistory{}
	st := store.New(p)
	return NewSession(st, h), st, p, h
}

func TestSession_AnswerUpdatesScheduleAndHistory(t *testing.T) {
	session, st, p, h := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	updated, err := session.Answer(context.Background(), "word-1", true, spaced_repetition.ConfidenceHigh, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.Repetitions)
	assert.Equal(t, 5, updated.LastQuality)

	require.Len(t, h.events, 1)
	assert.Equal(t, "word-1", h.events[0].ItemID)
	assert.Equal(t, 5, h.events[0].Quality)
	assert.Equal(t, testNow, h.events[0].ReviewedAt)

	// The answered item was flushed through the persistence collaborator
	require.Len(t, p.items, 1)
	assert.Equal(t, 1, p.items[0].Repetitions)
}

func TestSession_SkipRecordsBlackout(t *testing.T) {
	session, st, _, h := newTestSession(t)
	item, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)
	item.Repetitions = 3
	item.Interval = 21
	st.Upsert(item)

	updated, err := session.Skip(context.Background(), "word-1", testNow)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.Interval)
	require.Len(t, h.events, 1)
	assert.Equal(t, 0, h.events[0].Quality)
}

func TestSession_RateWrongRecordsZero(t *testing.T) {
	session, st, _, h := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	_, err = session.Rate(context.Background(), "word-1", spaced_repetition.RatingWrong, testNow)
	require.NoError(t, err)

	require.Len(t, h.events, 1)
	assert.Equal(t, 0, h.events[0].Quality)
}

func TestSession_UnknownItem(t *testing.T) {
	session, _, _, h := newTestSession(t)

	_, err := session.Answer(context.Background(), "missing", true, spaced_repetition.ConfidenceHigh, testNow)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.Empty(t, h.events)
}

func TestSession_InvalidInputsDoNotTouchState(t *testing.T) {
	session, st, _, h := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	_, err = session.Answer(context.Background(), "word-1", true, spaced_repetition.Confidence("certain"), testNow)
	assert.True(t, errors.Is(err, spaced_repetition.ErrInvalidInput))

	_, err = session.Rate(context.Background(), "word-1", spaced_repetition.Rating("fine"), testNow)
	assert.True(t, errors.Is(err, spaced_repetition.ErrInvalidInput))

	assert.Empty(t, h.events)
	got, err := st.Get("word-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Repetitions)
}

func TestSession_SaveFailureKeepsScheduleValid(t *testing.T) {
	session, st, p, _ := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	p.saveErr = errors.New("disk gone")
	updated, err := session.Answer(context.Background(), "word-1", true, spaced_repetition.ConfidenceHigh, testNow)
	assert.True(t, errors.Is(err, store.ErrPersistence))

	// The scheduling update is final even though the save failed
	assert.Equal(t, 1, updated.Repetitions)
	got, getErr := st.Get("word-1")
	require.NoError(t, getErr)
	assert.Equal(t, 1, got.Repetitions)

	p.saveErr = nil
	assert.NoError(t, st.Flush(context.Background()))
}

func TestSession_HistoryFailureIsPersistenceError(t *testing.T) {
	session, st, _, h := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	h.appendErr = errors.New("disk gone")
	_, err = session.Answer(context.Background(), "word-1", true, spaced_repetition.ConfidenceHigh, testNow)
	assert.True(t, errors.Is(err, store.ErrPersistence))
}

func TestSession_BuildQueue(t *testing.T) {
	session, st, _, _ := newTestSession(t)
	for _, id := range []string{"a", "b", "c"} {
		_, err := st.Create(id, id, id, testNow.AddDate(0, 0, -1))
		require.NoError(t, err)
	}
	_, err := st.Create("future", "future", "future", testNow)
	require.NoError(t, err)
	future, err := st.Get("future")
	require.NoError(t, err)
	future.NextReview = testNow.AddDate(0, 0, 3)
	st.Upsert(future)

	queue := session.BuildQueue(testNow, 0)
	require.Len(t, queue, 3)

	limited := session.BuildQueue(testNow, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "a", limited[0].ID)
	assert.Equal(t, "b", limited[1].ID)
}

func TestSession_Statistics(t *testing.T) {
	session, st, _, _ := newTestSession(t)
	_, err := st.Create("word-1", "apple", "яблоко", testNow)
	require.NoError(t, err)

	_, err = session.Answer(context.Background(), "word-1", true, spaced_repetition.ConfidenceMedium, testNow)
	require.NoError(t, err)

	stats, err := session.Statistics(context.Background(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 1, stats.CorrectReviews)
	assert.InDelta(t, 4.0, stats.AverageQuality, 0.001)
	assert.Equal(t, 1, stats.StudyStreak)
	assert.Equal(t, 0, stats.ItemsToReview)
}

// One failing item must not prevent scheduling of the others.
func TestSession_FailureIsolatedPerItem(t *testing.T) {
	session, st, _, _ := newTestSession(t)
	_, err := st.Create("good", "good", "good", testNow)
	require.NoError(t, err)

	_, err = session.Answer(context.Background(), "missing", true, spaced_repetition.ConfidenceHigh, testNow)
	require.Error(t, err)

	updated, err := session.Answer(context.Background(), "good", true, spaced_repetition.ConfidenceHigh, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Repetitions)
}
