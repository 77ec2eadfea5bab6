package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/vocabsrs/internal/spaced_repetition"
	"github.com/example/vocabsrs/pkg/models"
)

// Store is the in-memory review collection for one learner's session, keyed
// by vocabulary item id. Reads take a snapshot; scheduling updates for a
// given id are serialized so the SM-2 read-modify-write cycle cannot lose an
// update to a concurrent caller.
type Store struct {
	mu          sync.RWMutex
	items       map[string]models.ReviewItem
	locks       map[string]*sync.Mutex
	persistence Persistence
}

// New creates an empty store backed by the given persistence collaborator.
func New(persistence Persistence) *Store {
	return &Store{
		items:       make(map[string]models.ReviewItem),
		locks:       make(map[string]*sync.Mutex),
		persistence: persistence,
	}
}

// Load replaces the working set with the persisted collection.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.persistence.LoadReviewItems(ctx)
	if err != nil {
		return fmt.Errorf("%w: load review items: %v", ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]models.ReviewItem, len(items))
	for _, item := range items {
		s.items[item.ID] = item
	}
	return nil
}

// Flush writes the full working set through the persistence collaborator. A
// failure leaves the in-memory state untouched and usable; the caller may
// retry the flush.
func (s *Store) Flush(ctx context.Context) error {
	items := s.All()
	if err := s.persistence.SaveReviewItems(ctx, items); err != nil {
		return fmt.Errorf("%w: save review items: %v", ErrPersistence, err)
	}
	return nil
}

// Create enters an item into the study cycle with seed scheduling values. A
// second create for the same id fails with ErrAlreadyExists and never resets
// the existing progress.
func (s *Store) Create(id, frontText, backText string, now time.Time) (models.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[id]; ok {
		return existing, fmt.Errorf("%w: %q", ErrAlreadyExists, id)
	}

	item := spaced_repetition.NewReviewItem(id, frontText, backText, now)
	s.items[id] = item
	return item, nil
}

// Get returns the item for the id, or ErrNotFound.
func (s *Store) Get(id string) (models.ReviewItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return models.ReviewItem{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return item, nil
}

// Upsert replaces the stored item after a scheduling update.
func (s *Store) Upsert(item models.ReviewItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// All returns a snapshot of the working set.
func (s *Store) All() []models.ReviewItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.ReviewItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items
}

// Len returns the number of items in the working set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Update runs a read-modify-write cycle for one item under that item's lock.
// At most one update per id is in flight at a time; updates to different ids
// do not block each other. If fn fails the stored item is left unchanged.
func (s *Store) Update(id string, fn func(models.ReviewItem) (models.ReviewItem, error)) (models.ReviewItem, error) {
	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	item, err := s.Get(id)
	if err != nil {
		return models.ReviewItem{}, err
	}

	updated, err := fn(item)
	if err != nil {
		return models.ReviewItem{}, err
	}
	updated.ID = id

	s.Upsert(updated)
	return updated, nil
}

func (s *Store) itemLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
