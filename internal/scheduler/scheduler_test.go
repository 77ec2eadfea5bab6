package scheduler

import (
	"testing"
	"time"

	"github.com/example/vocabsrs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	counts []int
}

func (f *fakeNotifier) SendDueReminder(count int) error {
	f.counts = append(f.counts, count)
	return nil
}

func TestRunManualCheck_SendsDueCount(t *testing.T) {
	st := store.New(nil)
	past := time.Now().AddDate(0, 0, -1)
	_, err := st.Create("a", "a", "a", past)
	require.NoError(t, err)
	_, err = st.Create("b", "b", "b", past)
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	s := New(st, notifier)

	require.NoError(t, s.RunManualCheck())
	require.Len(t, notifier.counts, 1)
	assert.Equal(t, 2, notifier.counts[0])
}

func TestRunManualCheck_NothingDue(t *testing.T) {
	st := store.New(nil)
	_, err := st.Create("a", "a", "a", time.Now())
	require.NoError(t, err)

	item, err := st.Get("a")
	require.NoError(t, err)
	item.NextReview = time.Now().AddDate(0, 0, 7)
	st.Upsert(item)

	notifier := &fakeNotifier{}
	s := New(st, notifier)

	require.NoError(t, s.RunManualCheck())
	assert.Empty(t, notifier.counts)
}

func TestHourFromEnv(t *testing.T) {
	t.Setenv("NOTIFICATION_START_HOUR", "10")
	assert.Equal(t, 10, hourFromEnv("NOTIFICATION_START_HOUR", 8))

	t.Setenv("NOTIFICATION_START_HOUR", "25")
	assert.Equal(t, 8, hourFromEnv("NOTIFICATION_START_HOUR", 8))

	t.Setenv("NOTIFICATION_START_HOUR", "")
	assert.Equal(t, 8, hourFromEnv("NOTIFICATION_START_HOUR", 8))
}
