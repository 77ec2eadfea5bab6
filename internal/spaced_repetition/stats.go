package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/vocabsrs/pkg/models"
)

// Mastery thresholds: an item is considered well-learned once it has survived
// three consecutive successful reviews and its interval has grown past three
// weeks.
const (
	MasteryRepetitions  = 3
	MasteryIntervalDays = 21
)

// DefaultSecondsPerItem is the assumed time to clear one due item. It feeds
// the estimated-time figure on the dashboard, which is a rough heuristic and
// not measured telemetry.
const DefaultSecondsPerItem = 30

// Aggregator computes dashboard statistics over the review collection and the
// append-only review history.
type Aggregator struct {
	// Assumed seconds spent per due item when estimating session length
	SecondsPerItem int
}

// NewAggregator creates an aggregator with default settings
func NewAggregator() *Aggregator {
	return &Aggregator{
		SecondsPerItem: DefaultSecondsPerItem,
	}
}

// CalculateStatistics builds a statistics snapshot. Empty items and history
// produce an all-zero snapshot, never an error. Calendar-day grouping for the
// streak uses the location of now.
func (a *Aggregator) CalculateStatistics(items []models.ReviewItem, history []models.ReviewEvent, now time.Time) models.StudyStatistics {
	stats := models.StudyStatistics{}

	stats.TotalReviews = len(history)
	qualitySum := 0
	for _, ev := range history {
		qualitySum += ev.Quality
		if ev.Quality >= QualityThreshold() {
			stats.CorrectReviews++
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageQuality = float64(qualitySum) / float64(stats.TotalReviews)
	}

	stats.StudyStreak = studyStreak(history, now)

	for _, item := range items {
		if IsMastered(item) {
			stats.MasteredItems++
		}
	}

	stats.ItemsToReview = len(GetItemsDueForReview(items, now))

	secondsPerItem := a.SecondsPerItem
	if secondsPerItem <= 0 {
		secondsPerItem = DefaultSecondsPerItem
	}
	stats.EstimatedMinutes = int(math.Ceil(float64(stats.ItemsToReview*secondsPerItem) / 60.0))

	return stats
}

// QualityThreshold returns the quality at which a review counts as correct.
func QualityThreshold() int {
	return int(QualityCorrectDifficult)
}

// IsMastered reports whether an item meets the mastery thresholds.
func IsMastered(item models.ReviewItem) bool {
	return item.Repetitions >= MasteryRepetitions && item.Interval >= MasteryIntervalDays
}

// studyStreak counts consecutive calendar days with at least one review,
// ending today or yesterday. A streak survives today having no reviews yet;
// it breaks once a full calendar day passes with zero activity.
func studyStreak(history []models.ReviewEvent, now time.Time) int {
	if len(history) == 0 {
		return 0
	}

	days := make(map[string]bool, len(history))
	loc := now.Location()
	for _, ev := range history {
		days[ev.ReviewedAt.In(loc).Format("2006-01-02")] = true
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		// No reviews yet today: the streak may still be alive, anchored at
		// yesterday.
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
