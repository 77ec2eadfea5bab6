package spaced_repetition

import (
	"sort"
	"time"

	"github.com/example/vocabsrs/pkg/models"
)

// GetItemsDueForReview returns the items whose next review date has passed,
// oldest-overdue first. Ties on the review date are broken by id so session
// queues come out in the same order on every call.
func GetItemsDueForReview(items []models.ReviewItem, now time.Time) []models.ReviewItem {
	due := make([]models.ReviewItem, 0)
	for _, item := range items {
		// An item with NextReview exactly equal to now is due.
		if !item.NextReview.After(now) {
			due = append(due, item)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		return due[i].ID < due[j].ID
	})

	return due
}
