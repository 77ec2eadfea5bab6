package spaced_repetition

import (
	"fmt"
	"math"
	"time"

	"github.com/example/vocabsrs/pkg/models"
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Quality at or above this value counts as a successful recall
	PassThreshold int
}

// NewSM2 creates a new SM2 instance with default settings
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold: 3,
	}
}

// Seed values for items entering the study cycle.
const (
	InitialInterval       = 1
	InitialEasinessFactor = 2.5
	MinEasinessFactor     = 1.3
)

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// CalculateNextReview applies one SM-2 step to the item and returns the
// updated copy. The stored item is not touched; the caller is responsible for
// upserting the result. Fails only for a malformed quality score; an
// out-of-range easiness factor on the input item is healed by clamping, never
// reported.
func (sm *SM2) CalculateNextReview(item models.ReviewItem, quality int, now time.Time) (models.ReviewItem, error) {
	if quality < 0 || quality > 5 {
		return item, fmt.Errorf("%w: %d is not in [0,5]", ErrInvalidQuality, quality)
	}

	// Update the easiness factor first; the pass branch below reads the new
	// value when computing interval growth.
	// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q)*0.02))
	q := float64(quality)
	newEF := item.EasinessFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEF < MinEasinessFactor {
		newEF = MinEasinessFactor
	}
	item.EasinessFactor = newEF

	if quality >= sm.PassThreshold {
		// Correct response
		item.Repetitions++
		switch {
		case item.Repetitions == 1:
			item.Interval = 1
		case item.Repetitions == 2:
			item.Interval = 6
		default:
			item.Interval = int(math.Round(float64(item.Interval) * newEF))
		}
	} else {
		// Lapse: the item goes back to the front of the queue, reviewed again
		// tomorrow.
		item.Repetitions = 0
		item.Interval = 1
	}

	item.NextReview = now.AddDate(0, 0, item.Interval)
	item.LastReviewed = &now
	item.LastQuality = quality
	item.UpdatedAt = now

	return item, nil
}

// NewReviewItem constructs a fresh item with seed values. The item is due
// immediately so a newly added word shows up in the very next session.
func NewReviewItem(id, frontText, backText string, now time.Time) models.ReviewItem {
	return models.ReviewItem{
		ID:             id,
		FrontText:      frontText,
		BackText:       backText,
		Interval:       InitialInterval,
		Repetitions:    0,
		EasinessFactor: InitialEasinessFactor,
		NextReview:     now,
		LastQuality:    0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
