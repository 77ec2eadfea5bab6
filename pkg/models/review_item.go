package models

import "time"

// ReviewItem tracks the SM-2 scheduling state for a single vocabulary entry.
// There is exactly one ReviewItem per entry that has entered the study cycle;
// its ID is the vocabulary entry's own identifier.
type ReviewItem struct {
	ID             string     `json:"id" db:"id"`
	FrontText      string     `json:"front_text" db:"front_text"`
	BackText       string     `json:"back_text" db:"back_text"`
	Interval       int        `json:"interval" db:"interval"`                 // Current interval in days
	Repetitions    int        `json:"repetitions" db:"repetitions"`           // Consecutive successful reviews since the last lapse
	EasinessFactor float64    `json:"easiness_factor" db:"easiness_factor"`   // SM-2 EF parameter, never below 1.3
	NextReview     time.Time  `json:"next_review" db:"next_review"`           // Item is due when now >= NextReview
	LastReviewed   *time.Time `json:"last_reviewed,omitempty" db:"last_reviewed"` // Nil before the first review
	LastQuality    int        `json:"last_quality" db:"last_quality"`         // 0-5 rating of the last recall, kept for display
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
