package models

import "time"

// ReviewEvent is one entry of the append-only review history. The history log
// is written once per completed review and only ever read back for statistics.
type ReviewEvent struct {
	ID         int64     `json:"id" db:"id"`
	ItemID     string    `json:"item_id" db:"item_id"`
	Quality    int       `json:"quality" db:"quality"`
	ReviewedAt time.Time `json:"reviewed_at" db:"reviewed_at"`
}
