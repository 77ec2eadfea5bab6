package models

// StudyStatistics is a derived snapshot over the whole review collection and
// its history. It is computed on demand and never persisted.
type StudyStatistics struct {
	TotalReviews     int     `json:"total_reviews"`
	CorrectReviews   int     `json:"correct_reviews"`
	AverageQuality   float64 `json:"average_quality"`
	StudyStreak      int     `json:"study_streak"` // Consecutive calendar days with at least one review
	MasteredItems    int     `json:"mastered_items"`
	ItemsToReview    int     `json:"items_to_review"`
	EstimatedMinutes int     `json:"estimated_minutes"` // Rough heuristic, not measured telemetry
}
