package spaced_repetition

import "fmt"

// Confidence is the optional self-reported signal attached to a boolean
// answer by the flashcard and quiz modes.
type Confidence string

const (
	ConfidenceUnspecified Confidence = ""
	ConfidenceLow         Confidence = "low"
	ConfidenceMedium      Confidence = "medium"
	ConfidenceHigh        Confidence = "high"
)

// Rating is the discrete self-rating shown in the review UI. It bypasses the
// correct/confidence heuristic and is used as the quality score directly.
type Rating string

const (
	RatingWrong Rating = "wrong"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// QualitySkipped is the quality recorded when the learner gave no answer at
// all (timeout or explicit skip). It is the only path to quality 0 from the
// boolean answer flow: a wrong answer alone maps to 2, because an attempted
// wrong answer is a weaker lapse signal than a blackout.
const QualitySkipped = int(QualityBlackout)

// ResponseToQuality converts a correct/incorrect answer plus an optional
// confidence signal into an SM-2 quality score.
//
//	incorrect               -> 2
//	correct + low           -> 3 ("Hard")
//	correct + medium        -> 4 ("Good")
//	correct + high or unset -> 5 ("Easy")
func ResponseToQuality(isCorrect bool, confidence Confidence) (int, error) {
	switch confidence {
	case ConfidenceUnspecified, ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
	default:
		return 0, fmt.Errorf("%w: unknown confidence %q", ErrInvalidInput, confidence)
	}

	if !isCorrect {
		return int(QualityIncorrectFamiliar), nil
	}

	switch confidence {
	case ConfidenceLow:
		return int(QualityCorrectDifficult), nil
	case ConfidenceMedium:
		return int(QualityCorrectHesitation), nil
	default:
		return int(QualityPerfect), nil
	}
}

// RatingToQuality converts a discrete UI rating into a quality score. Note
// the asymmetry with ResponseToQuality: an explicit "wrong" maps to 0, not 2,
// because downstream statistics trust an explicit 0 as the stronger lapse
// signal.
func RatingToQuality(rating Rating) (int, error) {
	switch rating {
	case RatingWrong:
		return int(QualityBlackout), nil
	case RatingHard:
		return int(QualityCorrectDifficult), nil
	case RatingGood:
		return int(QualityCorrectHesitation), nil
	case RatingEasy:
		return int(QualityPerfect), nil
	default:
		return 0, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, rating)
	}
}
