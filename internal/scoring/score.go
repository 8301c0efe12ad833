// Package scoring turns a single graded practice attempt into a 0-100
// mastery score, plus the two named strategies for folding a fresh score
// into the stored record.
package scoring

const (
	correctBase   = 80.0
	incorrectBase = 20.0

	// OfflineBase seeds the mastery record when an offline replay touches a
	// topic the user has never attempted online.
	OfflineBase = 50.0

	slowThresholdSeconds = 30
	fastThresholdSeconds = 10
)

// Score computes a per-event mastery score from one attempt. It is stateless
// and does not read prior mastery.
//
// Confidence contributes (confidence-0.5)*20, so +-10 across [0,1]. Timing
// only matters for correct answers, with strict inequalities: slower than 30s
// costs 10, faster than 10s earns 5, exactly 30 or 10 changes nothing.
func Score(isCorrect bool, solvingTimeSeconds *int, confidence *float64) float64 {
	score := incorrectBase
	if isCorrect {
		score = correctBase
	}

	if confidence != nil {
		score += (*confidence - 0.5) * 20.0
	}

	if solvingTimeSeconds != nil && isCorrect {
		if *solvingTimeSeconds > slowThresholdSeconds {
			score -= 10.0
		} else if *solvingTimeSeconds < fastThresholdSeconds {
			score += 5.0
		}
	}

	return Clamp(score)
}

// ApplyOnline is the replace strategy: the fresh per-event score overwrites
// whatever was stored. Used by the synchronous submit path.
func ApplyOnline(_ float64, fresh float64) float64 {
	return Clamp(fresh)
}

// ApplyOffline is the incremental-delta strategy used by offline replay:
// +5 for a correct answer, -2 for an incorrect one, clamped. Callers without
// an existing record should pass OfflineBase as old.
func ApplyOffline(old float64, isCorrect bool) float64 {
	delta := -2.0
	if isCorrect {
		delta = 5.0
	}
	return Clamp(old + delta)
}

// Clamp bounds a score to [0,100].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
