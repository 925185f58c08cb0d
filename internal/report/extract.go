package report

import (
	"math"

	"lighthouse-score-analyzer/internal/model"
)

// Extract returns the tracked category scores of r. ok is false when r has
// no categories object. Categories that are absent or unscored (null) are
// left out of the set.
func Extract(r *model.Report) (scores model.ScoreSet, ok bool) {
	if r == nil || r.Categories == nil {
		return nil, false
	}
	scores = make(model.ScoreSet, len(model.Categories))
	for _, c := range model.Categories {
		entry, found := r.Categories[string(c)]
		if !found || entry.Score == nil {
			continue
		}
		scores[c] = Percent(*entry.Score)
	}
	return scores, true
}

// Percent converts a 0-1 fraction to a 0-100 score, rounding halves away
// from zero.
func Percent(fraction float64) int {
	return int(math.Round(fraction * 100))
}
