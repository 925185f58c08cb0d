package analyze

import (
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/trend"
)

// Trends compares the mean page score of each category between the oldest
// and newest run. Fewer than two runs yields nothing.
func Trends(runs []model.RunResult) []model.CategoryTrend {
	if len(runs) < 2 {
		return nil
	}
	first, last := runs[0], runs[len(runs)-1]

	var out []model.CategoryTrend
	for _, c := range model.Categories {
		from, ok := first.Mean(c)
		if !ok {
			continue
		}
		to, ok := last.Mean(c)
		if !ok {
			continue
		}
		tr := trend.Compute(from, to)
		out = append(out, model.CategoryTrend{
			Category:  c,
			From:      tr.From,
			To:        tr.To,
			Delta:     tr.Delta,
			Percent:   tr.Percent,
			Direction: string(tr.Direction),
		})
	}
	return out
}
