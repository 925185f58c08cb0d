package analyze

import (
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/profile"
	"lighthouse-score-analyzer/internal/risk"
)

// DefaultThreshold is the drop, in points, that counts as a regression.
const DefaultThreshold = 5

// Policy holds what pages are judged against. Build it once at start-up and
// pass it by value; Baseline is never written after construction.
type Policy struct {
	Baseline  model.ScoreSet
	Threshold int
	Budget    profile.Budget
}

func DefaultPolicy() Policy {
	return Policy{
		Baseline:  model.DefaultBaseline(),
		Threshold: DefaultThreshold,
	}
}

func (p Policy) threshold() int {
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

// Evaluate judges scores against the baseline. A category missing from
// scores counts as 0. A drop of at least the threshold fails the page; a
// smaller drop is an acceptable decline. A nil set means the report had no
// scores and never passes.
func (p Policy) Evaluate(scores model.ScoreSet) model.Verdict {
	if scores == nil {
		return model.Verdict{
			Passed:   false,
			Warnings: []model.Warning{{Kind: model.WarningNoScores}},
		}
	}

	v := model.Verdict{Passed: true}
	for _, c := range model.Categories {
		base, ok := p.Baseline.Lookup(c)
		if !ok {
			continue
		}
		current := scores.Get(c)
		drop := base - current
		switch {
		case drop >= p.threshold():
			v.Warnings = append(v.Warnings, model.Warning{
				Kind: model.WarningRegression, Category: c, Current: current, Baseline: base, Drop: drop,
			})
			v.Passed = false
		case drop > 0:
			v.Warnings = append(v.Warnings, model.Warning{
				Kind: model.WarningDecline, Category: c, Current: current, Baseline: base, Drop: drop,
			})
		}
	}

	// Budgets are advisory and never change Passed.
	if p.Budget.Enabled() {
		if perf, ok := scores.Lookup(model.Performance); ok && perf < p.Budget.MinPerformance {
			v.Warnings = append(v.Warnings, model.Warning{
				Kind:     model.WarningBudget,
				Category: model.Performance,
				Current:  perf,
				Baseline: p.Budget.MinPerformance,
				Drop:     p.Budget.MinPerformance - perf,
				Budget:   string(p.Budget.Name),
			})
		}
	}
	return v
}

// Status classifies diff = score - baseline for display. This is stricter
// than Evaluate: any drop is at least a warning.
func (p Policy) Status(diff int) model.Status {
	switch {
	case diff >= 0:
		return model.StatusPass
	case diff > -p.threshold():
		return model.StatusWarn
	default:
		return model.StatusFail
	}
}

// Change classifies diff = after - before between two runs.
func (p Policy) Change(diff int) model.Change {
	switch {
	case diff > 0:
		return model.ChangeImproved
	case diff == 0:
		return model.ChangeUnchanged
	case diff <= -p.threshold():
		return model.ChangeRegressed
	default:
		return model.ChangeDeclined
	}
}

// Score builds the display rows for the categories present in scores, in
// category order.
func (p Policy) Score(scores model.ScoreSet) []model.CategoryScore {
	var rows []model.CategoryScore
	for _, c := range model.Categories {
		score, ok := scores.Lookup(c)
		if !ok {
			continue
		}
		base := p.Baseline.Get(c)
		rows = append(rows, model.CategoryScore{
			Category: c,
			Score:    score,
			Baseline: base,
			Diff:     score - base,
			Status:   p.Status(score - base),
			Rating:   string(risk.FromScore(score)),
		})
	}
	return rows
}
