package compare

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"lighthouse-score-analyzer/internal/analyze"
	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/report"
)

// Runs compares the pages present in both before and after, in ascending
// report-stem order. Pages found in only one run are ignored.
func Runs(before, after history.Run, p analyze.Policy) (model.RunComparison, error) {
	r := model.RunComparison{Before: before.Timestamp, After: after.Timestamp}

	prev, err := before.ReportIndex()
	if err != nil {
		return r, err
	}
	curr, err := after.ReportIndex()
	if err != nil {
		return r, err
	}

	common := sets.KeySet(prev).Intersection(sets.KeySet(curr))
	klog.V(1).InfoS("Comparing runs", "before", before.Timestamp, "after", after.Timestamp,
		"common", common.Len(), "onlyBefore", len(prev)-common.Len(), "onlyAfter", len(curr)-common.Len())

	for _, key := range sets.List(common) {
		r.Pages = append(r.Pages, page(key, prev[key], curr[key], p))
	}
	return r, nil
}

func page(key, prevPath, currPath string, p analyze.Policy) model.PageComparison {
	pc := model.PageComparison{Key: key, Name: history.PageName(key)}

	prevReport, prevErr := report.Load(prevPath)
	currReport, currErr := report.Load(currPath)
	if err := utilerrors.NewAggregate([]error{prevErr, currErr}); err != nil {
		pc.Error = err.Error()
		return pc
	}

	prevScores, ok := report.Extract(prevReport)
	if !ok {
		pc.NoScores = true
		return pc
	}
	currScores, ok := report.Extract(currReport)
	if !ok {
		pc.NoScores = true
		return pc
	}

	pc.Deltas, pc.Regressed = Scores(prevScores, currScores, p)
	return pc
}

// Scores computes the per-category movement from prev to curr. Missing
// categories count as 0. regressed is true when any category dropped by the
// regression threshold or more.
func Scores(prev, curr model.ScoreSet, p analyze.Policy) (deltas []model.CategoryDelta, regressed bool) {
	for _, c := range model.Categories {
		before, after := prev.Get(c), curr.Get(c)
		d := model.CategoryDelta{
			Category: c,
			Before:   before,
			After:    after,
			Diff:     after - before,
			Change:   p.Change(after - before),
		}
		if d.Change == model.ChangeRegressed {
			regressed = true
		}
		deltas = append(deltas, d)
	}
	return deltas, regressed
}

// Describe renders a delta the way it is printed.
func Describe(d model.CategoryDelta) string {
	return fmt.Sprintf("%s: %d → %d (%+d)", d.Category.Label(), d.Before, d.After, d.Diff)
}
