package model

import "fmt"

// WarningKind distinguishes the warnings a page can collect.
type WarningKind string

const (
	WarningRegression WarningKind = "regression"
	WarningDecline    WarningKind = "decline"
	WarningBudget     WarningKind = "budget"
	WarningNoScores   WarningKind = "no-scores"
)

type Warning struct {
	Kind     WarningKind `json:"kind"`
	Category Category    `json:"category,omitempty"`
	Current  int         `json:"current"`
	Baseline int         `json:"baseline"`
	// Drop is Baseline - Current for regressions and declines, and the
	// shortfall against the budget for budget warnings.
	Drop   int    `json:"drop"`
	Budget string `json:"budget,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningRegression:
		return fmt.Sprintf("%s: %d/100 (baseline: %d, dropped %d points)",
			w.Category.Label(), w.Current, w.Baseline, w.Drop)
	case WarningDecline:
		return fmt.Sprintf("%s: %d/100 (baseline: %d, dropped %d points, acceptable)",
			w.Category.Label(), w.Current, w.Baseline, w.Drop)
	case WarningBudget:
		return fmt.Sprintf("%s: %d/100 is below the %s budget (%d)",
			w.Category.Label(), w.Current, w.Budget, w.Baseline)
	default:
		return "unable to extract scores"
	}
}

// Verdict is the outcome of judging one page against the baseline.
type Verdict struct {
	Passed   bool      `json:"passed"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// CategoryScore is one printed score row of a page.
type CategoryScore struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Baseline int      `json:"baseline"`
	Diff     int      `json:"diff"`
	Status   Status   `json:"status"`
	Rating   string   `json:"rating"`
}

type PageResult struct {
	File string `json:"file"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	// Error is set when the report could not be loaded; the page is then
	// skipped and does not count towards the run verdict.
	Error     string          `json:"error,omitempty"`
	HasScores bool            `json:"hasScores"`
	Scores    []CategoryScore `json:"scores,omitempty"`
	Verdict   Verdict         `json:"verdict"`
}

func (p PageResult) Loaded() bool {
	return p.Error == ""
}

// RunResult is the analysis of one timestamped run directory.
type RunResult struct {
	Timestamp string       `json:"timestamp"`
	Dir       string       `json:"dir"`
	// Error is set when the run directory itself could not be read. Pages is
	// then empty.
	Error     string       `json:"error,omitempty"`
	Pages     []PageResult `json:"pages"`
	// LoadErrors aggregates the load failures of Pages.
	LoadErrors error `json:"-"`
}

// Passed reports whether every loaded page passed.
func (r RunResult) Passed() bool {
	for _, p := range r.Pages {
		if p.Loaded() && !p.Verdict.Passed {
			return false
		}
	}
	return true
}

// Mean returns the average score of c over the pages that reported it.
func (r RunResult) Mean(c Category) (float64, bool) {
	total, n := 0, 0
	for _, p := range r.Pages {
		for _, s := range p.Scores {
			if s.Category == c {
				total += s.Score
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}
