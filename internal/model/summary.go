package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ModeAnalyze = "analyze"
	ModeCompare = "compare"

	StatusPassed    = "PASSED"
	StatusRegressed = "REGRESSED"
)

// CategoryTrend is the movement of a category's mean page score across the
// analyzed runs.
type CategoryTrend struct {
	Category  Category `json:"category"`
	From      float64  `json:"from"`
	To        float64  `json:"to"`
	Delta     float64  `json:"delta"`
	Percent   float64  `json:"percent"`
	Direction string   `json:"direction"`
}

// Summary is the exported form of one invocation.
type Summary struct {
	ID           string          `json:"id"`
	GeneratedUTC string          `json:"generatedUtc"`
	Mode         string          `json:"mode"`
	ReportDir    string          `json:"reportDir"`
	Status       string          `json:"status"`
	Baseline     ScoreSet        `json:"baseline"`
	Threshold    int             `json:"threshold"`
	Budget       string          `json:"budget,omitempty"`
	Runs         []RunResult     `json:"runs,omitempty"`
	Trends       []CategoryTrend `json:"trends,omitempty"`
	Comparison   *RunComparison  `json:"comparison,omitempty"`
}

func NewSummary(mode, reportDir string) *Summary {
	return &Summary{
		ID:           uuid.NewString(),
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		Mode:         mode,
		ReportDir:    reportDir,
		Status:       StatusPassed,
	}
}

// Regressed reports whether any analyzed run or compared page regressed.
func (s *Summary) Regressed() bool {
	for _, r := range s.Runs {
		if !r.Passed() {
			return true
		}
	}
	return s.Comparison != nil && s.Comparison.Regressed()
}

// Finalize derives Status from the collected results.
func (s *Summary) Finalize() {
	s.Status = StatusPassed
	if s.Regressed() {
		s.Status = StatusRegressed
	}
}
