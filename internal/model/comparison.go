package model

// CategoryDelta is the before/after movement of one category on one page.
type CategoryDelta struct {
	Category Category `json:"category"`
	Before   int      `json:"before"`
	After    int      `json:"after"`
	Diff     int      `json:"diff"`
	Change   Change   `json:"change"`
}

type PageComparison struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
	// NoScores is set when either report lacks a categories object.
	NoScores  bool            `json:"noScores,omitempty"`
	Deltas    []CategoryDelta `json:"deltas,omitempty"`
	Regressed bool            `json:"regressed"`
}

// RunComparison holds the per-page deltas between two runs.
type RunComparison struct {
	Before string           `json:"before"`
	After  string           `json:"after"`
	Pages  []PageComparison `json:"pages"`
}

func (c RunComparison) Regressed() bool {
	for _, p := range c.Pages {
		if p.Regressed {
			return true
		}
	}
	return false
}
