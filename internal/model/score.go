package model

// ScoreSet maps a category to its 0-100 score. A category missing from the
// source report is missing here too; nothing is zero-filled.
type ScoreSet map[Category]int

// Get returns the score for c, or 0 when the category was not reported.
func (s ScoreSet) Get(c Category) int {
	return s[c]
}

// Lookup returns the score for c and whether it was reported.
func (s ScoreSet) Lookup(c Category) (int, bool) {
	v, ok := s[c]
	return v, ok
}

func (s ScoreSet) Clone() ScoreSet {
	if s == nil {
		return nil
	}
	out := make(ScoreSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// DefaultBaseline returns the reference scores of the v1.2.0 release.
// Every call returns a fresh map so callers cannot alter the defaults.
func DefaultBaseline() ScoreSet {
	return ScoreSet{
		Performance:   97,
		Accessibility: 100,
		BestPractices: 100,
		SEO:           100,
	}
}
