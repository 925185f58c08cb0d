package profile

import "strings"

// Name selects a performance budget sized to the project.
type Name string

const (
	None   Name = ""
	Small  Name = "small"
	Medium Name = "medium"
	Large  Name = "large"
)

// Budget is the minimum Lighthouse performance score a page should reach.
type Budget struct {
	Name           Name `json:"name"`
	MinPerformance int  `json:"minPerformance"`
}

// Enabled reports whether a budget was selected.
func (b Budget) Enabled() bool {
	return b.Name != None && b.MinPerformance > 0
}

// Normalize maps user input to a budget name; unknown values yield None.
func Normalize(s string) Name {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return Small
	case "medium":
		return Medium
	case "large":
		return Large
	default:
		return None
	}
}

// For returns the budget of the given size:
// small (<5k lines) 80, medium (5k-50k) 90, large (>50k) 95.
func For(n Name) Budget {
	switch n {
	case Small:
		return Budget{Name: Small, MinPerformance: 80}
	case Medium:
		return Budget{Name: Medium, MinPerformance: 90}
	case Large:
		return Budget{Name: Large, MinPerformance: 95}
	default:
		return Budget{}
	}
}
