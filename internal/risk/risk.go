package risk

// Rating is the Lighthouse colour band of a 0-100 category score.
type Rating string

const (
	Good             Rating = "good"
	NeedsImprovement Rating = "needs-improvement"
	Poor             Rating = "poor"
)

func FromScore(score int) Rating {
	switch {
	case score >= 90:
		return Good
	case score >= 50:
		return NeedsImprovement
	default:
		return Poor
	}
}
