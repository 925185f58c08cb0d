package trend

import "math"

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

const epsilon = 0.00001

// Trend describes how a score moved from one run to another.
type Trend struct {
	From      float64   `json:"from"`
	To        float64   `json:"to"`
	Delta     float64   `json:"delta"`
	Percent   float64   `json:"percent"`
	Direction Direction `json:"direction"`
}

// Compute returns the movement from prev to curr, rounded to two places.
func Compute(prev, curr float64) Trend {
	d := curr - prev

	dir := Flat
	if d > epsilon {
		dir = Up
	} else if d < -epsilon {
		dir = Down
	}

	pct := 0.0
	if math.Abs(prev) > epsilon {
		pct = d / prev * 100
	}

	return Trend{
		From:      round(prev, 2),
		To:        round(curr, 2),
		Delta:     round(d, 2),
		Percent:   round(pct, 2),
		Direction: dir,
	}
}

func (t Trend) Arrow() string {
	switch t.Direction {
	case Up:
		return "↑"
	case Down:
		return "↓"
	default:
		return "→"
	}
}

// Label is the wording used in terminal and Markdown output.
func (t Trend) Label() string {
	switch t.Direction {
	case Up:
		return "IMPROVING"
	case Down:
		return "DECLINING"
	default:
		return "SAME"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
