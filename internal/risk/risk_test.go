package risk

import "testing"

func TestFromScore(t *testing.T) {
	cases := map[int]Rating{
		100: Good,
		90:  Good,
		89:  NeedsImprovement,
		50:  NeedsImprovement,
		49:  Poor,
		0:   Poor,
	}
	for score, want := range cases {
		if got := FromScore(score); got != want {
			t.Errorf("FromScore(%d) = %s, want %s", score, got, want)
		}
	}
}
