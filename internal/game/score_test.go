package game

import "testing"

func TestGuessPoints(t *testing.T) {
	cases := []struct {
		rank, timeRemaining, want int
	}{
		{1, 45, 145},
		{1, 0, 100},
		{2, 0, 90},
		{3, 30, 110},
		{6, 0, 50},  // floor kicks in
		{10, 0, 50}, // deep ranks stay at the floor
		{1, 120, 220},
	}
	for _, c := range cases {
		if got := GuessPoints(c.rank, c.timeRemaining); got != c.want {
			t.Errorf("GuessPoints(%d, %d) = %d, want %d", c.rank, c.timeRemaining, got, c.want)
		}
	}
}

func TestGuessPointsNeverBelowFloor(t *testing.T) {
	for rank := 1; rank <= 20; rank++ {
		if got := GuessPoints(rank, 0); got < 50 {
			t.Fatalf("rank %d scored %d, below the floor", rank, got)
		}
	}
}
