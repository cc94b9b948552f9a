package common

import "testing"

func TestRoundOutward(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.2, 1},
		{1, 1},
		{-0.2, -1},
		{-3, -3},
		{0, 0},
	}
	for _, c := range cases {
		if got := RoundOutward(c.in); got != c.want {
			t.Fatalf("RoundOutward(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("Lerp(2, 4, 0.5) = %v, want 3", got)
	}
}
