package common

import "math"

type Float interface {
	~float32 | ~float64
}

func Lerp[T Float](a, b, t T) T {
	return a + t*(b-a)
}

// RoundOutward rounds away from zero on the positive side and down on the
// negative side, so small jitters never collapse to 0.
func RoundOutward(v float64) float64 {
	if v > 0 {
		return math.Ceil(v)
	}
	return math.Floor(v)
}
