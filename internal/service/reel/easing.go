package reel

import "math"

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// EaseOutBack кривая с небольшим перелётом за 1 перед концом
func EaseOutBack(x float64) float64 {
	return 1 + backC3*math.Pow(x-1, 3) + backC1*math.Pow(x-1, 2)
}

// lerp с ограничением t в [0, 1]
func lerp(a, b, t float64) float64 {
	t = max(0, min(1, t))
	return a + (b-a)*t
}
