package util

import (
	"math/rand"

	"github.com/fogleman/ease"
)

// RandomRange returns a uniformly distributed value in [min, max).
func RandomRange(rng *rand.Rand, min float64, max float64) float64 {
	return rng.Float64()*(max-min) + min
}

// GenerateLut returns a pulse of the given length: eased up to 1 over the
// first half and mirrored back down over the second.
func GenerateLut(length int, easing func(float64) float64) []float64 {
	if easing == nil {
		easing = ease.InOutQuad
	}
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := easing(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

// Memoizer caches look-up tables by length.
type Memoizer map[int][]float64

// GenerateLutMemoized is GenerateLut with the default easing, cached in m.
func GenerateLutMemoized(length int, m Memoizer) []float64 {
	if lut, ok := m[length]; ok {
		return lut
	}
	lut := GenerateLut(length, nil)
	m[length] = lut
	return lut
}
