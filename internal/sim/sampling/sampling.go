// Package sampling provides the stochastic primitives used by the claim
// simulation engine: weighted categorical draws, clamped normal/poisson/
// exponential variates, and unbiased shuffling. Every operator takes an
// explicit randomness source so tests can drive it deterministically.
package sampling

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Source yields uniform floats in [0, 1). It is the engine's only source of
// nondeterminism; production code wraps math/rand, tests inject stubs.
type Source interface {
	Float64() float64
}

// NewSource returns a math/rand backed Source. A seed of 0 selects a
// time-based seed.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// WeightedChoice returns one of items with probability proportional to the
// matching weight. Weights need not be normalized. Floating-point remainder
// after the cumulative subtraction resolves to the last item, so the full
// probability mass is always consumed.
func WeightedChoice[T any](src Source, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("weighted choice: no items")
	}
	if len(items) != len(weights) {
		return zero, fmt.Errorf("weighted choice: %d items but %d weights", len(items), len(weights))
	}

	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return zero, fmt.Errorf("weighted choice: total weight is zero")
	}

	r := src.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r < 0 {
			return items[i], nil
		}
	}
	return items[len(items)-1], nil
}

// Normal draws a normal variate via the Box–Muller transform.
func Normal(src Source, mean, stdDev float64) float64 {
	u1 := src.Float64()
	u2 := src.Float64()
	// Guard against log(0).
	if u1 <= 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

// ClampedNormal draws a normal variate, rounds it, and clamps the result to
// [min, max]. The return value is never outside the bounds.
func ClampedNormal(src Source, mean, stdDev, min, max float64) float64 {
	v := math.Round(Normal(src, mean, stdDev))
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampedNormalInt is ClampedNormal for integer counts.
func ClampedNormalInt(src Source, mean, stdDev float64, min, max int) int {
	return int(ClampedNormal(src, mean, stdDev, float64(min), float64(max)))
}

// Bernoulli returns true with probability p. p <= 0 never succeeds and
// p >= 1 always succeeds.
func Bernoulli(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Poisson draws from a Poisson distribution with the given rate using
// Knuth's multiplication method.
func Poisson(src Source, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= src.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// Exponential draws from an exponential distribution with the given rate via
// inverse transform.
func Exponential(src Source, lambda float64) float64 {
	if lambda <= 0 {
		return 0
	}
	u := src.Float64()
	return -math.Log(1-u) / lambda
}

// IntN returns a uniform integer in [0, n).
func IntN(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Between returns a uniform float in [min, max).
func Between(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Shuffle permutes items in place with an unbiased Fisher–Yates walk.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := IntN(src, i+1)
		items[i], items[j] = items[j], items[i]
	}
}
