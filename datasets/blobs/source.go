package blobs

import rand "math/rand/v2"

// Source supplies the uniform draws used while placing circles.
type Source interface {

	// IntN returns a uniform integer in [0, n).
	IntN(n int) int

	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// globalSource draws from the unseeded, goroutine safe math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

func (globalSource) Float64() float64 {
	return rand.Float64()
}
