package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape(t *testing.T) {
	s := Shape{Height: 22, Width: 22, Depth: 16}
	assert.Equal(t, 7744, s.Size())
	assert.Equal(t, "[22,22,16]", s.String())
	assert.Equal(t, 512, Flat(512).Size())
}

func TestActivation(t *testing.T) {
	assert.Equal(t, 0.0, ReLU.Apply(-3))
	assert.Equal(t, 2.5, ReLU.Apply(2.5))
	assert.Equal(t, -3.0, Linear.Apply(-3))
	assert.Equal(t, 0.0, ReLU.Derivative(0))
	assert.Equal(t, 1.0, ReLU.Derivative(0.1))
	assert.Equal(t, 1.0, Linear.Derivative(-5))
	assert.Equal(t, "relu", ReLU.String())
	assert.Equal(t, "linear", Linear.String())
}

func TestGlorotUniformBounds(t *testing.T) {
	w := make([]float64, 1000)
	GlorotUniform(w, 9, 16)
	limit := math.Sqrt(6.0 / 25.0)
	var nonzero int
	for _, v := range w {
		assert.LessOrEqual(t, math.Abs(v), limit)
		if v != 0 {
			nonzero++
		}
	}
	assert.Greater(t, nonzero, 990)
}
