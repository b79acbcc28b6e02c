package learning

import "math"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestDefault(t *testing.T) {
	h := Default()
	require.NoError(t, h.Validate())
	assert.Equal(t, 50, h.Epochs)
	assert.Equal(t, 32, h.BatchSize)
	assert.Equal(t, 0.001, h.LearningRate)
	assert.True(t, h.Shuffle)
	assert.Greater(t, h.Threads, 0)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*HyperParameters){
		"epochs":  func(h *HyperParameters) { h.Epochs = 0 },
		"batch":   func(h *HyperParameters) { h.BatchSize = -1 },
		"rate":    func(h *HyperParameters) { h.LearningRate = 0 },
		"beta1":   func(h *HyperParameters) { h.Beta1 = 1 },
		"beta2":   func(h *HyperParameters) { h.Beta2 = -0.1 },
		"epsilon": func(h *HyperParameters) { h.Epsilon = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			h := Default()
			mutate(h)
			assert.Error(t, h.Validate())
		})
	}
}

func TestAdamFirstStep(t *testing.T) {
	params := [][]float64{{1, 1}, {-2}}
	a := NewAdam(Default(), params)
	a.Step(params, [][]float64{{0.5, -3}, {0}})
	assert.Equal(t, 1, a.Steps())
	assert.InDelta(t, 0.999, params[0][0], 1e-6)
	assert.InDelta(t, 1.001, params[0][1], 1e-6)
	assert.Equal(t, -2.0, params[1][0])
}

func TestAdamMinimises(t *testing.T) {
	h := Default()
	h.LearningRate = 0.1
	params := [][]float64{{0}}
	a := NewAdam(h, params)
	for i := 0; i < 1000; i++ {
		x := params[0][0]
		a.Step(params, [][]float64{{2 * (x - 3)}})
	}
	assert.Less(t, math.Abs(params[0][0]-3), 0.1)
}
