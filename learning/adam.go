package learning

import "math"

import "gonum.org/v1/gonum/floats"

// Adam keeps the moment estimates for a set of weight slices.
type Adam struct {
	rate, beta1, beta2, epsilon float64

	m, v [][]float64
	t    int
}

// NewAdam creates an optimiser for weights shaped like params.
func NewAdam(h *HyperParameters, params [][]float64) *Adam {
	a := &Adam{
		rate:    h.LearningRate,
		beta1:   h.Beta1,
		beta2:   h.Beta2,
		epsilon: h.Epsilon,
		m:       make([][]float64, len(params)),
		v:       make([][]float64, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float64, len(p))
		a.v[i] = make([]float64, len(p))
	}
	return a
}

// Steps is the number of updates applied so far.
func (a *Adam) Steps() int {
	return a.t
}

// Step updates params in place given the gradients of the loss.
func (a *Adam) Step(params, grads [][]float64) {
	a.t++
	t := float64(a.t)
	rate := a.rate * math.Sqrt(1-math.Pow(a.beta2, t)) / (1 - math.Pow(a.beta1, t))
	for i, p := range params {
		m, v, g := a.m[i], a.v[i], grads[i]
		floats.Scale(a.beta1, m)
		floats.AddScaled(m, 1-a.beta1, g)
		for j := range p {
			v[j] = a.beta2*v[j] + (1-a.beta2)*g[j]*g[j]
			p[j] -= rate * m[j] / (math.Sqrt(v[j]) + a.epsilon)
		}
	}
}
