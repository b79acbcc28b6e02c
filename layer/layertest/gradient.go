// Package layertest checks combiner gradients against finite differences
package layertest

import "math"
import rand "math/rand/v2"
import "testing"

import "github.com/neurlang/blobcount/layer"

const step = 1e-6
const tolerance = 1e-4

// Random returns n deterministic values in [-1, 1).
func Random(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*r.Float64() - 1
	}
	return v
}

// loss is a fixed random projection of the combiner output.
func loss(c layer.Combiner, in, proj []float64) float64 {
	out := make([]float64, c.Shape().Size())
	c.Forward(in, out)
	var sum float64
	for i := range out {
		sum += out[i] * proj[i]
	}
	return sum
}

func compare(t *testing.T, what string, i int, analytic, numeric float64) {
	t.Helper()
	if math.Abs(analytic-numeric) > tolerance*math.Max(1, math.Abs(numeric)) {
		t.Errorf("%s[%d]: analytic %g numeric %g", what, i, analytic, numeric)
	}
}

// CheckGradients compares Backward against central differences for every
// input value and every weight of c.
func CheckGradients(t *testing.T, c layer.Combiner, in []float64) {
	t.Helper()
	out := make([]float64, c.Shape().Size())
	c.Forward(in, out)
	proj := Random(len(out), 7)

	params := c.Params()
	din := make([]float64, len(in))
	dparams := make([]float64, len(params))
	c.Backward(in, out, proj, din, dparams)

	for i := range in {
		saved := in[i]
		in[i] = saved + step
		up := loss(c, in, proj)
		in[i] = saved - step
		down := loss(c, in, proj)
		in[i] = saved
		compare(t, "din", i, din[i], (up-down)/(2*step))
	}
	for i := range params {
		saved := params[i]
		params[i] = saved + step
		up := loss(c, in, proj)
		params[i] = saved - step
		down := loss(c, in, proj)
		params[i] = saved
		compare(t, "dparams", i, dparams[i], (up-down)/(2*step))
	}
}
