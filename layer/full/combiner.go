package full

import "gonum.org/v1/gonum/floats"
import "github.com/neurlang/blobcount/layer"

func (f *Full) Name() string {
	return "dense"
}

func (f *Full) Shape() layer.Shape {
	return f.out
}

func (f *Full) Params() []float64 {
	return f.params
}

// Activation reports the activation applied to the units.
func (f *Full) Activation() layer.Activation {
	return f.activation
}

func (f *Full) row(i int) []float64 {
	n := f.out.Depth
	return f.params[i*n : (i+1)*n]
}

func (f *Full) Forward(in, out []float64) {
	copy(out, f.params[f.inputs*f.out.Depth:])
	for i, v := range in {
		if v != 0 {
			floats.AddScaled(out, v, f.row(i))
		}
	}
	for n := range out {
		out[n] = f.activation.Apply(out[n])
	}
}

func (f *Full) Backward(in, out, dout, din, dparams []float64) {
	n := f.out.Depth
	dz := make([]float64, n)
	for j := range dz {
		dz[j] = dout[j] * f.activation.Derivative(out[j])
	}
	floats.Add(dparams[f.inputs*n:], dz)
	for i, v := range in {
		if v != 0 {
			floats.AddScaled(dparams[i*n:(i+1)*n], v, dz)
		}
		if din != nil {
			din[i] = floats.Dot(f.row(i), dz)
		}
	}
}
