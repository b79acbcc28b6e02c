package conv2d

import "gonum.org/v1/gonum/floats"
import "github.com/neurlang/blobcount/layer"

func (f *Conv2D) Name() string {
	return "conv2d"
}

func (f *Conv2D) Shape() layer.Shape {
	return f.out
}

func (f *Conv2D) Params() []float64 {
	return f.params
}

// Activation reports the activation applied to the convolution.
func (f *Conv2D) Activation() layer.Activation {
	return f.activation
}

func (f *Conv2D) split() (kernel, bias []float64) {
	n := len(f.params) - f.out.Depth
	return f.params[:n], f.params[n:]
}

// kernelAt is the offset of the filter vector for kernel cell (i, j) and input channel c.
func (f *Conv2D) kernelAt(i, j, c int) int {
	return ((i*f.subwidth+j)*f.in.Depth + c) * f.out.Depth
}

// Forward computes the convolution of in into out.
func (f *Conv2D) Forward(in, out []float64) {
	kernel, bias := f.split()
	depth := f.out.Depth
	for oy := 0; oy < f.out.Height; oy++ {
		for ox := 0; ox < f.out.Width; ox++ {
			o := (oy*f.out.Width + ox) * depth
			z := out[o : o+depth]
			copy(z, bias)
			for i := 0; i < f.subheight; i++ {
				for j := 0; j < f.subwidth; j++ {
					base := ((oy+i)*f.in.Width + ox + j) * f.in.Depth
					for c := 0; c < f.in.Depth; c++ {
						v := in[base+c]
						if v == 0 {
							continue
						}
						k := f.kernelAt(i, j, c)
						floats.AddScaled(z, v, kernel[k:k+depth])
					}
				}
			}
			for n := range z {
				z[n] = f.activation.Apply(z[n])
			}
		}
	}
}

// Backward accumulates kernel and bias gradients and optionally the input gradient.
func (f *Conv2D) Backward(in, out, dout, din, dparams []float64) {
	kernel, _ := f.split()
	dkernel, dbias := dparams[:len(kernel)], dparams[len(kernel):]
	depth := f.out.Depth
	dz := make([]float64, depth)

	if din != nil {
		for n := range din {
			din[n] = 0
		}
	}

	for oy := 0; oy < f.out.Height; oy++ {
		for ox := 0; ox < f.out.Width; ox++ {
			o := (oy*f.out.Width + ox) * depth
			var live bool
			for n := 0; n < depth; n++ {
				dz[n] = dout[o+n] * f.activation.Derivative(out[o+n])
				live = live || dz[n] != 0
			}
			if !live {
				continue
			}
			floats.Add(dbias, dz)
			for i := 0; i < f.subheight; i++ {
				for j := 0; j < f.subwidth; j++ {
					base := ((oy+i)*f.in.Width + ox + j) * f.in.Depth
					for c := 0; c < f.in.Depth; c++ {
						k := f.kernelAt(i, j, c)
						if v := in[base+c]; v != 0 {
							floats.AddScaled(dkernel[k:k+depth], v, dz)
						}
						if din != nil {
							din[base+c] += floats.Dot(kernel[k:k+depth], dz)
						}
					}
				}
			}
		}
	}
}
