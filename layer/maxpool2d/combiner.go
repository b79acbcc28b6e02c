package maxpool2d

import "github.com/neurlang/blobcount/layer"

func (f *MaxPool2D) Name() string {
	return "maxpool2d"
}

func (f *MaxPool2D) Shape() layer.Shape {
	return f.out
}

func (f *MaxPool2D) Params() []float64 {
	return nil
}

// argmax returns the input offset of the largest value in the window of output (oy, ox, c).
// Ties go to the first value in row-major order.
func (f *MaxPool2D) argmax(in []float64, oy, ox, c int) int {
	best := -1
	for i := 0; i < f.subheight; i++ {
		for j := 0; j < f.subwidth; j++ {
			n := ((oy*f.stride+i)*f.in.Width+ox*f.stride+j)*f.in.Depth + c
			if best < 0 || in[n] > in[best] {
				best = n
			}
		}
	}
	return best
}

func (f *MaxPool2D) Forward(in, out []float64) {
	for oy := 0; oy < f.out.Height; oy++ {
		for ox := 0; ox < f.out.Width; ox++ {
			for c := 0; c < f.out.Depth; c++ {
				out[(oy*f.out.Width+ox)*f.out.Depth+c] = in[f.argmax(in, oy, ox, c)]
			}
		}
	}
}

// Backward routes each output gradient to the input that won its window.
func (f *MaxPool2D) Backward(in, out, dout, din, dparams []float64) {
	if din == nil {
		return
	}
	for n := range din {
		din[n] = 0
	}
	for oy := 0; oy < f.out.Height; oy++ {
		for ox := 0; ox < f.out.Width; ox++ {
			for c := 0; c < f.out.Depth; c++ {
				din[f.argmax(in, oy, ox, c)] += dout[(oy*f.out.Width+ox)*f.out.Depth+c]
			}
		}
	}
}
