// Package conv2d implements a 2D valid convolution layer and combiner
package conv2d

import "fmt"
import "github.com/neurlang/blobcount/layer"

type Conv2DLayer struct {
	subwidth, subheight, filters int
	activation                   layer.Activation
}

type Conv2D struct {
	in, out             layer.Shape
	subwidth, subheight int
	activation          layer.Activation

	// params holds the kernel [subheight][subwidth][in depth][filters] followed by one bias per filter
	params []float64
}

// MustNew creates a new Conv2D layer with kernel subsize, number of filters and activation
func MustNew(subwidth, subheight, filters int, activation layer.Activation) *Conv2DLayer {
	o, err := New(subwidth, subheight, filters, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with kernel subsize, number of filters and activation
func New(subwidth, subheight, filters int, activation layer.Activation) (o *Conv2DLayer, err error) {
	if subwidth <= 0 || subheight <= 0 {
		return nil, fmt.Errorf("New Conv2D: Kernel %dx%d is empty", subwidth, subheight)
	}
	if filters <= 0 {
		return nil, fmt.Errorf("New Conv2D: Filters %d is not positive", filters)
	}
	o = new(Conv2DLayer)
	o.subwidth = subwidth
	o.subheight = subheight
	o.filters = filters
	o.activation = activation
	return
}

// Lay turns Conv2D layer into a combiner with Glorot uniform kernel and zero biases
func (i *Conv2DLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if in.Width < i.subwidth {
		return nil, fmt.Errorf("Lay Conv2D: Width %d is lower than Subwidth %d", in.Width, i.subwidth)
	}
	if in.Height < i.subheight {
		return nil, fmt.Errorf("Lay Conv2D: Height %d is lower than Subheight %d", in.Height, i.subheight)
	}
	if in.Depth <= 0 {
		return nil, fmt.Errorf("Lay Conv2D: Depth %d is not positive", in.Depth)
	}
	o := new(Conv2D)
	o.in = in
	o.out = layer.Shape{
		Height: in.Height - i.subheight + 1,
		Width:  in.Width - i.subwidth + 1,
		Depth:  i.filters,
	}
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	o.activation = i.activation

	kernel := i.subwidth * i.subheight * in.Depth * i.filters
	o.params = make([]float64, kernel+i.filters)
	layer.GlorotUniform(o.params[:kernel], i.subwidth*i.subheight*in.Depth, i.subwidth*i.subheight*i.filters)
	return o, nil
}
