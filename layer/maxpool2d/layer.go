// Package maxpool2d implements a 2D max pooling layer and combiner
package maxpool2d

import "fmt"
import "github.com/neurlang/blobcount/layer"

type MaxPool2DLayer struct {
	subwidth, subheight, stride int
}

type MaxPool2D struct {
	in, out                     layer.Shape
	subwidth, subheight, stride int
}

// New creates a new MaxPool2D layer with pool subsize and stride
func New(subwidth, subheight, stride int) (o *MaxPool2DLayer, err error) {
	if subwidth <= 0 || subheight <= 0 || stride <= 0 {
		return nil, fmt.Errorf("New MaxPool2D: Pool %dx%d stride %d is not positive", subwidth, subheight, stride)
	}
	o = new(MaxPool2DLayer)
	o.subwidth = subwidth
	o.subheight = subheight
	o.stride = stride
	return
}

// MustNew creates a new MaxPool2D layer with pool subsize and stride
func MustNew(subwidth, subheight, stride int) *MaxPool2DLayer {
	o, err := New(subwidth, subheight, stride)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay turns MaxPool2D layer into a combiner. Windows that do not fit are dropped.
func (i *MaxPool2DLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if in.Width < i.subwidth || in.Height < i.subheight {
		return nil, fmt.Errorf("Lay MaxPool2D: Input %s is smaller than pool %dx%d", in, i.subheight, i.subwidth)
	}
	o := new(MaxPool2D)
	o.in = in
	o.out = layer.Shape{
		Height: (in.Height-i.subheight)/i.stride + 1,
		Width:  (in.Width-i.subwidth)/i.stride + 1,
		Depth:  in.Depth,
	}
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	o.stride = i.stride
	return o, nil
}
