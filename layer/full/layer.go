// Package full implements a fully connected layer and combiner
package full

import "fmt"
import "github.com/neurlang/blobcount/layer"

type FullLayer struct {
	size       int
	activation layer.Activation
}

type Full struct {
	inputs     int
	out        layer.Shape
	activation layer.Activation

	// params holds the weights [inputs][size] followed by one bias per unit
	params []float64
}

// MustNew creates a new full layer with size units and activation
func MustNew(size int, activation layer.Activation) *FullLayer {
	o, err := New(size, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with size units and activation
func New(size int, activation layer.Activation) (o *FullLayer, err error) {
	if size <= 0 {
		return nil, fmt.Errorf("New Full: Size %d is not positive", size)
	}
	o = new(FullLayer)
	o.size = size
	o.activation = activation
	return
}

// Lay turns full layer into a combiner, the input is flattened
func (i *FullLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if in.Size() <= 0 {
		return nil, fmt.Errorf("Lay Full: Input %s is empty", in)
	}
	o := new(Full)
	o.inputs = in.Size()
	o.out = layer.Flat(i.size)
	o.activation = i.activation
	o.params = make([]float64, o.inputs*i.size+i.size)
	layer.GlorotUniform(o.params[:o.inputs*i.size], o.inputs, i.size)
	return o, nil
}
