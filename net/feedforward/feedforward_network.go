// Package feedforward implements a feedforward network type
package feedforward

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/layer"

// ErrShape is returned when values or weights do not fit the network.
var ErrShape = errors.New("feedforward: shape mismatch")

// FeedforwardNetwork is the feedforward network
type FeedforwardNetwork struct {
	layers    []layer.Layer
	combiners []layer.Combiner
	input     layer.Shape
}

// NewLayer adds a layer to the end of network. Layers are instantiated by Build.
func (f *FeedforwardNetwork) NewLayer(l layer.Layer) {
	f.layers = append(f.layers, l)
	f.combiners = nil
}

// Build instantiates every layer in order, each reading the previous layer's output.
func (f *FeedforwardNetwork) Build(in layer.Shape) error {
	if in.Size() <= 0 {
		return errors.Wrapf(ErrShape, "input %s is empty", in)
	}
	if len(f.layers) == 0 {
		return errors.New("feedforward: network has no layers")
	}
	combiners := make([]layer.Combiner, 0, len(f.layers))
	shape := in
	for i, l := range f.layers {
		c, err := l.Lay(shape)
		if err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
		combiners = append(combiners, c)
		shape = c.Shape()
	}
	f.combiners = combiners
	f.input = in
	return nil
}

// Built reports whether the network was instantiated by Build.
func (f FeedforwardNetwork) Built() bool {
	return len(f.combiners) > 0
}

// Len returns the number of trainable weights inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, c := range f.combiners {
		o += len(c.Params())
	}
	return
}

// LenLayers returns the number of layers.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the n-th instantiated layer, nil when out of range or not built.
func (f FeedforwardNetwork) GetLayer(n int) layer.Combiner {
	if n < 0 || n >= len(f.combiners) {
		return nil
	}
	return f.combiners[n]
}

// Input is the shape the network was built for.
func (f FeedforwardNetwork) Input() layer.Shape {
	return f.input
}

// Output is the shape of the final layer, zero when not built.
func (f FeedforwardNetwork) Output() layer.Shape {
	if len(f.combiners) == 0 {
		return layer.Shape{}
	}
	return f.combiners[len(f.combiners)-1].Shape()
}

// Params returns the weights of each layer. The slices alias the network.
func (f FeedforwardNetwork) Params() (o [][]float64) {
	o = make([][]float64, len(f.combiners))
	for i, c := range f.combiners {
		o[i] = c.Params()
	}
	return
}

// Infer runs the network on one input and returns the first output value.
func (f FeedforwardNetwork) Infer(in []float64) (float64, error) {
	if !f.Built() {
		return 0, errors.New("feedforward: network is not built")
	}
	out, err := f.NewTape().Forward(in)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
