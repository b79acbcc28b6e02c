package feedforward

import "github.com/pkg/errors"

// Tape records the activations of one forward pass so that the gradients can be
// computed by Backward. A Tape belongs to one goroutine; the network can be shared.
type Tape struct {
	net    *FeedforwardNetwork
	values [][]float64
	deltas [][]float64
	grads  [][]float64
}

// NewTape allocates the buffers for one sample in flight.
func (f *FeedforwardNetwork) NewTape() *Tape {
	t := &Tape{net: f}
	t.values = make([][]float64, len(f.combiners)+1)
	t.deltas = make([][]float64, len(f.combiners)+1)
	t.grads = make([][]float64, len(f.combiners))
	t.values[0] = make([]float64, f.input.Size())
	t.deltas[0] = nil
	for i, c := range f.combiners {
		t.values[i+1] = make([]float64, c.Shape().Size())
		t.deltas[i+1] = make([]float64, c.Shape().Size())
		t.grads[i] = make([]float64, len(c.Params()))
	}
	return t
}

// Forward runs in through every layer and returns the output. The returned
// slice is owned by the tape and overwritten by the next Forward.
func (t *Tape) Forward(in []float64) ([]float64, error) {
	if len(in) != len(t.values[0]) {
		return nil, errors.Wrapf(ErrShape, "input has %d values, network expects %d", len(in), len(t.values[0]))
	}
	copy(t.values[0], in)
	for i, c := range t.net.combiners {
		c.Forward(t.values[i], t.values[i+1])
	}
	return t.values[len(t.values)-1], nil
}

// Backward propagates dout, the loss gradient of the last Forward output,
// and adds the weight gradients into the tape.
func (t *Tape) Backward(dout []float64) {
	last := len(t.values) - 1
	copy(t.deltas[last], dout)
	for i := len(t.net.combiners) - 1; i >= 0; i-- {
		t.net.combiners[i].Backward(t.values[i], t.values[i+1], t.deltas[i+1], t.deltas[i], t.grads[i])
	}
}

// Gradients returns the accumulated weight gradients per layer, aligned with Params.
func (t *Tape) Gradients() [][]float64 {
	return t.grads
}

// Reset zeroes the accumulated gradients.
func (t *Tape) Reset() {
	for _, g := range t.grads {
		for i := range g {
			g[i] = 0
		}
	}
}
