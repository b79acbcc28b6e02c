// Package layer defines the layer and combiner interfaces of the counting network
package layer

// Combiner is an instantiated layer. It owns its trainable weights but no
// per-sample state, so one combiner can be evaluated from many goroutines at once.
type Combiner interface {

	// Name is a short human readable layer kind.
	Name() string

	// Shape is the shape of the output.
	Shape() Shape

	// Params returns the trainable weights as one flat slice, nil if there are none.
	// The returned slice aliases the weights and may be updated in place.
	Params() []float64

	// Forward computes out from in.
	Forward(in, out []float64)

	// Backward receives dout, the loss gradient with respect to out, and adds
	// the gradient with respect to the weights into dparams. When din is not nil
	// it is overwritten with the gradient with respect to in.
	Backward(in, out, dout, din, dparams []float64)
}
