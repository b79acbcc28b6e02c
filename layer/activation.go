package layer

// Activation is applied elementwise to the output of a layer.
type Activation byte

const (
	Linear Activation = iota
	ReLU
)

func (a Activation) String() string {
	switch a {
	case ReLU:
		return "relu"
	default:
		return "linear"
	}
}

// Apply computes the activation of x.
func (a Activation) Apply(x float64) float64 {
	if a == ReLU && x < 0 {
		return 0
	}
	return x
}

// Derivative returns the derivative given the activated output y.
func (a Activation) Derivative(y float64) float64 {
	if a == ReLU && y <= 0 {
		return 0
	}
	return 1
}
