package layer

import "fmt"

// Shape is the height × width × depth of the values flowing between layers.
// Values are stored row-major with depth varying fastest.
type Shape struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	Depth  int `json:"depth"`
}

// Size is the number of values in the shape.
func (s Shape) Size() int {
	return s.Height * s.Width * s.Depth
}

func (s Shape) String() string {
	return fmt.Sprintf("[%d,%d,%d]", s.Height, s.Width, s.Depth)
}

// Flat is the shape of a vector of n values.
func Flat(n int) Shape {
	return Shape{Height: 1, Width: 1, Depth: n}
}

// Layer is the layer description which can be used for instantiating a combiner
type Layer interface {

	// Lay creates a combiner reading inputs of the given shape
	Lay(in Shape) (Combiner, error)
}
