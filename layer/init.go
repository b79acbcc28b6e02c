package layer

import "math"
import rand "math/rand/v2"

// GlorotUniform fills w with draws from U(-l, l), l = sqrt(6 / (fanIn + fanOut)).
func GlorotUniform(w []float64, fanIn, fanOut int) {
	if fanIn+fanOut <= 0 {
		return
	}
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	for i := range w {
		w[i] = (2*rand.Float64() - 1) * limit
	}
}
