package trainer

import "math"

import "gonum.org/v1/gonum/stat"

import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/parallel"

// Metrics summarise the network error over a set of examples.
type Metrics struct {
	MSE      float64 `json:"mse"`
	MAE      float64 `json:"mae"`
	StdDev   float64 `json:"std_dev"`  // of the signed error
	Accuracy float64 `json:"accuracy"` // share of rounded predictions equal to the target
	Samples  int     `json:"samples"`
}

// Evaluate runs net over set with the given number of threads.
// An empty set or a set that does not fit the network yields zero metrics.
func Evaluate[E Example](net *feedforward.FeedforwardNetwork, set []E, threads int) Metrics {
	p, err := prepare(net, set)
	if err != nil {
		return Metrics{}
	}
	return evaluate(net, p, threads)
}

// NewEvaluateFunc binds Evaluate to a fixed validation set.
func NewEvaluateFunc[E Example](net *feedforward.FeedforwardNetwork, set []E, threads int) func() Metrics {
	return func() Metrics {
		return Evaluate(net, set, threads)
	}
}

func predictAll(net *feedforward.FeedforwardNetwork, inputs [][]float64, threads int) []float64 {
	if threads <= 0 {
		threads = parallel.Threads()
	}
	preds := make([]float64, len(inputs))
	tapes := make(chan *feedforward.Tape, threads)
	for i := 0; i < threads; i++ {
		tapes <- net.NewTape()
	}
	parallel.ForEach(len(inputs), threads, func(i int) {
		tape := <-tapes
		defer func() { tapes <- tape }()
		out, _ := tape.Forward(inputs[i])
		preds[i] = out[0]
	})
	return preds
}

func evaluate(net *feedforward.FeedforwardNetwork, p prepared, threads int) (m Metrics) {
	m.Samples = len(p.inputs)
	if m.Samples == 0 {
		return
	}
	preds := predictAll(net, p.inputs, threads)
	diffs := make([]float64, len(preds))
	squares := make([]float64, len(preds))
	absolute := make([]float64, len(preds))
	var hits int
	for i, v := range preds {
		diffs[i] = v - p.targets[i]
		squares[i] = diffs[i] * diffs[i]
		absolute[i] = math.Abs(diffs[i])
		if math.Round(v) == p.targets[i] {
			hits++
		}
	}
	m.MSE = stat.Mean(squares, nil)
	m.MAE = stat.Mean(absolute, nil)
	if len(diffs) > 1 {
		_, m.StdDev = stat.MeanStdDev(diffs, nil)
	}
	m.Accuracy = float64(hits) / float64(m.Samples)
	return
}
