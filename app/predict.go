package app

import "fmt"
import "math"

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/datasets/blobs"

// Prediction is the network estimate for one freshly generated sample.
type Prediction struct {
	Sample  blobs.Sample `json:"-"`
	Actual  int          `json:"actual"`
	Value   float64      `json:"value"`
	Rounded int          `json:"rounded"`
	Display string       `json:"display"`
}

// NewPrediction rounds value half up and formats it with two decimals.
func NewPrediction(s blobs.Sample, value float64) Prediction {
	return Prediction{
		Sample:  s,
		Actual:  s.Label,
		Value:   value,
		Rounded: int(math.Floor(value + 0.5)),
		Display: fmt.Sprintf("%.2f", value),
	}
}

func (p Prediction) String() string {
	return fmt.Sprintf("Actual: %d Pred: %d (%s)", p.Actual, p.Rounded, p.Display)
}

// Predict generates n new samples and runs the trained model on each.
// n <= 0 uses the preview size, n above the dataset size is rejected with
// ErrPredictCount. Without a model ErrNoModel is returned before anything
// is generated.
func (a *App) Predict(allowOverlap bool, n int) ([]Prediction, error) {
	net, err := a.Model()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = a.cfg.GetPreviewSize()
	}
	if limit := a.cfg.GetDatasetSize(); n > limit {
		return nil, errors.Wrapf(ErrPredictCount, "%d samples, at most %d", n, limit)
	}
	samples := blobs.NewGenerator(a.cfg.GetGridSize(), allowOverlap).Dataset(n)
	o := make([]Prediction, len(samples))
	for i, s := range samples {
		v, err := net.Infer(s.Tensor())
		if err != nil {
			return nil, errors.Wrapf(err, "predict sample %d", i)
		}
		o[i] = NewPrediction(s, v)
	}
	a.mut.Lock()
	a.predictions = o
	a.mut.Unlock()
	return o, nil
}

// Predictions returns the results of the last Predict call.
func (a *App) Predictions() []Prediction {
	a.mut.Lock()
	defer a.mut.Unlock()
	return a.predictions
}
