// Package learning contains the training hyperparameters and the Adam optimiser
package learning

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/parallel"

type HyperParameters struct {
	Threads int // number of threads for learning

	Shuffle bool // whether to shuffle the set before each epoch

	Epochs    int // number of passes over the training set
	BatchSize int // samples per weight update

	LearningRate float64 // Adam step size
	Beta1        float64 // decay of the first moment estimate
	Beta2        float64 // decay of the second moment estimate
	Epsilon      float64 // added to the denominator for numerical stability
}

// Default returns the hyperparameters used by the counting demo.
func Default() *HyperParameters {
	return &HyperParameters{
		Threads:      parallel.Threads(),
		Shuffle:      true,
		Epochs:       50,
		BatchSize:    32,
		LearningRate: 0.001,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-7,
	}
}

// Validate reports the first unusable setting.
func (h *HyperParameters) Validate() error {
	switch {
	case h.Epochs <= 0:
		return errors.Errorf("learning: epochs %d must be positive", h.Epochs)
	case h.BatchSize <= 0:
		return errors.Errorf("learning: batch size %d must be positive", h.BatchSize)
	case h.LearningRate <= 0:
		return errors.Errorf("learning: learning rate %g must be positive", h.LearningRate)
	case h.Beta1 < 0 || h.Beta1 >= 1:
		return errors.Errorf("learning: beta1 %g must be in [0, 1)", h.Beta1)
	case h.Beta2 < 0 || h.Beta2 >= 1:
		return errors.Errorf("learning: beta2 %g must be in [0, 1)", h.Beta2)
	case h.Epsilon <= 0:
		return errors.Errorf("learning: epsilon %g must be positive", h.Epsilon)
	}
	return nil
}
