package trainer

import "github.com/neurlang/blobcount/monitoring"

// Logs are the metrics reported at the end of an epoch.
type Logs struct {
	Epoch   int     `json:"epoch"`
	Epochs  int     `json:"epochs"`
	Loss    float64 `json:"loss"`
	ValLoss float64 `json:"val_loss"`
	ValMAE  float64 `json:"val_mae"`
}

// Callback observes training progress.
type Callback interface {
	OnEpochEnd(logs Logs)
}

// CallbackFunc adapts a function to Callback.
type CallbackFunc func(logs Logs)

func (f CallbackFunc) OnEpochEnd(logs Logs) {
	f(logs)
}

// History records the loss curves of a training run.
type History struct {
	Loss    []float64 `json:"loss"`
	ValLoss []float64 `json:"val_loss"`
}

func (h *History) OnEpochEnd(logs Logs) {
	h.Loss = append(h.Loss, logs.Loss)
	h.ValLoss = append(h.ValLoss, logs.ValLoss)
}

// Len is the number of recorded epochs.
func (h History) Len() int {
	return len(h.Loss)
}

// Clone returns a copy not sharing the curves.
func (h History) Clone() History {
	return History{
		Loss:    append([]float64(nil), h.Loss...),
		ValLoss: append([]float64(nil), h.ValLoss...),
	}
}

// LogCallback logs one line per epoch.
var LogCallback = CallbackFunc(func(logs Logs) {
	monitoring.Logf("Epoch %d/%d - loss: %.4f - val_loss: %.4f - val_mae: %.4f",
		logs.Epoch, logs.Epochs, logs.Loss, logs.ValLoss, logs.ValMAE)
})
