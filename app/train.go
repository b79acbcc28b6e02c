package app

import "context"
import "time"

import "github.com/google/uuid"
import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/monitoring"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/parallel"
import "github.com/neurlang/blobcount/trainer"

// Status reports the latest training run.
type Status struct {
	RunID    string          `json:"run_id,omitempty"`
	Running  bool            `json:"running"`
	Epoch    int             `json:"epoch"`
	Epochs   int             `json:"epochs"`
	Loss     float64         `json:"loss"`
	ValLoss  float64         `json:"val_loss"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Error    string          `json:"error,omitempty"`
	History  trainer.History `json:"history"`
}

// TrainingStatus returns a copy of the latest run status with its loss history.
func (a *App) TrainingStatus() Status {
	a.mut.Lock()
	defer a.mut.Unlock()
	s := a.status
	s.History = a.history.Clone()
	return s
}

// Training reports whether a run is in progress.
func (a *App) Training() bool {
	return a.training.Load()
}

// begin claims the training slot and resets the run state.
func (a *App) begin() (string, error) {
	if !a.training.CompareAndSwap(false, true) {
		return "", ErrTrainingInProgress
	}
	if a.Dataset().Len() == 0 {
		a.training.Store(false)
		return "", ErrNoDataset
	}
	id := uuid.NewString()
	a.mut.Lock()
	a.history = trainer.History{}
	a.status = Status{
		RunID:   id,
		Running: true,
		Epochs:  a.cfg.GetEpochs(),
		Started: time.Now(),
	}
	a.mut.Unlock()
	return id, nil
}

func (a *App) finish(err error) {
	a.mut.Lock()
	a.status.Running = false
	a.status.Finished = time.Now()
	if err != nil {
		a.status.Error = err.Error()
	}
	a.mut.Unlock()
	a.training.Store(false)
}

func (a *App) OnEpochEnd(logs trainer.Logs) {
	a.mut.Lock()
	defer a.mut.Unlock()
	a.history.OnEpochEnd(logs)
	a.status.Epoch = logs.Epoch
	a.status.Loss = logs.Loss
	a.status.ValLoss = logs.ValLoss
}

// run trains a fresh network on the current dataset and installs it on success.
func (a *App) run(ctx context.Context) (err error) {
	defer func() { a.finish(err) }()

	d := a.Dataset()
	train, validation := d.Split(a.cfg.GetTrainSplit())
	net, err := feedforward.NewBlobCounter(a.cfg.GetGridSize())
	if err != nil {
		return errors.Wrap(err, "build network")
	}
	h := a.cfg.HyperParameters()
	monitoring.Logf("training on %s with %d threads: %d train, %d validation samples, %d params",
		parallel.Describe(), h.Threads, train.Len(), validation.Len(), net.Len())

	_, err = trainer.Fit(ctx, net, train, validation, h, a, trainer.LogCallback)
	if err != nil {
		return errors.Wrap(err, "fit")
	}
	if path := a.cfg.GetModel(); path != "" {
		if err := net.WriteCompressedWeightsToFile(path); err != nil {
			return errors.Wrap(err, "write weights")
		}
	}
	a.mut.Lock()
	a.model = net
	a.mut.Unlock()
	monitoring.Logf("Training Complete!")
	return nil
}

// Train trains a new model on the current dataset and waits for it to finish.
func (a *App) Train(ctx context.Context) (Status, error) {
	if _, err := a.begin(); err != nil {
		return Status{}, err
	}
	err := a.run(ctx)
	return a.TrainingStatus(), err
}

// StartTraining starts training in the background and returns the run id.
// The run is not tied to any request and always completes.
func (a *App) StartTraining() (string, error) {
	id, err := a.begin()
	if err != nil {
		return "", err
	}
	go a.run(context.Background())
	return id, nil
}

// LoadModel installs weights stored at path into a fresh network.
func (a *App) LoadModel(path string) error {
	net, err := feedforward.NewBlobCounter(a.cfg.GetGridSize())
	if err != nil {
		return err
	}
	if err := net.ReadCompressedWeightsFromFile(path); err != nil {
		return errors.Wrap(err, "load weights")
	}
	a.mut.Lock()
	a.model = net
	a.mut.Unlock()
	return nil
}

// Model returns the trained network or ErrNoModel.
func (a *App) Model() (*feedforward.FeedforwardNetwork, error) {
	a.mut.Lock()
	defer a.mut.Unlock()
	if a.model == nil {
		return nil, ErrNoModel
	}
	return a.model, nil
}
