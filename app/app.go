package app

import "context"
import "encoding/hex"
import "sync"
import "sync/atomic"

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/config"
import "github.com/neurlang/blobcount/datasets"
import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/monitoring"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/store"
import "github.com/neurlang/blobcount/trainer"

var (
	ErrNoModel            = errors.New("Please train the model first.")
	ErrNoDataset          = errors.New("no dataset generated")
	ErrTrainingInProgress = errors.New("training already in progress")
	ErrNoStore            = errors.New("no dataset store configured")
	ErrIndex              = errors.New("sample index out of range")
	ErrPredictCount       = errors.New("too many samples requested")
)

// Summary describes the current dataset.
type Summary struct {
	ID               string                    `json:"id,omitempty"`
	Samples          int                       `json:"samples"`
	AllowOverlap     bool                      `json:"allow_overlap"`
	Histogram        [blobs.MaxCircles + 1]int `json:"histogram"`
	OccupiedCells    int                       `json:"occupied_cells"`
	Digest           string                    `json:"digest"`
	MemorizationCost int                       `json:"memorization_cost"`
}

type App struct {
	cfg   *config.Config
	store *store.Store

	mut         sync.Mutex
	dataset     blobs.Dataslice
	summary     Summary
	model       *feedforward.FeedforwardNetwork
	history     trainer.History
	status      Status
	predictions []Prediction

	training atomic.Bool
}

// New creates a session and generates its first dataset. st may be nil.
func New(cfg *config.Config, st *store.Store) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{cfg: cfg, store: st}
	a.Generate(cfg.GetAllowOverlap())
	return a
}

// Config returns the session configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

func summarize(d blobs.Dataslice, allowOverlap bool) Summary {
	digest := d.Digest()
	var occupied int
	for _, s := range d {
		occupied += s.Grid.Occupied()
	}
	return Summary{
		Samples:          d.Len(),
		AllowOverlap:     allowOverlap,
		Histogram:        d.Histogram(),
		OccupiedCells:    occupied,
		Digest:           hex.EncodeToString(digest[:]),
		MemorizationCost: datasets.MemorizationCost(d.Set()),
	}
}

// Generate replaces the dataset with a freshly generated one.
func (a *App) Generate(allowOverlap bool) Summary {
	d := blobs.NewGenerator(a.cfg.GetGridSize(), allowOverlap).Dataset(a.cfg.GetDatasetSize())
	return a.replace(d, allowOverlap, "")
}

func (a *App) replace(d blobs.Dataslice, allowOverlap bool, id string) Summary {
	s := summarize(d, allowOverlap)
	s.ID = id
	a.mut.Lock()
	a.dataset = d
	a.summary = s
	a.mut.Unlock()
	monitoring.Logf("dataset: %d samples generated, overlap %v, histogram %v", s.Samples, allowOverlap, s.Histogram)
	return s
}

// Summary describes the current dataset.
func (a *App) Summary() Summary {
	a.mut.Lock()
	defer a.mut.Unlock()
	return a.summary
}

// Dataset returns the current dataset. Samples are immutable and may be shared.
func (a *App) Dataset() blobs.Dataslice {
	a.mut.Lock()
	defer a.mut.Unlock()
	return a.dataset
}

// Preview returns the preview window of the configured size starting at start.
func (a *App) Preview(start int) blobs.Dataslice {
	return a.Dataset().Preview(start, a.cfg.GetPreviewSize())
}

// Sample returns the sample at index i.
func (a *App) Sample(i int) (blobs.Sample, error) {
	d := a.Dataset()
	if i < 0 || i >= d.Len() {
		return blobs.Sample{}, errors.Wrapf(ErrIndex, "%d of %d", i, d.Len())
	}
	return d.Get(i), nil
}

// SaveDataset stores the current dataset and returns its id.
func (a *App) SaveDataset(ctx context.Context, name string) (string, error) {
	if a.store == nil {
		return "", ErrNoStore
	}
	a.mut.Lock()
	d, overlap := a.dataset, a.summary.AllowOverlap
	a.mut.Unlock()
	if d.Len() == 0 {
		return "", ErrNoDataset
	}
	id, err := a.store.SaveNamed(ctx, name, d, overlap)
	if err != nil {
		return "", err
	}
	a.mut.Lock()
	a.summary.ID = id
	a.mut.Unlock()
	return id, nil
}

// LoadDataset replaces the dataset with the stored dataset id.
func (a *App) LoadDataset(ctx context.Context, id string) (Summary, error) {
	if a.store == nil {
		return Summary{}, ErrNoStore
	}
	d, info, err := a.store.Load(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return a.replace(d, info.AllowOverlap, info.ID), nil
}

// ListDatasets lists the stored datasets.
func (a *App) ListDatasets(ctx context.Context) ([]store.Info, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.List(ctx)
}
