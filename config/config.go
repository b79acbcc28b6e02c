// Package config holds the JSON configuration of the blob counting demo.
// Every field is optional; the Get methods fall back to the defaults.
package config

import "encoding/json"
import "os"
import "path/filepath"

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/learning"

const maxFileSize = 1 * 1024 * 1024

type Config struct {
	GridSize     *int     `json:"grid_size,omitempty"`
	DatasetSize  *int     `json:"dataset_size,omitempty"`
	PreviewSize  *int     `json:"preview_size,omitempty"`
	Zoom         *int     `json:"zoom,omitempty"`
	AllowOverlap *bool    `json:"allow_overlap,omitempty"`
	Epochs       *int     `json:"epochs,omitempty"`
	BatchSize    *int     `json:"batch_size,omitempty"`
	LearningRate *float64 `json:"learning_rate,omitempty"`
	TrainSplit   *float64 `json:"train_split,omitempty"`
	Threads      *int     `json:"threads,omitempty"`
	Listen       *string  `json:"listen,omitempty"`
	Database     *string  `json:"database,omitempty"`
	Model        *string  `json:"model,omitempty"`
}

func ptrInt(v int) *int             { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		GridSize:     ptrInt(blobs.GridSize),
		DatasetSize:  ptrInt(blobs.DatasetSize),
		PreviewSize:  ptrInt(6),
		Zoom:         ptrInt(10),
		AllowOverlap: ptrBool(false),
		Epochs:       ptrInt(50),
		BatchSize:    ptrInt(32),
		LearningRate: ptrFloat64(0.001),
		TrainSplit:   ptrFloat64(0.8),
		Threads:      ptrInt(0),
		Listen:       ptrString(":8043"),
		Database:     ptrString(""),
		Model:        ptrString(""),
	}
}

// Load reads a Config from a .json file of at most 1 MiB and validates it.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "stat config file")
	}
	if info.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config JSON")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	positive := map[string]*int{
		"grid_size":    c.GridSize,
		"preview_size": c.PreviewSize,
		"zoom":         c.Zoom,
		"epochs":       c.Epochs,
		"batch_size":   c.BatchSize,
	}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return errors.Errorf("%s must be positive, got %d", name, *v)
		}
	}
	if c.DatasetSize != nil && *c.DatasetSize < 0 {
		return errors.Errorf("dataset_size must be non-negative, got %d", *c.DatasetSize)
	}
	if c.Threads != nil && *c.Threads < 0 {
		return errors.Errorf("threads must be non-negative, got %d", *c.Threads)
	}
	if c.LearningRate != nil && *c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be positive, got %g", *c.LearningRate)
	}
	if c.TrainSplit != nil && (*c.TrainSplit <= 0 || *c.TrainSplit > 1) {
		return errors.Errorf("train_split must be in (0, 1], got %g", *c.TrainSplit)
	}
	return nil
}

func getInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func (c *Config) GetGridSize() int    { return getInt(c.GridSize, blobs.GridSize) }
func (c *Config) GetDatasetSize() int { return getInt(c.DatasetSize, blobs.DatasetSize) }
func (c *Config) GetPreviewSize() int { return getInt(c.PreviewSize, 6) }
func (c *Config) GetZoom() int        { return getInt(c.Zoom, 10) }
func (c *Config) GetEpochs() int      { return getInt(c.Epochs, 50) }
func (c *Config) GetBatchSize() int   { return getInt(c.BatchSize, 32) }
func (c *Config) GetThreads() int     { return getInt(c.Threads, 0) }

func (c *Config) GetAllowOverlap() bool {
	return c.AllowOverlap != nil && *c.AllowOverlap
}

func (c *Config) GetLearningRate() float64 {
	if c.LearningRate == nil {
		return 0.001
	}
	return *c.LearningRate
}

func (c *Config) GetTrainSplit() float64 {
	if c.TrainSplit == nil {
		return 0.8
	}
	return *c.TrainSplit
}

func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8043"
	}
	return *c.Listen
}

// GetDatabase is the sqlite file path, empty when datasets are not persisted.
func (c *Config) GetDatabase() string {
	if c.Database == nil {
		return ""
	}
	return *c.Database
}

// GetModel is the weights file loaded at start and written after training, empty for none.
func (c *Config) GetModel() string {
	if c.Model == nil {
		return ""
	}
	return *c.Model
}

// HyperParameters returns the training settings with the configured overrides applied.
func (c *Config) HyperParameters() *learning.HyperParameters {
	h := learning.Default()
	h.Epochs = c.GetEpochs()
	h.BatchSize = c.GetBatchSize()
	h.LearningRate = c.GetLearningRate()
	if n := c.GetThreads(); n > 0 {
		h.Threads = n
	}
	return h
}
