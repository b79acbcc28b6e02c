package config

import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchGetters(t *testing.T) {
	d := Default()
	e := Empty()
	require.NoError(t, d.Validate())
	assert.Equal(t, d.GetGridSize(), e.GetGridSize())
	assert.Equal(t, 24, e.GetGridSize())
	assert.Equal(t, 1000, e.GetDatasetSize())
	assert.Equal(t, 6, e.GetPreviewSize())
	assert.Equal(t, 10, e.GetZoom())
	assert.False(t, e.GetAllowOverlap())
	assert.Equal(t, 50, e.GetEpochs())
	assert.Equal(t, 32, e.GetBatchSize())
	assert.Equal(t, 0.001, e.GetLearningRate())
	assert.Equal(t, 0.8, e.GetTrainSplit())
	assert.Equal(t, ":8043", e.GetListen())
	assert.Equal(t, "", e.GetDatabase())
	assert.Equal(t, "", d.GetModel())
}

func TestLoadPartial(t *testing.T) {
	path := write(t, "blobs.json", `{"epochs": 3, "allow_overlap": true, "database": "blobs.db"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.GetEpochs())
	assert.True(t, cfg.GetAllowOverlap())
	assert.Equal(t, "blobs.db", cfg.GetDatabase())
	assert.Equal(t, 32, cfg.GetBatchSize())

	h := cfg.HyperParameters()
	assert.Equal(t, 3, h.Epochs)
	assert.Equal(t, 32, h.BatchSize)
	require.NoError(t, h.Validate())
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name, file, body, msg string
	}{
		{"extension", "blobs.yaml", `{}`, ".json extension"},
		{"syntax", "blobs.json", `{"epochs":`, "parse config JSON"},
		{"invalid", "blobs.json", `{"grid_size": 0}`, "grid_size must be positive"},
		{"split", "blobs.json", `{"train_split": 1.5}`, "train_split"},
		{"size", "blobs.json", `{"listen": "` + strings.Repeat("x", maxFileSize) + `"}`, "too large"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(write(t, tc.file, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
