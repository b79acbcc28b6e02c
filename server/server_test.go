package server

import "encoding/json"
import "net/http"
import "net/http/httptest"
import "path/filepath"
import "strings"
import "testing"
import "time"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/blobcount/app"
import "github.com/neurlang/blobcount/config"
import "github.com/neurlang/blobcount/monitoring"
import "github.com/neurlang/blobcount/store"

func init() {
	monitoring.SetLogger(nil)
}

func newServer(t *testing.T, st *store.Store) (*app.App, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	*cfg.DatasetSize = 10
	*cfg.Epochs = 2
	*cfg.BatchSize = 4
	a := app.New(cfg, st)
	ts := httptest.NewServer(LoggingMiddleware(New(a).ServeMux()))
	t.Cleanup(ts.Close)
	return a, ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, out interface{}) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func TestIndex(t *testing.T) {
	_, ts := newServer(t, nil)
	res := do(t, ts, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/nothing", nil).StatusCode)
}

func TestGenerate(t *testing.T) {
	_, ts := newServer(t, nil)
	var s app.Summary
	res := do(t, ts, http.MethodPost, "/api/generate?overlap=true", &s)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, s.AllowOverlap)
	assert.Equal(t, 10, s.Samples)

	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, "/api/generate?overlap=maybe", nil).StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, ts, http.MethodGet, "/api/generate", nil).StatusCode)

	var summary app.Summary
	do(t, ts, http.MethodGet, "/api/summary", &summary)
	assert.Equal(t, s, summary)
}

func TestPreview(t *testing.T) {
	a, ts := newServer(t, nil)
	var p previewResponse
	res := do(t, ts, http.MethodGet, "/api/preview?start=7", &p)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 10, p.Total)
	require.Len(t, p.Samples, 3)
	for i, e := range p.Samples {
		assert.Equal(t, 7+i, e.Index)
		assert.Equal(t, a.Dataset()[7+i].Label, e.Label)
		assert.Equal(t, a.Dataset()[7+i].Grid.Rows(), e.Cells)
	}
	assert.Equal(t, "/api/samples/9.png", p.Samples[2].Image)

	do(t, ts, http.MethodGet, "/api/preview", &p)
	assert.Len(t, p.Samples, 6)

	for _, q := range []string{"-1", "abc", "1.5"} {
		assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodGet, "/api/preview?start="+q, nil).StatusCode, q)
	}
}

func TestSampleImage(t *testing.T) {
	_, ts := newServer(t, nil)
	res := do(t, ts, http.MethodGet, "/api/samples/3.png", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/api/samples/10.png", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodGet, "/api/samples/x.png", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodGet, "/api/samples/3.gif", nil).StatusCode)
}

func TestPredictBeforeTraining(t *testing.T) {
	_, ts := newServer(t, nil)
	var body map[string]string
	res := do(t, ts, http.MethodPost, "/api/predict", &body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Please train the model first.", body["error"])

	assert.Equal(t, http.StatusConflict, do(t, ts, http.MethodGet, "/api/model", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/api/predictions/0.png", nil).StatusCode)
}

func TestTrainThenPredict(t *testing.T) {
	a, ts := newServer(t, nil)
	var started map[string]string
	res := do(t, ts, http.MethodPost, "/api/train", &started)
	require.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.NotEmpty(t, started["run_id"])

	require.Eventually(t, func() bool { return !a.Training() }, time.Minute, 10*time.Millisecond)

	var status app.Status
	do(t, ts, http.MethodGet, "/api/training", &status)
	assert.Equal(t, started["run_id"], status.RunID)
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.History.Len())

	res = do(t, ts, http.MethodGet, "/chart", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res = do(t, ts, http.MethodGet, "/chart.png", nil)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))

	var model modelResponse
	do(t, ts, http.MethodGet, "/api/model", &model)
	assert.Len(t, model.Layers, 6)
	assert.Equal(t, 37697, model.Params)

	var preds []map[string]interface{}
	res = do(t, ts, http.MethodPost, "/api/predict?n=3&overlap=false", &preds)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, preds, 3)
	assert.Equal(t, "/api/predictions/2.png", preds[2]["image"])
	assert.Contains(t, preds[0], "display")
	assert.NotContains(t, preds[0], "Sample")

	assert.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/api/predictions/2.png", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/api/predictions/3.png", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, "/api/predict?n=-2", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, "/api/predict?n=100000000", nil).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/api/predictions/2.png", nil).StatusCode)
}

func TestDatasets(t *testing.T) {
	_, ts := newServer(t, nil)
	assert.Equal(t, http.StatusNotImplemented, do(t, ts, http.MethodGet, "/api/datasets", nil).StatusCode)

	st, err := store.Open(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	a, ts := newServer(t, st)

	var list []store.Info
	do(t, ts, http.MethodGet, "/api/datasets", &list)
	assert.Empty(t, list)

	var saved map[string]string
	res := do(t, ts, http.MethodPost, "/api/datasets?name=first", &saved)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	digest := a.Summary().Digest

	do(t, ts, http.MethodPost, "/api/generate", nil)
	var loaded app.Summary
	res = do(t, ts, http.MethodPost, "/api/datasets/"+saved["id"]+"/load", &loaded)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, digest, loaded.Digest)

	do(t, ts, http.MethodGet, "/api/datasets", &list)
	require.Len(t, list, 1)
	assert.True(t, strings.EqualFold("first", list[0].Name))

	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodPost, "/api/datasets/nope/load", nil).StatusCode)
}
