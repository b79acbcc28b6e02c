// Package server exposes a blob counting session over HTTP.
package server

import "context"
import "encoding/json"
import "net/http"
import "strconv"
import "strings"
import "time"

import "github.com/pkg/errors"

import "github.com/neurlang/blobcount/app"
import "github.com/neurlang/blobcount/monitoring"
import "github.com/neurlang/blobcount/store"

type Server struct {
	app *app.App
}

func New(a *app.App) *Server {
	return &Server{app: a}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf("[%d] %s %s %vms", lrw.statusCode, r.Method, r.RequestURI,
			float64(time.Since(start).Nanoseconds())/1e6)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /api/generate", s.generate)
	mux.HandleFunc("GET /api/summary", s.summary)
	mux.HandleFunc("GET /api/preview", s.preview)
	mux.HandleFunc("GET /api/samples/{file}", s.sampleImage)
	mux.HandleFunc("POST /api/train", s.train)
	mux.HandleFunc("GET /api/training", s.training)
	mux.HandleFunc("GET /chart", s.chart)
	mux.HandleFunc("GET /chart.png", s.chartImage)
	mux.HandleFunc("GET /api/model", s.model)
	mux.HandleFunc("POST /api/predict", s.predict)
	mux.HandleFunc("GET /api/predictions/{file}", s.predictionImage)
	mux.HandleFunc("POST /api/datasets", s.saveDataset)
	mux.HandleFunc("GET /api/datasets", s.listDatasets)
	mux.HandleFunc("POST /api/datasets/{id}/load", s.loadDataset)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           LoggingMiddleware(s.ServeMux()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	monitoring.Logf("listening on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("write json: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps the session errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrNoModel), errors.Is(err, app.ErrTrainingInProgress), errors.Is(err, app.ErrNoDataset):
		status = http.StatusConflict
	case errors.Is(err, app.ErrIndex), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrNoStore):
		status = http.StatusNotImplemented
	case errors.Is(err, app.ErrPredictCount):
		status = http.StatusBadRequest
	}
	if errors.Is(err, app.ErrNoModel) {
		writeJSONError(w, status, app.ErrNoModel.Error())
		return
	}
	writeJSONError(w, status, err.Error())
}

// overlap reads the overlap query parameter, falling back to the configured default.
func (s *Server) overlap(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("overlap")
	if v == "" {
		return s.app.Config().GetAllowOverlap(), nil
	}
	return strconv.ParseBool(v)
}

// intParam reads a non-negative integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid %q parameter", name)
	}
	return n, nil
}

// pngIndex parses "{n}.png".
func pngIndex(file string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(file, ".png"))
	if err != nil || n < 0 || !strings.HasSuffix(file, ".png") {
		return 0, errors.Errorf("invalid image name %q", file)
	}
	return n, nil
}
