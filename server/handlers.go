package server

import "fmt"
import "net/http"

import "github.com/neurlang/blobcount/app"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/render"
import "github.com/neurlang/blobcount/store"

type previewEntry struct {
	Index int    `json:"index"`
	Label int     `json:"label"`
	Image string  `json:"image"`
	Cells [][]int `json:"cells"`
}

type previewResponse struct {
	Start   int            `json:"start"`
	Total   int            `json:"total"`
	Samples []previewEntry `json:"samples"`
}

type predictionEntry struct {
	app.Prediction
	Image string `json:"image"`
}

type modelResponse struct {
	Layers []feedforward.LayerSummary `json:"layers"`
	Params int                        `json:"params"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	overlap, err := s.overlap(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid 'overlap' parameter")
		return
	}
	writeJSON(w, http.StatusOK, s.app.Generate(overlap))
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Summary())
}

func (s *Server) previewData(start int) previewResponse {
	p := s.app.Preview(start)
	o := previewResponse{Start: start, Total: s.app.Summary().Samples, Samples: make([]previewEntry, len(p))}
	for i, sample := range p {
		o.Samples[i] = previewEntry{
			Index: start + i,
			Label: sample.Label,
			Image: fmt.Sprintf("/api/samples/%d.png", start+i),
			Cells: sample.Grid.Rows(),
		}
	}
	return o
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	start, err := intParam(r, "start", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.previewData(start))
}

func (s *Server) sampleImage(w http.ResponseWriter, r *http.Request) {
	n, err := pngIndex(r.PathValue("file"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sample, err := s.app.Sample(n)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.PNG(w, render.Grid(sample.Grid, s.app.Config().GetZoom())); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) train(w http.ResponseWriter, r *http.Request) {
	id, err := s.app.StartTraining()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": id})
}

func (s *Server) training(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.TrainingStatus())
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	status := s.app.TrainingStatus()
	subtitle := fmt.Sprintf("epoch %d/%d", status.Epoch, status.Epochs)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.LossHTML(w, status.History, subtitle); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) chartImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := render.LossPNG(w, s.app.TrainingStatus().History); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) model(w http.ResponseWriter, r *http.Request) {
	net, err := s.app.Model()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modelResponse{Layers: net.Summary(), Params: net.Len()})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	overlap, err := s.overlap(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid 'overlap' parameter")
		return
	}
	n, err := intParam(r, "n", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	preds, err := s.app.Predict(overlap, n)
	if err != nil {
		writeError(w, err)
		return
	}
	o := make([]predictionEntry, len(preds))
	for i, p := range preds {
		o[i] = predictionEntry{Prediction: p, Image: fmt.Sprintf("/api/predictions/%d.png", i)}
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) predictionImage(w http.ResponseWriter, r *http.Request) {
	n, err := pngIndex(r.PathValue("file"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	preds := s.app.Predictions()
	if n >= len(preds) {
		writeJSONError(w, http.StatusNotFound, "no such prediction")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.PNG(w, render.Grid(preds[n].Sample.Grid, s.app.Config().GetZoom())); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) saveDataset(w http.ResponseWriter, r *http.Request) {
	id, err := s.app.SaveDataset(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.ListDatasets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Info{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) loadDataset(w http.ResponseWriter, r *http.Request) {
	summary, err := s.app.LoadDataset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
