package server

import _ "embed"
import "html/template"
import "net/http"

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.app.Summary()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
