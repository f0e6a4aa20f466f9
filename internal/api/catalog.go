package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calluna-vineyards/trellis/internal/content"
	"github.com/calluna-vineyards/trellis/internal/rubric"
	"github.com/calluna-vineyards/trellis/internal/scenario"
)

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenario.All())
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	scn, ok := scenario.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	writeJSON(w, http.StatusOK, scn)
}

func (s *Server) getRubric(w http.ResponseWriter, r *http.Request) {
	rb, ok := rubric.ForScenario(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "rubric not found")
		return
	}
	writeJSON(w, http.StatusOK, rb)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	page, err := s.content.GetContent(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}
		s.logger.Error("content lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "content lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, page)
}
