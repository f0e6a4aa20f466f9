package api

import (
	"net/http"
	"time"

	"github.com/calluna-vineyards/trellis/internal/export"
)

func (s *Server) exportTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if len(snap.History) == 0 {
		writeError(w, http.StatusConflict, "nothing to export")
		return
	}

	title := ""
	if scn := sess.Scenario(); scn != nil {
		title = scn.Title
	}
	pdf, err := export.Transcript(snap, title)
	if err != nil {
		s.logger.Error("transcript export failed", "session_id", snap.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	servePDF(w, export.TranscriptFilename(time.Now()), pdf)
}

func (s *Server) exportEvaluation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if snap.Feedback == nil {
		writeError(w, http.StatusConflict, "session has not been evaluated")
		return
	}

	title := snap.ScenarioID
	if scn := sess.Scenario(); scn != nil {
		title = scn.Title
	}
	pdf, err := export.Evaluation(title, snap.Feedback, snap.AverageScore)
	if err != nil {
		s.logger.Error("evaluation export failed", "session_id", snap.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	servePDF(w, export.EvaluationFilename(snap.ScenarioID, time.Now()), pdf)
}

func servePDF(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
