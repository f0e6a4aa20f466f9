package api

import (
	"encoding/json"
	"net/http"

	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/simulator"
)

type createSessionRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type postMessageRequest struct {
	Content          string `json:"content"`
	Role             string `json:"role,omitempty"`
	GenerateResponse *bool  `json:"generate_response,omitempty"`
}

type overrideEmotionRequest struct {
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	Reason    string  `json:"reason"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	sess := simulator.New(s.llm, s.eval, s.events, s.logger, s.opts)
	if err := sess.Start(r.Context(), req.ScenarioID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Reset()
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	role := req.Role
	if role == "" {
		role = chat.RoleUser
	}
	// Trainee messages get a customer reply unless explicitly suppressed.
	generate := role == chat.RoleUser
	if req.GenerateResponse != nil {
		generate = *req.GenerateResponse
	}

	if err := sess.AddMessage(r.Context(), req.Content, role, generate); err != nil {
		// The session state already records the failure; the snapshot lets
		// the client render the retry prompt.
		writeJSON(w, http.StatusBadGateway, sess.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	eval, err := sess.End(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if s.slack != nil {
		snap := sess.Snapshot()
		title := snap.ScenarioID
		if scn := sess.Scenario(); scn != nil {
			title = scn.Title
		}
		if err := s.slack.PostEvaluation(r.Context(), title, eval, snap.AverageScore); err != nil {
			s.logger.Warn("slack post failed", "session_id", snap.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) overrideEmotion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req overrideEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := sess.OverrideEmotion(req.Emotion, req.Intensity, req.Reason); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}
