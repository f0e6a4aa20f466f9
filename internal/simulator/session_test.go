package simulator

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/calluna-vineyards/trellis/internal/anthropic"
	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/emotion"
	"github.com/calluna-vineyards/trellis/internal/evaluator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLLM answers roleplay calls with a canned customer line and evaluation
// calls with a well-formed trainer verdict.
func fakeLLM(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		text := "Hi! We visited last weekend and completely fell in love with the hilltop lawn."
		if strings.Contains(string(body), "senior sales trainer") {
			text = "Score: 84%\nIssues:\n- none\nStrengths:\n- Warm discovery questions\nFeedback: Keep pacing the customer."
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]string{{"type": "text", "text": text}},
			"stop_reason": "end_turn",
		})
	}))
}

func newTestSession(t *testing.T, url string) *Session {
	t.Helper()
	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(url)
	ev := evaluator.New(llm, discardLogger())
	return New(llm, ev, nil, discardLogger(), Options{})
}

func TestStart_UnknownScenario(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	if err := s.Start(context.Background(), "no-such-scenario"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
	if s.Snapshot().Active {
		t.Error("session must not activate on lookup failure")
	}
}

func TestStart_OpeningFailureClearsScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	s := newTestSession(t, server.URL)

	if err := s.Start(context.Background(), "budget-conscious-couple"); err == nil {
		t.Fatal("expected error when the opening call fails")
	}

	snap := s.Snapshot()
	if snap.Active {
		t.Error("session must not activate on a failed opening")
	}
	if snap.ScenarioID != "" {
		t.Errorf("scenario_id = %q, want empty on a failed opening", snap.ScenarioID)
	}
	if snap.LastError == "" {
		t.Error("failure should surface as a session error string")
	}
}

func TestStart_OpensWithCustomerMessage(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	if err := s.Start(context.Background(), "budget-conscious-couple"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if !snap.Active {
		t.Error("session should be active")
	}
	if len(snap.History) != 1 || snap.History[0].Role != chat.RoleAssistant {
		t.Fatalf("history = %+v, want single assistant opening", snap.History)
	}
	if snap.History[0].Emotion == "" {
		t.Error("opening message should carry the customer's emotion")
	}
}

func TestFullSession(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	ctx := context.Background()
	if err := s.Start(ctx, "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}

	msg := "Congratulations, I'm so glad the hilltop lawn spoke to you! Tell me about the celebration " +
		"you're imagining, roughly how many guests you expect, and what budget range feels comfortable."
	if err := s.AddMessage(ctx, msg, chat.RoleUser, true); err != nil {
		t.Fatalf("add message: %v", err)
	}

	eval, err := s.End(ctx)
	if err != nil {
		t.Fatalf("end: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.History) < 3 {
		t.Errorf("history length = %d, want >= 3 (opening + trainee + reply)", len(snap.History))
	}
	if eval.Score < 0 || eval.Score > 100 {
		t.Errorf("evaluation score = %d, out of [0,100]", eval.Score)
	}
	if snap.Active || !snap.Ended {
		t.Errorf("session state after end: active=%v ended=%v", snap.Active, snap.Ended)
	}
	if len(snap.TurnScores) != 1 {
		t.Errorf("turn scores = %d, want 1", len(snap.TurnScores))
	}
}

func TestAddMessage_RequiresActiveSession(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	if err := s.AddMessage(context.Background(), "hello", chat.RoleUser, false); err == nil {
		t.Fatal("expected error before Start")
	}
}

func TestAddMessage_FailedReplyRollsBackTurn(t *testing.T) {
	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]string{{"type": "text", "text": "Hello there, thanks for meeting us!"}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	s := newTestSession(t, server.URL)
	ctx := context.Background()
	if err := s.Start(ctx, "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}
	before := len(s.Snapshot().History)

	failing.Store(true)
	err := s.AddMessage(ctx, "Let me tell you about our packages.", chat.RoleUser, true)
	if err == nil {
		t.Fatal("expected error when the reply call fails")
	}

	snap := s.Snapshot()
	if len(snap.History) != before {
		t.Errorf("history length = %d, want %d (failed turn not committed)", len(snap.History), before)
	}
	if len(snap.TurnScores) != 0 {
		t.Errorf("turn scores = %d, want 0 after rollback", len(snap.TurnScores))
	}
	if snap.LastError == "" {
		t.Error("failure should surface as a session error string")
	}
	if !snap.Active {
		t.Error("a failed turn must not deactivate the session")
	}

	// Retry succeeds once the LLM recovers.
	failing.Store(false)
	if err := s.AddMessage(ctx, "Let me tell you about our packages.", chat.RoleUser, true); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := s.Snapshot(); got.LastError != "" {
		t.Errorf("last error not cleared after successful retry: %q", got.LastError)
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	ctx := context.Background()
	if err := s.Start(ctx, "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.AddMessage(ctx, "What's your budget?", chat.RoleUser, false); err != nil {
		t.Fatalf("add message: %v", err)
	}

	s.Reset()
	snap := s.Snapshot()

	if snap.Active || snap.Ended {
		t.Error("reset session should be idle")
	}
	if len(snap.History) != 0 {
		t.Errorf("history = %d messages, want 0", len(snap.History))
	}
	if len(snap.Emotion.Journal) != 1 {
		t.Errorf("emotion journal = %d entries, want the single seed entry", len(snap.Emotion.Journal))
	}
	log := snap.Interactions
	if len(log.NegativeInteractions)+len(log.MissedOpportunities)+
		len(log.RapportBuilding)+len(log.ClosingAttempts) != 0 {
		t.Errorf("interaction logs not cleared: %+v", log)
	}
	if len(snap.TurnScores) != 0 {
		t.Errorf("turn scores not cleared: %d", len(snap.TurnScores))
	}
}

func TestOverrideEmotion(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	if err := s.OverrideEmotion(emotion.Concerned, 0.4, "trainer set"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Emotion.Current != emotion.Concerned {
		t.Errorf("emotion = %q, want concerned", snap.Emotion.Current)
	}

	if err := s.OverrideEmotion("jubilant", 0.4, "x"); err == nil {
		t.Fatal("expected error for emotion outside the vocabulary")
	}
}

// slowLLM answers the first call (the opening) immediately and parks every
// later call until release is closed.
func slowLLM(t *testing.T, release chan struct{}) *httptest.Server {
	t.Helper()
	var calls atomic.Int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			<-release
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]string{{"type": "text", "text": "That sounds lovely, tell me more."}},
			"stop_reason": "end_turn",
		})
	}))
}

func waitForTyping(t *testing.T, s *Session, want bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Snapshot().Typing == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("typing indicator never became %v", want)
}

func TestTypingIndicator_VisibleDuringReply(t *testing.T) {
	release := make(chan struct{})
	server := slowLLM(t, release)
	defer server.Close()

	s := newTestSession(t, server.URL)
	ctx := context.Background()
	if err := s.Start(ctx, "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.AddMessage(ctx, "Tell me about the date you have in mind.", chat.RoleUser, true)
	}()

	waitForTyping(t, s, true)

	// Writers stay out while the reply is in flight.
	if err := s.AddMessage(ctx, "another message", chat.RoleUser, false); err == nil {
		t.Error("expected error for a message while the customer is responding")
	}
	if _, err := s.End(ctx); err == nil {
		t.Error("expected error ending the session while the customer is responding")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("turn failed: %v", err)
	}
	if s.Snapshot().Typing {
		t.Error("typing indicator still set after the reply arrived")
	}
}

func TestTypingIndicator_AutoClears(t *testing.T) {
	release := make(chan struct{})
	server := slowLLM(t, release)
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)
	ev := evaluator.New(llm, discardLogger())
	s := New(llm, ev, nil, discardLogger(), Options{TypingTimeout: 20 * time.Millisecond})

	ctx := context.Background()
	if err := s.Start(ctx, "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.AddMessage(ctx, "Tell me about the date you have in mind.", chat.RoleUser, true)
	}()

	waitForTyping(t, s, true)
	// The defensive timer clears the flag while the call is still parked.
	waitForTyping(t, s, false)

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("turn failed: %v", err)
	}
}

func TestSilenceWatchdog(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)
	ev := evaluator.New(llm, discardLogger())
	s := New(llm, ev, nil, discardLogger(), Options{SilenceTimeout: 20 * time.Millisecond})

	if err := s.Start(context.Background(), "budget-conscious-couple"); err != nil {
		t.Fatalf("start: %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	snap := s.Snapshot()
	if snap.Emotion.Current != emotion.Frustrated {
		t.Errorf("emotion = %q, want frustrated after silence", snap.Emotion.Current)
	}
	if snap.Emotion.Intensity != 0.9 {
		t.Errorf("intensity = %f, want 0.9", snap.Emotion.Intensity)
	}
	last := snap.History[len(snap.History)-1]
	if last.Role != chat.RoleSystem {
		t.Errorf("expected a system message narrating the timeout, got role %q", last.Role)
	}
}

func TestEnd_RequiresActiveSession(t *testing.T) {
	server := fakeLLM(t)
	defer server.Close()
	s := newTestSession(t, server.URL)

	if _, err := s.End(context.Background()); err == nil {
		t.Fatal("expected error before Start")
	}
}
