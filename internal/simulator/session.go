// Package simulator owns a roleplay session: the transcript, the derived
// emotion and interaction state, per-turn scoring, and the end-of-session
// evaluation. One Session per trainee; every turn runs append, classify,
// score, emotion and interaction sequentially under the session lock. The
// lock is released only for the customer-reply network call, so readers can
// observe the typing indicator while the call is in flight.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calluna-vineyards/trellis/internal/anthropic"
	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/emotion"
	"github.com/calluna-vineyards/trellis/internal/evaluator"
	"github.com/calluna-vineyards/trellis/internal/events"
	"github.com/calluna-vineyards/trellis/internal/goldstd"
	"github.com/calluna-vineyards/trellis/internal/interaction"
	"github.com/calluna-vineyards/trellis/internal/scenario"
	"github.com/calluna-vineyards/trellis/internal/scoring"
	"github.com/calluna-vineyards/trellis/internal/stage"
)

// DefaultTypingTimeout force-clears the typing indicator even when an LLM
// call never resolves. Separate from the 30-minute silence watchdog.
const DefaultTypingTimeout = 10 * time.Second

const replyMaxTokens = 1024

// Options tune the session timers. Zero values use the defaults.
type Options struct {
	TypingTimeout  time.Duration
	SilenceTimeout time.Duration
}

// Session is one trainee's simulation. Lifecycle: idle → active → ended →
// idle (on reset).
type Session struct {
	mu sync.Mutex

	id     uuid.UUID
	logger *slog.Logger
	llm    *anthropic.Client
	eval   *evaluator.Evaluator
	events *events.Publisher // may be nil
	opts   Options

	scenario     *scenario.Scenario
	history      []chat.Message
	emotions     *emotion.Tracker
	interactions *interaction.Tracker
	turnScores   []scoring.Result

	active   bool
	ended    bool
	busy     bool // a customer reply is in flight with the lock released
	feedback *evaluator.Evaluation
	lastErr  string

	typing      bool
	typingTimer *time.Timer
	watchdog    *emotion.Watchdog
}

// Snapshot is a read-only copy of the session state for the API layer.
type Snapshot struct {
	ID           uuid.UUID             `json:"id"`
	ScenarioID   string                `json:"scenario_id,omitempty"`
	Active       bool                  `json:"active"`
	Ended        bool                  `json:"ended"`
	Typing       bool                  `json:"typing"`
	History      []chat.Message        `json:"history"`
	Emotion      emotion.State         `json:"emotion"`
	Interactions interaction.Log       `json:"interactions"`
	TurnScores   []scoring.Result      `json:"turn_scores"`
	AverageScore int                   `json:"average_score"`
	Feedback     *evaluator.Evaluation `json:"feedback,omitempty"`
	LastError    string                `json:"last_error,omitempty"`
}

func New(llm *anthropic.Client, eval *evaluator.Evaluator, pub *events.Publisher, logger *slog.Logger, opts Options) *Session {
	if opts.TypingTimeout <= 0 {
		opts.TypingTimeout = DefaultTypingTimeout
	}
	if opts.SilenceTimeout <= 0 {
		opts.SilenceTimeout = emotion.DefaultSilence
	}
	return &Session{
		id:           uuid.New(),
		logger:       logger,
		llm:          llm,
		eval:         eval,
		events:       pub,
		opts:         opts,
		emotions:     emotion.NewTracker(),
		interactions: interaction.NewTracker(),
	}
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Start begins a simulation: looks up the scenario (failing loudly when it
// does not exist), resets derived state, and synthesises the customer's
// opening message.
func (s *Session) Start(ctx context.Context, scenarioID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scn, ok := scenario.Find(scenarioID)
	if !ok {
		return fmt.Errorf("scenario %q not found", scenarioID)
	}

	s.resetLocked()
	s.scenario = scn

	opening, err := s.llm.Complete(ctx, buildRoleplayPrompt(scn),
		[]anthropic.Message{{Role: "user", Content: buildOpeningPrompt(scn)}}, replyMaxTokens)
	if err != nil {
		s.scenario = nil
		s.lastErr = fmt.Sprintf("could not start the simulation: %v", err)
		s.logger.Error("opening message failed", "scenario", scn.ID, "error", err)
		return fmt.Errorf("opening message: %w", err)
	}

	s.emotions.Update(opening, "")
	s.appendAssistantLocked(opening)
	s.interactions.Analyze("", opening, s.emotions.Current())

	s.active = true
	s.watchdog = emotion.NewWatchdog(s.opts.SilenceTimeout, s.onSilence)
	s.watchdog.Reset()

	s.publish(events.SubjectSessionStarted, map[string]any{
		"session_id": s.id.String(),
		"scenario":   scn.ID,
	})
	s.logger.Info("simulation started", "session_id", s.id, "scenario", scn.ID)
	return nil
}

// AddMessage appends a message to the transcript. Trainee messages run the
// full per-turn pipeline; when generateResponse is set, the customer's reply
// is requested from the LLM. A failed reply rolls the turn back so the
// trainee can retry.
func (s *Session) AddMessage(ctx context.Context, content, role string, generateResponse bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return fmt.Errorf("no active simulation")
	}
	if s.busy {
		return fmt.Errorf("the customer is still responding")
	}

	switch role {
	case chat.RoleUser:
		return s.traineeTurnLocked(ctx, content, generateResponse)
	case chat.RoleAssistant:
		s.appendAssistantLocked(content)
		s.responseImpactLocked(content)
		return nil
	case chat.RoleSystem:
		s.history = append(s.history, chat.New(chat.RoleSystem, content))
		return nil
	default:
		return fmt.Errorf("unknown message role %q", role)
	}
}

func (s *Session) traineeTurnLocked(ctx context.Context, content string, generateResponse bool) error {
	priorReply := s.lastAssistantLocked()

	msg := chat.New(chat.RoleUser, content)
	s.history = append(s.history, msg)
	s.watchdog.Reset()

	// Stage classification selects which gold standard the turn is scored
	// against. Scores feed the final evaluation; they are not surfaced
	// per-turn.
	st := stage.Classify(s.history)
	tree := goldstd.ForScenario(s.scenario.ID)
	if tree != nil {
		result := scoring.Score(content, tree.ForStage(st))
		s.turnScores = append(s.turnScores, result)
		s.logger.Debug("turn scored", "session_id", s.id, "stage", st, "score", result.Score)
	}

	s.emotions.Update(content, priorReply)
	s.interactions.Analyze(content, priorReply, s.emotions.Current())

	if !generateResponse {
		return nil
	}

	scn := s.scenario
	conv := s.conversationLocked()
	s.beginTypingLocked()

	// The reply can take seconds. Release the lock for the call so readers
	// see the typing indicator instead of blocking on the turn; busy keeps
	// other writers out of the window.
	s.busy = true
	s.mu.Unlock()
	reply, err := s.llm.Complete(ctx, buildRoleplayPrompt(scn), conv, replyMaxTokens)
	s.mu.Lock()
	s.busy = false
	s.clearTypingLocked()

	if !s.active {
		// Reset raced the reply; nothing to roll back or commit.
		return fmt.Errorf("simulation ended while the customer was replying")
	}

	if err != nil {
		// Roll the turn back: the trainee message and its score do not
		// survive a failed turn, so a retry scores cleanly.
		s.removeMessageLocked(msg.ID)
		if tree != nil && len(s.turnScores) > 0 {
			s.turnScores = s.turnScores[:len(s.turnScores)-1]
		}
		s.lastErr = fmt.Sprintf("the customer could not respond: %v", err)
		s.logger.Error("reply failed", "session_id", s.id, "error", err)
		return fmt.Errorf("customer reply: %w", err)
	}

	s.lastErr = ""
	// The reply content moves the customer's emotion again before it is
	// stamped onto the message.
	s.emotions.Update(reply, content)
	s.appendAssistantLocked(reply)
	return nil
}

// End computes the aggregate evaluation and closes the session.
func (s *Session) End(ctx context.Context) (*evaluator.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, fmt.Errorf("no active simulation")
	}
	if s.busy {
		return nil, fmt.Errorf("the customer is still responding")
	}

	avg := s.averageScoreLocked()
	eval, err := s.eval.Evaluate(ctx, s.scenario, s.history, s.interactions.Snapshot(), s.emotions.State().Journal, avg)
	if err != nil {
		s.lastErr = fmt.Sprintf("evaluation failed: %v", err)
		return nil, err
	}

	s.feedback = eval
	s.active = false
	s.ended = true
	if s.watchdog != nil {
		s.watchdog.Stop()
	}

	s.publish(events.SubjectEvaluationCompleted, map[string]any{
		"session_id": s.id.String(),
		"scenario":   s.scenario.ID,
		"score":      eval.Score,
		"avg_score":  avg,
	})
	s.publish(events.SubjectSessionEnded, map[string]any{
		"session_id": s.id.String(),
		"scenario":   s.scenario.ID,
		"messages":   len(s.history),
	})
	s.logger.Info("simulation ended", "session_id", s.id, "score", eval.Score, "avg_score", avg)
	return eval, nil
}

// Reset atomically clears all session state back to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// OverrideEmotion is the trainer/test control path; it bypasses the
// heuristics entirely.
func (s *Session) OverrideEmotion(emo string, intensity float64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.emotions.Override(emo, intensity, reason)
	return err
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:           s.id,
		ScenarioID:   s.scenarioIDLocked(),
		Active:       s.active,
		Ended:        s.ended,
		Typing:       s.typing,
		History:      append([]chat.Message(nil), s.history...),
		Emotion:      s.emotions.State(),
		Interactions: s.interactions.Snapshot(),
		TurnScores:   append([]scoring.Result(nil), s.turnScores...),
		AverageScore: s.averageScoreLocked(),
		Feedback:     s.feedback,
		LastError:    s.lastErr,
	}
}

// Scenario returns the active scenario, or nil when idle.
func (s *Session) Scenario() *scenario.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario
}

func (s *Session) resetLocked() {
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	if s.typingTimer != nil {
		s.typingTimer.Stop()
		s.typingTimer = nil
	}
	s.scenario = nil
	s.history = nil
	s.turnScores = nil
	s.emotions.Reset()
	s.interactions.Reset()
	s.active = false
	s.ended = false
	s.feedback = nil
	s.lastErr = ""
	s.typing = false
}

// appendAssistantLocked stamps the customer's current emotion onto the reply.
func (s *Session) appendAssistantLocked(content string) {
	m := chat.New(chat.RoleAssistant, content)
	m.Emotion = s.emotions.Current()
	m.EmotionIntensity = s.emotions.Intensity()
	s.history = append(s.history, m)
}

// responseImpactLocked nudges emotion from courtesy cues in a counterparty
// reply. Distinct from the trainee-turn emotion update.
func (s *Session) responseImpactLocked(content string) {
	lower := strings.ToLower(content)
	if strings.Contains(lower, "welcome") || strings.Contains(lower, "thank") || strings.Contains(lower, "apolog") {
		next := s.emotions.Intensity() + 0.1
		if next > 1.0 {
			next = 1.0
		}
		_, _ = s.emotions.Override(emotion.Hopeful, next, "courteous reply")
	}
}

func (s *Session) onSilence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	_, _ = s.emotions.Override(emotion.Frustrated, 0.9, "no response within the waiting window")
	s.history = append(s.history, chat.New(chat.RoleSystem,
		fmt.Sprintf("%s has been waiting a long time for a reply and is getting frustrated.", s.scenario.Persona.Name)))
	s.publish(events.SubjectSessionTimeout, map[string]any{
		"session_id": s.id.String(),
		"scenario":   s.scenario.ID,
	})
	s.logger.Warn("trainee silent past the waiting window", "session_id", s.id)
}

func (s *Session) beginTypingLocked() {
	s.typing = true
	if s.typingTimer != nil {
		s.typingTimer.Stop()
	}
	// Defensive clear: even if the call hangs past its own timeout, the
	// indicator must not stick.
	s.typingTimer = time.AfterFunc(s.opts.TypingTimeout, func() {
		s.mu.Lock()
		s.typing = false
		s.mu.Unlock()
	})
}

func (s *Session) clearTypingLocked() {
	s.typing = false
	if s.typingTimer != nil {
		s.typingTimer.Stop()
		s.typingTimer = nil
	}
}

func (s *Session) conversationLocked() []anthropic.Message {
	var out []anthropic.Message
	for _, m := range s.history {
		if m.Role == chat.RoleSystem {
			continue
		}
		// The customer is the assistant from the LLM's point of view.
		out = append(out, anthropic.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// removeMessageLocked drops one message by id. The watchdog may have appended
// a system message while the lock was released, so rollback cannot assume the
// trainee message is still last.
func (s *Session) removeMessageLocked(id uuid.UUID) {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return
		}
	}
}

func (s *Session) lastAssistantLocked() string {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Role == chat.RoleAssistant {
			return s.history[i].Content
		}
	}
	return ""
}

func (s *Session) averageScoreLocked() int {
	if len(s.turnScores) == 0 {
		return 0
	}
	total := 0
	for _, r := range s.turnScores {
		total += r.Score
	}
	return total / len(s.turnScores)
}

func (s *Session) scenarioIDLocked() string {
	if s.scenario == nil {
		return ""
	}
	return s.scenario.ID
}

func (s *Session) publish(subject string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}
