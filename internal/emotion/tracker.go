// Package emotion tracks the simulated customer's emotional state across a
// session. Detection is keyword counting, not NLP: unhelpful cues frustrate,
// helpful cues encourage, short or evasive answers annoy.
package emotion

import (
	"fmt"
	"strings"
	"time"
)

// Emotion vocabulary. Intensity is always in [0,1].
const (
	Happy      = "happy"
	Neutral    = "neutral"
	Frustrated = "frustrated"
	Hopeful    = "hopeful"
	Annoyed    = "annoyed"
	Concerned  = "concerned"
	Angry      = "angry"
	Excited    = "excited"
)

var vocabulary = map[string]bool{
	Happy: true, Neutral: true, Frustrated: true, Hopeful: true,
	Annoyed: true, Concerned: true, Angry: true, Excited: true,
}

var unhelpfulPhrases = []string{
	"i don't know",
	"cannot help",
	"can't help",
	"not sure",
	"no information",
	"not possible",
	"you'll have to",
}

var helpfulPhrases = []string{
	"let me help",
	"i understand",
	"great question",
	"happy to",
	"of course",
	"absolutely",
	"good news",
}

const shortMessageWords = 20

// JournalEntry is one snapshot in the emotion timeline.
type JournalEntry struct {
	Emotion   string    `json:"emotion"`
	Intensity float64   `json:"intensity"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the current emotion plus its full history.
type State struct {
	Current   string         `json:"current_emotion"`
	Intensity float64        `json:"intensity"`
	Journal   []JournalEntry `json:"journal"`
}

// Tracker holds one session's emotion state. Not safe for concurrent use;
// the session serialises all turns.
type Tracker struct {
	state State
}

// NewTracker starts at neutral with a seeded journal entry.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.record(Neutral, 0.5, "session start")
	return t
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	out := t.state
	out.Journal = append([]JournalEntry(nil), t.state.Journal...)
	return out
}

// Current returns the current emotion label.
func (t *Tracker) Current() string { return t.state.Current }

// Intensity returns the current intensity.
func (t *Tracker) Intensity() float64 { return t.state.Intensity }

// Update derives a new emotion from the latest message content. prev is the
// preceding message from the other party, used for the unanswered-question
// rule: if prev asked more questions than content has sentences, the customer
// feels ignored.
func (t *Tracker) Update(content, prev string) State {
	lower := strings.ToLower(content)

	unhelpful := countPhrases(lower, unhelpfulPhrases)
	helpful := countPhrases(lower, helpfulPhrases)

	var emo string
	var intensity float64
	var reasons []string

	switch {
	case unhelpful > helpful:
		emo = Frustrated
		intensity = clamp(0.5 + 0.1*float64(unhelpful))
		reasons = append(reasons, fmt.Sprintf("%d unhelpful cues", unhelpful))
	case helpful > unhelpful:
		emo = Hopeful
		intensity = clamp(0.5 + 0.1*float64(helpful))
		reasons = append(reasons, fmt.Sprintf("%d helpful cues", helpful))
	default:
		emo = Neutral
		intensity = 0.5
		reasons = append(reasons, "no strong cues")
	}

	if len(strings.Fields(content)) < shortMessageWords {
		emo = Annoyed
		intensity = clamp(intensity + 0.2)
		reasons = append(reasons, "response too short")
	}

	if strings.Count(prev, "?") > strings.Count(content, ".") {
		emo = Frustrated
		intensity = clamp(intensity + 0.3)
		reasons = append(reasons, "questions left unanswered")
	}

	t.record(emo, intensity, strings.Join(reasons, "; "))
	return t.State()
}

// Override bypasses the heuristics entirely. Used by trainers and by the
// silence watchdog; journalled identically to heuristic updates.
func (t *Tracker) Override(emo string, intensity float64, reason string) (State, error) {
	if !vocabulary[emo] {
		return t.State(), fmt.Errorf("unknown emotion %q", emo)
	}
	t.record(emo, clamp(intensity), reason)
	return t.State(), nil
}

// Reset returns the tracker to its starting state.
func (t *Tracker) Reset() {
	t.state = State{}
	t.record(Neutral, 0.5, "session start")
}

func (t *Tracker) record(emo string, intensity float64, reason string) {
	t.state.Current = emo
	t.state.Intensity = intensity
	t.state.Journal = append(t.state.Journal, JournalEntry{
		Emotion:   emo,
		Intensity: intensity,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

// countPhrases counts how many phrases from the list appear in the content.
// Each phrase counts once regardless of repetition.
func countPhrases(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
