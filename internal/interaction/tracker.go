// Package interaction keeps four append-only logs of notable moments in a
// roleplay session: negative interactions, missed opportunities,
// rapport-building moments, and closing attempts. Detection is keyword and
// emotion heuristics run once per trainee turn.
package interaction

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calluna-vineyards/trellis/internal/emotion"
)

// Entry is one logged moment.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Impact      string    `json:"impact"`
	Context     string    `json:"context"`
	Timestamp   time.Time `json:"timestamp"`
}

// Log is a snapshot of all four sequences.
type Log struct {
	NegativeInteractions []Entry `json:"negative_interactions"`
	MissedOpportunities  []Entry `json:"missed_opportunities"`
	RapportBuilding      []Entry `json:"rapport_building"`
	ClosingAttempts      []Entry `json:"closing_attempts"`
}

// Tracker holds one session's interaction logs. Not safe for concurrent use;
// the session serialises all turns.
type Tracker struct {
	log Log
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Analyze runs all detectors against the latest exchange. traineeMsg is the
// trainee's message, priorReply the counterparty message that preceded it.
// The checks are independent; more than one may fire.
func (t *Tracker) Analyze(traineeMsg, priorReply, currentEmotion string) {
	msg := strings.ToLower(traineeMsg)
	prior := strings.ToLower(priorReply)

	if currentEmotion == emotion.Frustrated || currentEmotion == emotion.Angry {
		t.TrackNegative(Entry{
			Description: "customer reached a negative emotional state",
			Impact:      "high",
			Context:     trim(traineeMsg),
		})
	}

	if strings.Contains(msg, "budget") &&
		!strings.Contains(prior, "package") && !strings.Contains(prior, "price") {
		t.TrackMissedOpportunity(Entry{
			Description: "raised budget before the customer asked about packages or pricing",
			Impact:      "medium",
			Context:     trim(traineeMsg),
		})
	}

	if containsAny(prior, []string{"understand", "feel", "share"}) {
		t.TrackRapport(Entry{
			Description: "customer opened up emotionally",
			Impact:      "positive",
			Context:     trim(priorReply),
		})
	}

	if containsAny(prior, []string{"book", "reserve", "schedule"}) {
		t.TrackClosing(Entry{
			Description: "customer signalled readiness to move forward",
			Impact:      "positive",
			Context:     trim(priorReply),
		})
	}
}

// TrackNegative appends to the negative-interaction log, stamping id and time.
func (t *Tracker) TrackNegative(e Entry) {
	t.log.NegativeInteractions = append(t.log.NegativeInteractions, stamp(e))
}

// TrackMissedOpportunity appends to the missed-opportunity log.
func (t *Tracker) TrackMissedOpportunity(e Entry) {
	t.log.MissedOpportunities = append(t.log.MissedOpportunities, stamp(e))
}

// TrackRapport appends to the rapport-building log.
func (t *Tracker) TrackRapport(e Entry) {
	t.log.RapportBuilding = append(t.log.RapportBuilding, stamp(e))
}

// TrackClosing appends to the closing-attempt log.
func (t *Tracker) TrackClosing(e Entry) {
	t.log.ClosingAttempts = append(t.log.ClosingAttempts, stamp(e))
}

// Snapshot returns a copy of all four logs.
func (t *Tracker) Snapshot() Log {
	return Log{
		NegativeInteractions: append([]Entry(nil), t.log.NegativeInteractions...),
		MissedOpportunities:  append([]Entry(nil), t.log.MissedOpportunities...),
		RapportBuilding:      append([]Entry(nil), t.log.RapportBuilding...),
		ClosingAttempts:      append([]Entry(nil), t.log.ClosingAttempts...),
	}
}

// Reset clears all four logs.
func (t *Tracker) Reset() {
	t.log = Log{}
}

func stamp(e Entry) Entry {
	e.ID = uuid.New()
	e.Timestamp = time.Now().UTC()
	return e
}

func trim(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
