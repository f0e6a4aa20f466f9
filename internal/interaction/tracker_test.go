package interaction

import (
	"testing"

	"github.com/calluna-vineyards/trellis/internal/emotion"
)

func TestAnalyze_MissedOpportunity(t *testing.T) {
	tr := NewTracker()
	tr.Analyze("What's your budget looking like?", "We'd love an autumn wedding here.", emotion.Neutral)

	log := tr.Snapshot()
	if len(log.MissedOpportunities) != 1 {
		t.Fatalf("missed opportunities = %d, want 1", len(log.MissedOpportunities))
	}
	if len(log.NegativeInteractions)+len(log.RapportBuilding)+len(log.ClosingAttempts) != 0 {
		t.Errorf("unexpected entries in other logs: %+v", log)
	}
	e := log.MissedOpportunities[0]
	if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("entry id not stamped")
	}
	if e.Timestamp.IsZero() {
		t.Error("entry timestamp not stamped")
	}
}

func TestAnalyze_NoMissedOpportunityWhenCustomerAskedAboutPrice(t *testing.T) {
	tr := NewTracker()
	tr.Analyze("Our budget packages start at twelve thousand.", "What would the price be for our group?", emotion.Neutral)

	log := tr.Snapshot()
	if len(log.MissedOpportunities) != 0 {
		t.Errorf("missed opportunities = %d, want 0", len(log.MissedOpportunities))
	}
}

func TestAnalyze_NegativeOnFrustration(t *testing.T) {
	tr := NewTracker()
	tr.Analyze("I told you already.", "Can you explain the rain plan again?", emotion.Frustrated)

	log := tr.Snapshot()
	if len(log.NegativeInteractions) != 1 {
		t.Errorf("negative interactions = %d, want 1", len(log.NegativeInteractions))
	}
}

func TestAnalyze_RapportAndClosingFromPriorReply(t *testing.T) {
	tr := NewTracker()
	tr.Analyze(
		"That means a lot, thank you for sharing.",
		"I feel like you really understand us — could we book a tasting?",
		emotion.Hopeful,
	)

	log := tr.Snapshot()
	if len(log.RapportBuilding) != 1 {
		t.Errorf("rapport entries = %d, want 1", len(log.RapportBuilding))
	}
	if len(log.ClosingAttempts) != 1 {
		t.Errorf("closing entries = %d, want 1", len(log.ClosingAttempts))
	}
}

func TestAnalyze_MultipleChecksMayFire(t *testing.T) {
	tr := NewTracker()
	tr.Analyze(
		"Let's talk budget.",
		"I understand you want to reserve soon.",
		emotion.Angry,
	)

	log := tr.Snapshot()
	if len(log.NegativeInteractions) != 1 || len(log.MissedOpportunities) != 1 ||
		len(log.RapportBuilding) != 1 || len(log.ClosingAttempts) != 1 {
		t.Errorf("expected all four detectors to fire, got %+v", log)
	}
}

func TestAnalyze_NoDuplicateOnReplay(t *testing.T) {
	tr := NewTracker()
	tr.Analyze("What's your budget?", "We love the lawn.", emotion.Neutral)
	first := len(tr.Snapshot().MissedOpportunities)

	tr.Analyze("Tell me more about your plans and priorities.", "We love the lawn.", emotion.Neutral)
	second := len(tr.Snapshot().MissedOpportunities)

	if first != 1 || second != 1 {
		t.Errorf("missed opportunities after replay = %d/%d, want 1/1", first, second)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.TrackRapport(Entry{Description: "x"})
	snap := tr.Snapshot()
	snap.RapportBuilding[0].Description = "mutated"

	if tr.Snapshot().RapportBuilding[0].Description != "x" {
		t.Error("snapshot mutation leaked into the tracker")
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.TrackNegative(Entry{Description: "a"})
	tr.TrackMissedOpportunity(Entry{Description: "b"})
	tr.TrackRapport(Entry{Description: "c"})
	tr.TrackClosing(Entry{Description: "d"})
	tr.Reset()

	log := tr.Snapshot()
	if len(log.NegativeInteractions)+len(log.MissedOpportunities)+
		len(log.RapportBuilding)+len(log.ClosingAttempts) != 0 {
		t.Errorf("logs not cleared: %+v", log)
	}
}
