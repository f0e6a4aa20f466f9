package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/evaluator"
	"github.com/calluna-vineyards/trellis/internal/simulator"
)

func TestFilenames(t *testing.T) {
	day := time.Date(2025, 6, 14, 15, 30, 0, 0, time.UTC)

	if got, want := TranscriptFilename(day), "sales-conversation-2025-06-14.pdf"; got != want {
		t.Errorf("TranscriptFilename = %q, want %q", got, want)
	}
	if got, want := EvaluationFilename("budget-conscious-couple", day), "budget-conscious-couple-evaluation-2025-06-14.pdf"; got != want {
		t.Errorf("EvaluationFilename = %q, want %q", got, want)
	}
}

func TestTranscriptProducesPDF(t *testing.T) {
	customer := chat.New(chat.RoleAssistant, "Hi, we're looking at venues for next June.")
	customer.Emotion = "hopeful"
	snap := simulator.Snapshot{
		History: []chat.Message{
			customer,
			chat.New(chat.RoleUser, "Welcome! Tell me about the day you're imagining."),
		},
	}

	out, err := Transcript(snap, "The Budget-Conscious Couple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}

func TestEvaluationProducesPDF(t *testing.T) {
	eval := &evaluator.Evaluation{
		Score:     84,
		Issues:    []string{"Quoted pricing too early"},
		Strengths: []string{"Warm discovery questions"},
		Feedback:  "Keep pacing the customer.",
	}

	out, err := Evaluation("The Budget-Conscious Couple", eval, 76)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}
