// Package export renders a session transcript or evaluation as a PDF
// download.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/evaluator"
	"github.com/calluna-vineyards/trellis/internal/simulator"
)

// TranscriptFilename names the conversation download for a given day.
func TranscriptFilename(t time.Time) string {
	return fmt.Sprintf("sales-conversation-%s.pdf", t.Format("2006-01-02"))
}

// EvaluationFilename names the evaluation download for a scenario and day.
func EvaluationFilename(scenarioID string, t time.Time) string {
	return fmt.Sprintf("%s-evaluation-%s.pdf", scenarioID, t.Format("2006-01-02"))
}

// Transcript renders the full conversation, one block per message with the
// speaker and any stamped emotion.
func Transcript(snap simulator.Snapshot, scenarioTitle string) ([]byte, error) {
	pdf := newDoc("Sales Conversation")

	pdf.SetFont("Helvetica", "", 11)
	if scenarioTitle != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Scenario: "+scenarioTitle, "", "L", false)
		pdf.Ln(4)
	}

	for _, m := range snap.History {
		speaker := speakerLabel(m)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, speaker, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, m.Content, "", "L", false)
		pdf.Ln(3)
	}

	return render(pdf)
}

// Evaluation renders the trainer verdict with the per-turn score average.
func Evaluation(scenarioTitle string, eval *evaluator.Evaluation, avgScore int) ([]byte, error) {
	pdf := newDoc("Session Evaluation")

	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 6, "Scenario: "+scenarioTitle, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf("Trainer score: %d%%", eval.Score), "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Automated turn average: %d/100", avgScore), "", "L", false)
	pdf.Ln(4)

	writeSection(pdf, "Strengths", eval.Strengths)
	writeSection(pdf, "Issues", eval.Issues)

	if eval.Feedback != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, "Feedback", "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, eval.Feedback, "", "L", false)
	}

	return render(pdf)
}

func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, "Calluna Vineyards: "+title, "", "L", false)
	pdf.Ln(2)
	return pdf
}

func writeSection(pdf *fpdf.Fpdf, title string, items []string) {
	if len(items) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	for _, it := range items {
		pdf.MultiCell(0, 6, "- "+it, "", "L", false)
	}
	pdf.Ln(3)
}

func speakerLabel(m chat.Message) string {
	var label string
	switch m.Role {
	case chat.RoleUser:
		label = "Trainee"
	case chat.RoleAssistant:
		label = "Customer"
	default:
		label = "System"
	}
	if m.Emotion != "" && m.Role == chat.RoleAssistant {
		label += fmt.Sprintf(" (%s)", strings.ToLower(m.Emotion))
	}
	return label
}

func render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
