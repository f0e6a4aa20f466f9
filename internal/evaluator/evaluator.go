// Package evaluator produces the end-of-session evaluation by asking the LLM
// to act as a sales trainer and parsing its sectioned plain-text reply.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/calluna-vineyards/trellis/internal/anthropic"
	"github.com/calluna-vineyards/trellis/internal/chat"
	"github.com/calluna-vineyards/trellis/internal/emotion"
	"github.com/calluna-vineyards/trellis/internal/interaction"
	"github.com/calluna-vineyards/trellis/internal/scenario"
)

// Evaluation is the parsed trainer verdict.
type Evaluation struct {
	Score     int      `json:"score"`
	Issues    []string `json:"issues"`
	Strengths []string `json:"strengths"`
	Feedback  string   `json:"feedback"`
}

type Evaluator struct {
	llm    *anthropic.Client
	logger *slog.Logger
}

func New(llm *anthropic.Client, logger *slog.Logger) *Evaluator {
	return &Evaluator{llm: llm, logger: logger}
}

// Evaluate sends the full session to the LLM evaluator persona and parses the
// reply. An LLM failure is returned as an error; a reply that does not match
// the section contract degrades to an empty evaluation, never an error.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	scn *scenario.Scenario,
	history []chat.Message,
	log interaction.Log,
	journal []emotion.JournalEntry,
	avgScore int,
) (*Evaluation, error) {
	prompt := fmt.Sprintf(evaluationUserPrompt,
		scn.Title,
		scn.Persona.Name,
		bulleted(scn.Objectives),
		avgScore,
		formatJournal(journal),
		formatLog(log),
		formatTranscript(history),
	)

	e.logger.Info("requesting session evaluation",
		"scenario", scn.ID,
		"messages", len(history),
		"avg_score", avgScore,
	)

	raw, err := e.llm.Complete(ctx, systemPrompt, []anthropic.Message{{Role: "user", Content: prompt}}, 2048)
	if err != nil {
		return nil, fmt.Errorf("llm evaluation: %w", err)
	}

	eval := Parse(raw)
	e.logger.Info("evaluation parsed",
		"scenario", scn.ID,
		"score", eval.Score,
		"issues", len(eval.Issues),
		"strengths", len(eval.Strengths),
	)
	return eval, nil
}

var scoreRe = regexp.MustCompile(`Score:\s*(\d+)%`)

// Parse extracts the Score/Issues/Strengths/Feedback sections from the
// evaluator's plain-text reply. Missing or malformed sections yield zero
// values; the parse never fails hard.
func Parse(raw string) *Evaluation {
	eval := &Evaluation{}

	if m := scoreRe.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if n > 100 {
				n = 100
			}
			eval.Score = n
		}
	}

	eval.Issues = parseBullets(section(raw, "Issues:", "Strengths:"))
	eval.Strengths = parseBullets(section(raw, "Strengths:", "Feedback:"))
	eval.Feedback = strings.TrimSpace(section(raw, "Feedback:", ""))

	return eval
}

// section returns the text between a marker and the next marker (or the end).
func section(raw, from, until string) string {
	i := strings.Index(raw, from)
	if i < 0 {
		return ""
	}
	rest := raw[i+len(from):]
	if until != "" {
		if j := strings.Index(rest, until); j >= 0 {
			rest = rest[:j]
		}
	}
	return rest
}

func parseBullets(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line == "" || line == "-" || strings.EqualFold(line, "none") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func bulleted(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	return b.String()
}

func formatTranscript(history []chat.Message) string {
	var b strings.Builder
	for _, m := range history {
		speaker := "Customer"
		switch m.Role {
		case chat.RoleUser:
			speaker = "Trainee"
		case chat.RoleSystem:
			speaker = "System"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	return b.String()
}

func formatJournal(journal []emotion.JournalEntry) string {
	if len(journal) == 0 {
		return "- none\n"
	}
	var b strings.Builder
	for _, j := range journal {
		fmt.Fprintf(&b, "- %s (%.1f): %s\n", j.Emotion, j.Intensity, j.Reason)
	}
	return b.String()
}

func formatLog(log interaction.Log) string {
	var b strings.Builder
	writeGroup(&b, "Negative interactions", log.NegativeInteractions)
	writeGroup(&b, "Missed opportunities", log.MissedOpportunities)
	writeGroup(&b, "Rapport building", log.RapportBuilding)
	writeGroup(&b, "Closing attempts", log.ClosingAttempts)
	return b.String()
}

func writeGroup(b *strings.Builder, title string, entries []interaction.Entry) {
	fmt.Fprintf(b, "%s (%d):\n", title, len(entries))
	for _, e := range entries {
		fmt.Fprintf(b, "- %s\n", e.Description)
	}
}
