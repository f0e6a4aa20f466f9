// Package scoring compares a trainee message against the gold standard for
// the current conversation stage. It is a cheap lexical proxy for quality:
// case-insensitive substring checks with fixed point deductions.
package scoring

import (
	"fmt"
	"strings"

	"github.com/calluna-vineyards/trellis/internal/goldstd"
)

// Deviation types.
const (
	DeviationMissingElement    = "missing_element"
	DeviationProblematicPhrase = "problematic_phrase"
	DeviationToneIssue         = "tone_issue"
)

// Impact levels.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// Point deductions. Tests pin these exactly.
const (
	missingElementPenalty    = 10
	problematicPhrasePenalty = 15
	tonePenalty              = 10
)

// Deviation is a single flagged gap between a message and the gold standard.
type Deviation struct {
	Type        string `json:"type"`
	Detail      string `json:"detail"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

// Result is the per-message score. Derived and ephemeral; never persisted.
type Result struct {
	Score      int         `json:"score"`
	Deviations []Deviation `json:"deviations"`
	Feedback   string      `json:"feedback"`
}

// toneKeywords is the fixed per-tone dictionary for the tone check.
var toneKeywords = map[string][]string{
	"empathetic":   {"understand", "feel", "emotion", "concern", "worried", "anxious"},
	"professional": {"certainly", "assist", "provide", "ensure", "recommend"},
	"confident":    {"definitely", "absolutely", "certainly", "guarantee", "assure"},
	"friendly":     {"friendly", "welcome", "pleasure", "happy", "glad"},
	"respectful":   {"please", "thank", "appreciate", "respect", "honor"},
}

// Score evaluates a trainee message against a gold-standard entry.
// Starts at 100; each missing key element costs 10, each problematic phrase
// found costs 15, a failed tone check costs 10. Floor is 0.
func Score(message string, standard goldstd.Entry) Result {
	lower := strings.ToLower(message)
	score := 100
	var deviations []Deviation

	for _, elem := range standard.KeyElements {
		if !strings.Contains(lower, strings.ToLower(elem)) {
			score -= missingElementPenalty
			deviations = append(deviations, Deviation{
				Type:        DeviationMissingElement,
				Detail:      elem,
				Impact:      ImpactMedium,
				Description: fmt.Sprintf("response does not mention %q", elem),
			})
		}
	}

	for _, phrase := range standard.ProblematicPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			score -= problematicPhrasePenalty
			deviations = append(deviations, Deviation{
				Type:        DeviationProblematicPhrase,
				Detail:      phrase,
				Impact:      ImpactHigh,
				Description: fmt.Sprintf("response uses the phrase %q", phrase),
			})
		}
	}

	if standard.Tone != "" {
		if keywords, ok := toneKeywords[standard.Tone]; ok && !containsAny(lower, keywords) {
			score -= tonePenalty
			deviations = append(deviations, Deviation{
				Type:        DeviationToneIssue,
				Detail:      standard.Tone,
				Impact:      ImpactMedium,
				Description: fmt.Sprintf("response does not read as %s", standard.Tone),
			})
		}
	}

	if score < 0 {
		score = 0
	}

	return Result{
		Score:      score,
		Deviations: deviations,
		Feedback:   feedback(score, deviations, standard.Tone),
	}
}

// feedback builds the human-readable summary: a lead sentence picked by score
// band, then one aggregated sentence per deviation type.
func feedback(score int, deviations []Deviation, tone string) string {
	var b strings.Builder

	switch {
	case score < 50:
		b.WriteString("This response needs significant work.")
	case score < 70:
		b.WriteString("This response has several issues to address.")
	case score < 90:
		b.WriteString("Good response with minor areas for improvement.")
	default:
		b.WriteString("Excellent response that follows the sales approach well.")
	}

	var missing, problematic []string
	toneIssue := false
	for _, d := range deviations {
		switch d.Type {
		case DeviationMissingElement:
			missing = append(missing, d.Detail)
		case DeviationProblematicPhrase:
			problematic = append(problematic, d.Detail)
		case DeviationToneIssue:
			toneIssue = true
		}
	}

	if len(missing) > 0 {
		b.WriteString(" Missing key elements: " + strings.Join(missing, ", ") + ".")
	}
	if len(problematic) > 0 {
		b.WriteString(" Avoid these phrases: " + strings.Join(problematic, ", ") + ".")
	}
	if toneIssue {
		b.WriteString(" Aim for a more " + tone + " tone.")
	}

	return b.String()
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
