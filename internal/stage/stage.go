package stage

import (
	"strings"

	"github.com/calluna-vineyards/trellis/internal/chat"
)

// Stage is the coarse phase of a scripted sales conversation.
type Stage string

const (
	Initial      Stage = "initial"
	Discovery    Stage = "discovery"
	Presentation Stage = "presentation"
	Objection    Stage = "objection"
	Closing      Stage = "closing"
	General      Stage = "general" // gold-standard fallback key, never returned by Classify
)

// Keyword sets are fixed. The objection check runs before the closing check;
// reordering them changes which gold standard a message is scored against.
var (
	objectionKeywords = []string{"concern", "worried", "expensive", "budget", "date", "available"}
	closingKeywords   = []string{"book", "reserve", "sign", "contract", "deposit"}
)

// Classify infers the conversation stage from the full history.
// Heuristic only: message count buckets first, then keyword scans over the
// last three messages.
func Classify(history []chat.Message) Stage {
	n := len(history)
	if n < 2 {
		return Initial
	}

	switch {
	case n <= 3:
		return Initial
	case n <= 6:
		return Discovery
	case n <= 10:
		return Presentation
	}

	recent := history[n-3:]

	for _, m := range recent {
		if m.Role != chat.RoleAssistant {
			continue
		}
		if containsAny(m.Content, objectionKeywords) {
			return Objection
		}
	}

	for _, m := range recent {
		if m.Role != chat.RoleUser {
			continue
		}
		if containsAny(m.Content, closingKeywords) {
			return Closing
		}
	}

	return Presentation
}

func containsAny(content string, keywords []string) bool {
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
