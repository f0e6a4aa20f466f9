// Package goldstd holds the hand-authored gold-standard reference used to
// score trainee messages: per scenario, per conversation stage, the elements
// a strong response covers, the phrases it avoids, and the expected tone.
package goldstd

import "github.com/calluna-vineyards/trellis/internal/stage"

// Entry is one stage's scoring reference.
type Entry struct {
	KeyElements        []string `json:"key_elements"`
	ProblematicPhrases []string `json:"problematic_phrases"`
	Tone               string   `json:"tone"`
}

// Tree maps conversation stages to entries for a single scenario.
// A "general" entry is the fallback for stages with no dedicated entry.
type Tree map[stage.Stage]Entry

// ForScenario returns the gold-standard tree for a scenario, or nil when the
// scenario has no authored standard.
func ForScenario(scenarioID string) Tree {
	return standards[scenarioID]
}

// ForStage picks the entry for a stage: the stage-specific entry when present,
// else the general fallback.
func (t Tree) ForStage(s stage.Stage) Entry {
	if e, ok := t[s]; ok {
		return e
	}
	return t[stage.General]
}
