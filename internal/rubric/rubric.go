// Package rubric holds the manager-facing 1-5 scoring sheets. Distinct from
// the automated gold-standard score: rubrics are filled in by a human reviewer
// after listening to a session.
package rubric

import "fmt"

// ScaleLevel is one point on the 1-5 scoring scale.
type ScaleLevel struct {
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Levels describes what poor, satisfactory and excellent look like for a
// criterion.
type Levels struct {
	Poor         string `json:"poor"`
	Satisfactory string `json:"satisfactory"`
	Excellent    string `json:"excellent"`
}

// Criterion is one weighted row on the sheet.
type Criterion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
	Levels      Levels `json:"levels"`
}

// Rubric is a full manager scoring sheet for one scenario.
type Rubric struct {
	ScenarioID   string       `json:"scenario_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ScoringScale []ScaleLevel `json:"scoring_scale"`
	Criteria     []Criterion  `json:"criteria"`
}

// ForScenario returns the rubric for a scenario, or false when none exists.
func ForScenario(scenarioID string) (*Rubric, bool) {
	for i := range Sheets {
		if Sheets[i].ScenarioID == scenarioID {
			return &Sheets[i], true
		}
	}
	return nil, false
}

// ValidateWeights checks that every rubric's criterion weights sum to 100.
// Run at startup; a sheet that fails here is a data bug, not a runtime state.
func ValidateWeights() error {
	for _, r := range Sheets {
		total := 0
		for _, c := range r.Criteria {
			total += c.Weight
		}
		if total != 100 {
			return fmt.Errorf("rubric %q: criterion weights sum to %d, want 100", r.ScenarioID, total)
		}
	}
	return nil
}
