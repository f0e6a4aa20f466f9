package rubric

import "testing"

func TestForScenario(t *testing.T) {
	if _, ok := ForScenario("budget-conscious-couple"); !ok {
		t.Error("expected rubric for budget-conscious-couple")
	}
	if _, ok := ForScenario("nonexistent"); ok {
		t.Error("expected no rubric for unknown scenario")
	}
}

func TestValidateWeights(t *testing.T) {
	if err := ValidateWeights(); err != nil {
		t.Errorf("catalog rubrics should validate: %v", err)
	}
}

func TestValidateWeights_CatchesBadSheet(t *testing.T) {
	original := Sheets
	defer func() { Sheets = original }()

	Sheets = []Rubric{{
		ScenarioID: "broken",
		Criteria: []Criterion{
			{Name: "a", Weight: 40},
			{Name: "b", Weight: 40},
		},
	}}

	if err := ValidateWeights(); err == nil {
		t.Fatal("expected error for weights summing to 80")
	}
}

func TestScoringScaleCoversOneToFive(t *testing.T) {
	for _, r := range Sheets {
		if len(r.ScoringScale) != 5 {
			t.Errorf("rubric %q scale has %d levels, want 5", r.ScenarioID, len(r.ScoringScale))
			continue
		}
		for i, lvl := range r.ScoringScale {
			if lvl.Value != i+1 {
				t.Errorf("rubric %q scale[%d].Value = %d, want %d", r.ScenarioID, i, lvl.Value, i+1)
			}
		}
	}
}
