package scenario

// Persona describes the simulated customer the trainee sells to.
type Persona struct {
	Name     string   `json:"name"`
	Traits   []string `json:"traits"`
	Concerns []string `json:"concerns"`
}

// Criterion is one weighted evaluation axis for a scenario.
type Criterion struct {
	Description  string `json:"description"`
	Weight       int    `json:"weight"`
	DealBreaker  bool   `json:"deal_breaker,omitempty"`
	MinimumScore int    `json:"minimum_score,omitempty"`
}

// Scenario is a static roleplay configuration. Loaded at startup, never mutated.
type Scenario struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Difficulty  string               `json:"difficulty"` // beginner | intermediate | advanced
	Description string               `json:"description"`
	Context     string               `json:"context"`
	Persona     Persona              `json:"persona"`
	Objectives  []string             `json:"objectives"`
	Criteria    map[string]Criterion `json:"evaluation_criteria"`
	StageFunnel []string             `json:"stage_funnel"`
	LeadSheet   string               `json:"lead_sheet"` // static PDF filename under /static/leadsheets
}

// Find returns the scenario with the given id, or false when none exists.
func Find(id string) (*Scenario, bool) {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i], true
		}
	}
	return nil, false
}

// All returns the full catalog.
func All() []Scenario {
	return Catalog
}
