package scenario

var defaultFunnel = []string{"initial", "discovery", "presentation", "objection", "closing"}

// Catalog is the static roleplay catalog for the Calluna Vineyards sales team.
var Catalog = []Scenario{
	{
		ID:          "budget-conscious-couple",
		Title:       "The Budget-Conscious Couple",
		Difficulty:  "beginner",
		Description: "Emma and Jake love the vineyard but are anxious about staying inside a tight budget.",
		Context: "Emma and Jake toured the estate last weekend and fell in love with the hilltop ceremony lawn. " +
			"They have a firm budget of $28,000 for 110 guests and are comparing Calluna against two cheaper barn venues.",
		Persona: Persona{
			Name:     "Emma",
			Traits:   []string{"warm", "detail-oriented", "cost-sensitive"},
			Concerns: []string{"total cost", "hidden fees", "guest minimums", "rain backup"},
		},
		Objectives: []string{
			"Surface the real budget early without making the couple defensive",
			"Position the harvest-season weekday package before discounting",
			"Handle the cost objection with value, not price cuts",
			"Secure a follow-up tasting appointment or a tentative date hold",
		},
		Criteria: map[string]Criterion{
			"rapport": {
				Description: "Builds genuine warmth and acknowledges the couple's excitement",
				Weight:      20,
			},
			"discovery": {
				Description: "Asks open questions about budget, guest count, and priorities",
				Weight:      25,
			},
			"presentation": {
				Description: "Matches packages to stated priorities rather than listing everything",
				Weight:      20,
			},
			"objection_handling": {
				Description:  "Responds to budget pressure with value framing",
				Weight:       25,
				DealBreaker:  true,
				MinimumScore: 60,
			},
			"closing": {
				Description: "Asks for a concrete next step",
				Weight:      10,
			},
		},
		StageFunnel: defaultFunnel,
		LeadSheet:   "budget-conscious-couple-leadsheet.pdf",
	},
	{
		ID:          "planner-comparison-shopper",
		Title:       "The Professional Planner",
		Difficulty:  "intermediate",
		Description: "Sofia plans forty weddings a year and is shortlisting venues for a client with a fixed date.",
		Context: "Sofia is a wedding planner evaluating Calluna for a client who must marry on June 14th. " +
			"She knows market pricing cold, expects fast straight answers, and controls a pipeline of future bookings.",
		Persona: Persona{
			Name:     "Sofia",
			Traits:   []string{"direct", "experienced", "time-pressed"},
			Concerns: []string{"date availability", "vendor flexibility", "load-in logistics", "commission terms"},
		},
		Objectives: []string{
			"Confirm date availability before anything else",
			"Treat the planner as a repeat channel, not a one-off sale",
			"Answer logistics questions precisely",
			"Close on a site visit with the client present",
		},
		Criteria: map[string]Criterion{
			"rapport": {
				Description: "Respects the planner's expertise and time",
				Weight:      15,
			},
			"discovery": {
				Description: "Identifies the client's constraints through the planner",
				Weight:      20,
			},
			"presentation": {
				Description: "Leads with logistics and flexibility, not scenery",
				Weight:      25,
			},
			"objection_handling": {
				Description:  "Handles date and vendor-policy pushback without hedging",
				Weight:       25,
				DealBreaker:  true,
				MinimumScore: 65,
			},
			"closing": {
				Description: "Proposes the three-way site visit",
				Weight:      15,
			},
		},
		StageFunnel: defaultFunnel,
		LeadSheet:   "planner-comparison-shopper-leadsheet.pdf",
	},
	{
		ID:          "estate-buyout-weekend",
		Title:       "The Full Estate Buyout",
		Difficulty:  "advanced",
		Description: "Priya and Dev want an exclusive three-day estate buyout and expect white-glove treatment.",
		Context: "Priya and Dev are planning a 200-guest, three-day celebration and want exclusive use of the estate, " +
			"the clubhouse, and all twelve accommodation suites. Money matters less than control and discretion, " +
			"and they have already been courted by two Napa estates.",
		Persona: Persona{
			Name:     "Priya",
			Traits:   []string{"polished", "demanding", "privacy-focused"},
			Concerns: []string{"exclusivity", "accommodation capacity", "staff ratios", "weather contingencies"},
		},
		Objectives: []string{
			"Establish credibility for large multi-day events immediately",
			"Discover the unstated decision criteria beyond price",
			"Present the buyout as a bespoke production, not a package",
			"Move toward a contract review with the estate director",
		},
		Criteria: map[string]Criterion{
			"rapport": {
				Description: "Projects calm competence under exacting questions",
				Weight:      20,
			},
			"discovery": {
				Description: "Uncovers the comparison set and the real decision maker",
				Weight:      20,
			},
			"presentation": {
				Description: "Tailors the buyout narrative to exclusivity and control",
				Weight:      25,
			},
			"objection_handling": {
				Description:  "Neutralises capacity and contingency doubts with specifics",
				Weight:       20,
				DealBreaker:  true,
				MinimumScore: 70,
			},
			"closing": {
				Description: "Advances to the estate-director contract review",
				Weight:      15,
			},
		},
		StageFunnel: defaultFunnel,
		LeadSheet:   "estate-buyout-weekend-leadsheet.pdf",
	},
}
