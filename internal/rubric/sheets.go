package rubric

var standardScale = []ScaleLevel{
	{Value: 1, Label: "Poor", Description: "Misses the fundamentals; would likely lose the sale"},
	{Value: 2, Label: "Below expectations", Description: "Significant gaps in technique or tone"},
	{Value: 3, Label: "Satisfactory", Description: "Competent handling with room to sharpen"},
	{Value: 4, Label: "Strong", Description: "Consistently good technique, minor rough edges"},
	{Value: 5, Label: "Excellent", Description: "Textbook handling a peer could learn from"},
}

// Sheets is the static rubric catalog, one sheet per scenario.
var Sheets = []Rubric{
	{
		ScenarioID:   "budget-conscious-couple",
		Title:        "Budget-Conscious Couple Review",
		Description:  "Score the trainee's handling of a warm but cost-anxious couple.",
		ScoringScale: standardScale,
		Criteria: []Criterion{
			{
				Name:        "Warmth and rapport",
				Description: "Did the trainee meet the couple's excitement before selling?",
				Weight:      20,
				Levels: Levels{
					Poor:         "Jumped straight to pricing; couple felt processed",
					Satisfactory: "Pleasant but generic small talk",
					Excellent:    "Referenced the couple's own words and vision throughout",
				},
			},
			{
				Name:        "Budget discovery",
				Description: "Was the real number surfaced without defensiveness?",
				Weight:      30,
				Levels: Levels{
					Poor:         "Never asked, or asked so bluntly the couple closed up",
					Satisfactory: "Got a range after some awkwardness",
					Excellent:    "Framed budget as a planning tool and got the full picture",
				},
			},
			{
				Name:        "Value framing",
				Description: "Was cost pressure answered with value rather than discounts?",
				Weight:      30,
				Levels: Levels{
					Poor:         "Led with discounts or apologised for pricing",
					Satisfactory: "Explained inclusions when challenged",
					Excellent:    "Tied every inclusion back to the couple's stated priorities",
				},
			},
			{
				Name:        "Next step",
				Description: "Did the session end with a concrete commitment?",
				Weight:      20,
				Levels: Levels{
					Poor:         "Ended with 'think it over'",
					Satisfactory: "Suggested a follow-up without pinning it down",
					Excellent:    "Booked a tasting or date hold before the couple left",
				},
			},
		},
	},
	{
		ScenarioID:   "planner-comparison-shopper",
		Title:        "Professional Planner Review",
		Description:  "Score the trainee's handling of an experienced, time-pressed planner.",
		ScoringScale: standardScale,
		Criteria: []Criterion{
			{
				Name:        "Efficiency",
				Description: "Were answers fast, specific and free of fluff?",
				Weight:      35,
				Levels: Levels{
					Poor:         "Scenic monologues; planner had to repeat questions",
					Satisfactory: "Mostly direct with occasional padding",
					Excellent:    "Every answer concrete; availability confirmed first",
				},
			},
			{
				Name:        "Channel thinking",
				Description: "Was the planner treated as a repeat referral source?",
				Weight:      30,
				Levels: Levels{
					Poor:         "Treated as a one-off gatekeeper",
					Satisfactory: "Polite professional courtesy",
					Excellent:    "Explicitly built the long-term working relationship",
				},
			},
			{
				Name:        "Logistics command",
				Description: "Were vendor, load-in and timeline questions answered with specifics?",
				Weight:      35,
				Levels: Levels{
					Poor:         "Vague or deferred answers",
					Satisfactory: "Correct but had to check repeatedly",
					Excellent:    "Fluent on policy, exceptions and precedent",
				},
			},
		},
	},
	{
		ScenarioID:   "estate-buyout-weekend",
		Title:        "Estate Buyout Review",
		Description:  "Score the trainee's handling of a demanding luxury buyout inquiry.",
		ScoringScale: standardScale,
		Criteria: []Criterion{
			{
				Name:        "Credibility",
				Description: "Did the trainee establish large-event competence early?",
				Weight:      25,
				Levels: Levels{
					Poor:         "Sounded unsure whether the estate could host 200 guests",
					Satisfactory: "Asserted capability without evidence",
					Excellent:    "Cited comparable past productions unprompted",
				},
			},
			{
				Name:        "Deep discovery",
				Description: "Were the unstated criteria beyond price uncovered?",
				Weight:      25,
				Levels: Levels{
					Poor:         "Took the inquiry at face value",
					Satisfactory: "Found one or two underlying drivers",
					Excellent:    "Mapped the comparison set and the real decision maker",
				},
			},
			{
				Name:        "Bespoke framing",
				Description: "Was the buyout presented as a production, not a package?",
				Weight:      25,
				Levels: Levels{
					Poor:         "Quoted standard packages with multipliers",
					Satisfactory: "Customised the standard offering",
					Excellent:    "Built the narrative around exclusivity and control",
				},
			},
			{
				Name:        "Advance",
				Description: "Did the session move toward the estate-director review?",
				Weight:      25,
				Levels: Levels{
					Poor:         "No forward motion",
					Satisfactory: "Loose agreement to continue talking",
					Excellent:    "Contract review scheduled with the decision maker",
				},
			},
		},
	},
}
