package goldstd

import "github.com/calluna-vineyards/trellis/internal/stage"

var standards = map[string]Tree{
	"budget-conscious-couple": {
		stage.Initial: {
			KeyElements:        []string{"congratulations", "vision", "guest"},
			ProblematicPhrases: []string{"cheapest", "discount"},
			Tone:               "friendly",
		},
		stage.Discovery: {
			KeyElements:        []string{"budget", "priorities", "date"},
			ProblematicPhrases: []string{"minimum spend", "policy"},
			Tone:               "empathetic",
		},
		stage.Presentation: {
			KeyElements:        []string{"package", "included", "value"},
			ProblematicPhrases: []string{"upgrade later", "fine print"},
			Tone:               "professional",
		},
		stage.Objection: {
			KeyElements:        []string{"understand", "value", "options"},
			ProblematicPhrases: []string{"take it or leave it", "non-negotiable"},
			Tone:               "empathetic",
		},
		stage.Closing: {
			KeyElements:        []string{"next step", "tasting", "hold the date"},
			ProblematicPhrases: []string{"pressure", "last chance"},
			Tone:               "confident",
		},
		stage.General: {
			KeyElements:        []string{"budget", "value"},
			ProblematicPhrases: []string{"guarantee"},
			Tone:               "friendly",
		},
	},
	"planner-comparison-shopper": {
		stage.Initial: {
			KeyElements:        []string{"june", "availability", "client"},
			ProblematicPhrases: []string{"let me check later"},
			Tone:               "professional",
		},
		stage.Discovery: {
			KeyElements:        []string{"guest count", "vendors", "timeline"},
			ProblematicPhrases: []string{"we don't usually"},
			Tone:               "professional",
		},
		stage.Objection: {
			KeyElements:        []string{"flexibility", "preferred vendor", "load-in"},
			ProblematicPhrases: []string{"exclusive caterer only", "no exceptions"},
			Tone:               "confident",
		},
		stage.Closing: {
			KeyElements:        []string{"site visit", "client", "calendar"},
			ProblematicPhrases: []string{"limited time offer"},
			Tone:               "professional",
		},
		stage.General: {
			KeyElements:        []string{"availability", "logistics"},
			ProblematicPhrases: []string{"guarantee"},
			Tone:               "professional",
		},
	},
	"estate-buyout-weekend": {
		stage.Initial: {
			KeyElements:        []string{"exclusive", "estate", "celebration"},
			ProblematicPhrases: []string{"package", "standard"},
			Tone:               "respectful",
		},
		stage.Discovery: {
			KeyElements:        []string{"guests", "suites", "expectations"},
			ProblematicPhrases: []string{"normally", "most couples"},
			Tone:               "professional",
		},
		stage.Presentation: {
			KeyElements:        []string{"bespoke", "dedicated", "itinerary"},
			ProblematicPhrases: []string{"add-on", "extra charge"},
			Tone:               "confident",
		},
		stage.Objection: {
			KeyElements:        []string{"capacity", "contingency", "precedent"},
			ProblematicPhrases: []string{"probably", "should be fine"},
			Tone:               "confident",
		},
		stage.Closing: {
			KeyElements:        []string{"estate director", "contract", "review"},
			ProblematicPhrases: []string{"deposit today"},
			Tone:               "respectful",
		},
		stage.General: {
			KeyElements:        []string{"exclusive", "bespoke"},
			ProblematicPhrases: []string{"guarantee"},
			Tone:               "professional",
		},
	},
}
