package content

import "fmt"

// fallbackPages is the static copy baked into the binary, keyed by
// contentType then contentID.
var fallbackPages = map[string]map[string]Page{
	"page": {
		"faq": {
			Title: "Frequently Asked Questions",
			Content: "<h2>Frequently Asked Questions</h2>" +
				"<p><strong>How many guests can the estate host?</strong> Up to 220 seated on the hilltop lawn, 160 in the barrel hall.</p>" +
				"<p><strong>Is there a rain plan?</strong> Yes — every ceremony holds the barrel hall in reserve at no charge.</p>" +
				"<p><strong>Can we bring our own wine?</strong> Calluna wines are poured exclusively, and every package includes a private tasting to choose them.</p>" +
				"<p><strong>When can vendors load in?</strong> From 9am on the event day; multi-day buyouts arrange earlier access.</p>",
		},
		"clubhouse": {
			Title: "The Clubhouse",
			Content: "<h2>The Clubhouse</h2>" +
				"<p>Our 1920s stone clubhouse anchors the estate: a reception hall for 160, a mezzanine lounge, " +
				"and the original tasting cellar for late-night gatherings.</p>",
		},
		"accommodations": {
			Title: "Accommodations",
			Content: "<h2>Accommodations</h2>" +
				"<p>Twelve suites across the vineyard cottages sleep up to 30 guests. " +
				"Full-estate buyouts include every suite plus the winemaker's residence.</p>",
		},
	},
	"guide": {
		"sales-process": {
			Title: "The Calluna Sales Process",
			Content: "<h2>The Calluna Sales Process</h2>" +
				"<p>Every tour follows the same arc: welcome and rapport, discovery of the couple's vision and budget, " +
				"a tailored walk of the grounds, honest handling of concerns, and a concrete next step before goodbye.</p>",
		},
		"objection-playbook": {
			Title: "Objection Playbook",
			Content: "<h2>Objection Playbook</h2>" +
				"<p>Price objections are value conversations. Date conflicts are flexibility conversations. " +
				"Never discount before the couple has heard what the package includes.</p>",
		},
	},
}

// Fallback returns the static page, or ErrNotFound.
func Fallback(contentType, contentID string) (Page, error) {
	if byID, ok := fallbackPages[contentType]; ok {
		if p, ok := byID[contentID]; ok {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%s/%s: %w", contentType, contentID, ErrNotFound)
}
