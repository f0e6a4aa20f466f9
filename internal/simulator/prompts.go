package simulator

import (
	"fmt"
	"strings"

	"github.com/calluna-vineyards/trellis/internal/scenario"
)

const roleplaySystemPrompt = `You are %s, a prospective wedding customer talking to a salesperson at
Calluna Vineyards, a vineyard wedding venue.

Situation: %s

Your personality: %s.
What worries you: %s.

Stay fully in character. You are the customer, never the salesperson. Ask the
questions a real customer in this situation would ask, push back when the
salesperson is vague or pushy, and warm up only when they earn it. Keep
replies conversational, one to four sentences.`

func buildRoleplayPrompt(scn *scenario.Scenario) string {
	return fmt.Sprintf(roleplaySystemPrompt,
		scn.Persona.Name,
		scn.Context,
		strings.Join(scn.Persona.Traits, ", "),
		strings.Join(scn.Persona.Concerns, ", "),
	)
}

const openingUserPrompt = `Begin the roleplay. Greet the salesperson the way %s would when starting
this conversation, in one to three sentences.`

func buildOpeningPrompt(scn *scenario.Scenario) string {
	return fmt.Sprintf(openingUserPrompt, scn.Persona.Name)
}
