package rules

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
)

// TiePolicy decides who wins an opposed check when totals are equal
type TiePolicy string

const (
	// TieInitiator awards ties to the side that started the contest
	TieInitiator TiePolicy = "initiator"
	// TieDefender awards ties to the resisting side
	TieDefender TiePolicy = "defender"
	// TieHigherModifier awards ties to the larger modifier total, then the initiator
	TieHigherModifier TiePolicy = "higher_modifier"
)

// Contestant is one side of an opposed check
type Contestant struct {
	ID        string
	Roll      *dice.RollResult
	Modifiers Breakdown
}

func (c Contestant) total() int {
	t := c.Modifiers.Total()
	if c.Roll != nil {
		t += c.Roll.Total
	}
	return t
}

// ResolveOpposed rolls off initiator against defender. The Outcome is from
// the initiator's side: success means the initiator won. The tie rule is
// explicit and recorded on the outcome.
func ResolveOpposed(kind CheckKind, initiator, defender Contestant, tie TiePolicy) *Outcome {
	if tie == "" {
		tie = TieInitiator
	}

	iTotal, dTotal := initiator.total(), defender.total()
	won := iTotal > dTotal
	isTie := iTotal == dTotal
	if isTie {
		switch tie {
		case TieDefender:
			won = false
		case TieHigherModifier:
			won = initiator.Modifiers.Total() >= defender.Modifiers.Total()
		default:
			won = true
		}
	}

	result := ResultFailure
	if won {
		result = ResultSuccess
	}

	out := &Outcome{
		Kind:      kind,
		Result:    result,
		Degree:    degree(iTotal, dTotal),
		Actor:     initiator.ID,
		Subject:   defender.ID,
		Roll:      initiator.Roll,
		Modifiers: initiator.Modifiers,
		Target:    dTotal,
		Total:     iTotal,
		Opposed: &Opposition{
			DefenderID: defender.ID,
			Roll:       defender.Roll,
			Modifiers:  defender.Modifiers,
			Total:      dTotal,
			Tie:        isTie,
			TiePolicy:  tie,
		},
	}
	if initiator.Roll != nil {
		out.Natural = initiator.Roll.Natural
	}
	return out
}
