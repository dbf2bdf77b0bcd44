package combat

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// Policy collects the table rules a combat runs under
type Policy struct {
	// StableOccupiesTurn gives unconscious but stable creatures an empty turn
	StableOccupiesTurn bool
	// RerollInitiativeEachRound rerolls and resorts at every round boundary
	RerollInitiativeEachRound bool
	ConfirmCriticals          bool
	CritPolicy                rules.CritPolicy
	OpposedTie                rules.TiePolicy
	// DeathThreshold below zero is an HP value; zero or above means -Con
	DeathThreshold int
}

// DefaultPolicy is fixed initiative, confirmed x2 criticals and death at -10
func DefaultPolicy() Policy {
	return Policy{
		ConfirmCriticals: true,
		CritPolicy:       rules.CritMultiply,
		OpposedTie:       rules.TieInitiator,
		DeathThreshold:   -10,
	}
}

// Validate checks enum fields
func (p Policy) Validate() error {
	vb := rerrors.NewValidationBuilder()
	vb.Enum("crit_policy", string(p.CritPolicy), string(rules.CritMultiply), string(rules.CritDoubleDice))
	vb.Enum("opposed_tie", string(p.OpposedTie), string(rules.TieInitiator), string(rules.TieDefender), string(rules.TieHigherModifier))
	return vb.Build()
}
