package rules

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
)

// ResolveCheck compares roll plus modifiers against dc. Meeting the DC
// succeeds. Natural 20 and natural 1 carry no special meaning here.
func ResolveCheck(kind CheckKind, roll *dice.RollResult, mods Breakdown, dc int) *Outcome {
	total := mods.Total()
	natural := 0
	if roll != nil {
		total += roll.Total
		natural = roll.Natural
	}

	result := ResultFailure
	if total >= dc {
		result = ResultSuccess
	}

	return &Outcome{
		Kind:      kind,
		Result:    result,
		Degree:    degree(total, dc),
		Roll:      roll,
		Modifiers: mods,
		Target:    dc,
		Total:     total,
		Natural:   natural,
	}
}

// ResolveManeuver resolves a combat maneuver (CMB against CMD). Unlike
// plain checks a natural 20 always succeeds and a natural 1 always fails.
func ResolveManeuver(roll *dice.RollResult, cmb, cmd Breakdown) *Outcome {
	out := ResolveCheck(KindManeuver, roll, cmb, cmd.Total())
	out.Defense = cmd
	switch {
	case roll.IsNatural(20):
		out.Result = ResultSuccess
	case roll.IsNatural(1):
		out.Result = ResultFailure
	}
	return out
}

// SpellDC is 10 + spell level + casting ability modifier + misc
func SpellDC(level, abilityScore, misc int) int {
	return 10 + level + AbilityModifier(abilityScore) + misc
}

// StabilizeDC is the DC of the check a dying creature makes each round
const StabilizeDC = 10
