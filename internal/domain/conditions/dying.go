package conditions

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// Ticker is implemented by effects that do something every round beyond
// counting down, such as a dying creature's stabilization check.
type Ticker interface {
	OnTick(holder rules.Snapshot, roller dice.Roller) (*rules.Outcome, error)
}

// Dying is the effect of a creature below 0 HP that has not stabilized.
// Each tick it rolls d20 + Con modifier + current HP against DC 10; a
// natural 20 always stabilizes and a failure costs 1 HP.
type Dying struct {
	Penalty
}

var (
	_ rules.Effect = (*Dying)(nil)
	_ Ticker       = (*Dying)(nil)
)

// OnTick implements Ticker. A holder at 0 HP or above makes no check.
func (d *Dying) OnTick(holder rules.Snapshot, roller dice.Roller) (*rules.Outcome, error) {
	if holder.HP >= 0 {
		return nil, nil
	}
	if roller == nil {
		return nil, rerrors.InvalidArgument("dying check needs a roller")
	}

	roll, err := roller.RollD20(0, dice.ModeNormal)
	if err != nil {
		return nil, rerrors.Wrap(err, "failed to roll stabilization check")
	}

	mods := rules.Breakdown{Items: []rules.Modifier{
		{Source: string(rules.Constitution), Kind: rules.ModAbility, Value: holder.Modifier(rules.Constitution)},
		{Source: "negative hit points", Kind: rules.ModBase, Value: holder.HP},
	}}

	out := rules.ResolveCheck(rules.KindStabilize, roll, mods, rules.StabilizeDC)
	out.Actor = holder.ID
	out.Subject = holder.ID
	if roll.IsNatural(20) {
		out.Result = rules.ResultSuccess
	}
	if !out.Succeeded() {
		out.Deltas = []rules.Delta{{Target: holder.ID, Kind: rules.DeltaHP, Amount: -1}}
	}
	return out, nil
}

// Stable is the effect of a creature that stopped dying but is still
// unconscious. It makes no further checks.
type Stable struct {
	Penalty
}

var _ rules.Effect = (*Stable)(nil)

// DeathThreshold returns the HP at or below which holder dies. A negative
// configured value is used as is; zero or positive means the negative of
// the Constitution score.
func DeathThreshold(configured int, holder rules.Snapshot) int {
	if configured < 0 {
		return configured
	}
	return -holder.Score(rules.Constitution)
}
