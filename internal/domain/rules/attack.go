package rules

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// CritPolicy controls how critical damage is computed
type CritPolicy string

const (
	// CritMultiply rolls the damage Multiplier times and multiplies static bonuses
	CritMultiply CritPolicy = "multiply"
	// CritDoubleDice doubles the dice count and adds bonuses once
	CritDoubleDice CritPolicy = "double_dice"
)

// AttackInput gathers everything an attack resolution needs
type AttackInput struct {
	AttackerID string
	TargetID   string

	Roll      *dice.RollResult
	Modifiers Breakdown
	Defense   Breakdown

	// ThreatRange is the lowest natural roll that threatens; 0 means 20
	ThreatRange int
	// ConfirmCriticals makes a threat roll again against the same AC
	ConfirmCriticals bool

	Damage          *dice.Expression
	DamageModifiers Breakdown
	CritPolicy      CritPolicy
	// Multiplier applies under CritMultiply; 0 means 2
	Multiplier int

	// Roller supplies confirmation and damage dice
	Roller dice.Roller
}

func (in *AttackInput) validate() error {
	vb := rerrors.NewValidationBuilder()
	if in.Roll == nil {
		vb.RequiredField("roll")
	}
	if in.Roller == nil && (in.ConfirmCriticals || in.Damage != nil) {
		vb.RequiredField("roller")
	}
	if in.ThreatRange != 0 {
		vb.Range("threat_range", in.ThreatRange, 2, 20)
	}
	if in.Multiplier != 0 {
		vb.Min("multiplier", in.Multiplier, 2)
	}
	if in.CritPolicy != "" {
		vb.Enum("crit_policy", string(in.CritPolicy), string(CritMultiply), string(CritDoubleDice))
	}
	return vb.Build()
}

// ResolveAttack resolves one attack roll against a defense breakdown.
//
// A natural 1 always misses. A natural 20 always hits and threatens. Any other
// natural in the threat range threatens only when the attack hits. A threat
// that fails confirmation is still a normal hit. Hits deal at least 1 damage.
func ResolveAttack(in AttackInput) (*Outcome, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	threatRange := in.ThreatRange
	if threatRange == 0 {
		threatRange = 20
	}

	ac := in.Defense.Total()
	total := in.Roll.Total + in.Modifiers.Total()
	natural := in.Roll.Natural

	out := &Outcome{
		Kind:      KindAttack,
		Actor:     in.AttackerID,
		Subject:   in.TargetID,
		Degree:    degree(total, ac),
		Roll:      in.Roll,
		Modifiers: in.Modifiers,
		Defense:   in.Defense,
		Target:    ac,
		Total:     total,
		Natural:   natural,
	}

	if in.Roll.IsNatural(1) {
		out.Result = ResultCriticalFail
		return out, nil
	}

	hit := in.Roll.IsNatural(20) || total >= ac
	if !hit {
		out.Result = ResultMiss
		return out, nil
	}

	out.Result = ResultHit
	out.Threat = natural != 0 && natural >= threatRange

	confirmed := false
	if out.Threat {
		confirmed = true
		if in.ConfirmCriticals {
			confirm, err := in.Roller.RollD20(in.Roll.Modifier, dice.ModeNormal)
			if err != nil {
				return nil, rerrors.Wrap(err, "failed to roll critical confirmation")
			}
			out.Confirmation = confirm
			confirmTotal := confirm.Total + in.Modifiers.Total()
			confirmed = !confirm.IsNatural(1) && (confirm.IsNatural(20) || confirmTotal >= ac)
		}
	}
	if confirmed {
		out.Result = ResultCriticalHit
	}

	if in.Damage != nil {
		dmg, err := rollDamage(in, confirmed)
		if err != nil {
			return nil, err
		}
		out.Damage = dmg
		out.Deltas = append(out.Deltas, Delta{Target: in.TargetID, Kind: DeltaHP, Amount: -dmg.Total})
	}

	return out, nil
}

func rollDamage(in AttackInput, critical bool) (*DamageRoll, error) {
	dmg := &DamageRoll{Multiplier: 1, Modifiers: in.DamageModifiers}

	switch {
	case critical && in.CritPolicy == CritDoubleDice:
		res, err := in.Roller.RollExpression(in.Damage.WithCount(in.Damage.Count * 2))
		if err != nil {
			return nil, rerrors.Wrap(err, "failed to roll critical damage")
		}
		dmg.Rolls = []*dice.RollResult{res}
		dmg.Multiplier = 2
		dmg.Total = res.Total + in.DamageModifiers.Total()

	default:
		times := 1
		if critical {
			times = in.Multiplier
			if times == 0 {
				times = 2
			}
			dmg.Modifiers = in.DamageModifiers.Scale(times)
		}
		dmg.Multiplier = times
		for i := 0; i < times; i++ {
			res, err := in.Roller.RollExpression(in.Damage)
			if err != nil {
				return nil, rerrors.Wrap(err, "failed to roll damage")
			}
			dmg.Rolls = append(dmg.Rolls, res)
			dmg.Total += res.Total
		}
		dmg.Total += dmg.Modifiers.Total()
	}

	if dmg.Total < 1 {
		dmg.Total = 1
		dmg.Minimum = true
	}
	return dmg, nil
}
