package conditions

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

// Penalty is the data driven effect behind most standard conditions. Every
// field is optional; the zero Penalty does nothing.
type Penalty struct {
	Label string `yaml:"-"`

	// Abilities adjusts scores; SetAbilities overrides them (helpless Dex 0)
	Abilities    map[rules.Ability]int `yaml:"abilities"`
	SetAbilities map[rules.Ability]int `yaml:"set_abilities"`

	Attack       int `yaml:"attack"`
	MeleeAttack  int `yaml:"melee_attack"`
	RangedAttack int `yaml:"ranged_attack"`
	Damage       int `yaml:"damage"`

	Saves int                `yaml:"saves"`
	Save  map[rules.Save]int `yaml:"save"`

	Skills int            `yaml:"skills"`
	Skill  map[string]int `yaml:"skill"`

	AbilityChecks int `yaml:"ability_checks"`
	Initiative    int `yaml:"initiative"`

	AC       int `yaml:"ac"`
	ACMelee  int `yaml:"ac_melee"`
	ACRanged int `yaml:"ac_ranged"`

	// Reduction is subtracted from each instance of damage the holder takes
	Reduction int `yaml:"reduction"`

	CannotAct    bool `yaml:"cannot_act"`
	Helpless     bool `yaml:"helpless"`
	LosesDexToAC bool `yaml:"loses_dex_to_ac"`
	FlatFooted   bool `yaml:"flat_footed"`
}

var _ rules.Effect = (*Penalty)(nil)

// Name implements rules.Effect
func (p *Penalty) Name() string {
	return p.Label
}

// ModifySnapshot implements rules.Effect
func (p *Penalty) ModifySnapshot(s rules.Snapshot) rules.Snapshot {
	if len(p.Abilities) == 0 && len(p.SetAbilities) == 0 {
		return s
	}
	out := s.Clone()
	for _, a := range rules.Abilities {
		if v, ok := p.SetAbilities[a]; ok {
			out = out.WithScore(a, v)
			continue
		}
		if d, ok := p.Abilities[a]; ok && d != 0 {
			score := out.Score(a) + d
			if score < 0 {
				score = 0
			}
			out = out.WithScore(a, score)
		}
	}
	return out
}

// AdjustOutcome implements rules.Effect
func (p *Penalty) AdjustOutcome(o rules.Outcome) rules.Outcome {
	if p.Reduction <= 0 || len(o.Deltas) == 0 {
		return o
	}
	deltas := make([]rules.Delta, len(o.Deltas))
	copy(deltas, o.Deltas)
	for i, d := range deltas {
		if d.Kind != rules.DeltaHP || d.Target != o.Subject || d.Amount >= 0 {
			continue
		}
		amount := d.Amount + p.Reduction
		if amount > 0 {
			amount = 0
		}
		deltas[i].Amount = amount
	}
	o.Deltas = deltas
	return o
}

// Modifiers implements rules.Effect
func (p *Penalty) Modifiers(ctx rules.Context) []rules.Modifier {
	v := 0
	switch ctx.Kind {
	case rules.KindAttack, rules.KindManeuver:
		v = p.Attack
		switch ctx.Attack {
		case rules.AttackRanged:
			v += p.RangedAttack
		default:
			v += p.MeleeAttack
		}
	case rules.KindDamage:
		v = p.Damage
	case rules.KindSave:
		v = p.Saves + p.Save[rules.Save(ctx.Key)]
	case rules.KindSkill:
		v = p.Skills + p.Skill[ctx.Key]
	case rules.KindAbility:
		v = p.AbilityChecks
	case rules.KindInitiative:
		v = p.Initiative
	}
	return p.one(v)
}

// DefenseModifiers implements rules.Effect
func (p *Penalty) DefenseModifiers(attack rules.AttackKind) []rules.Modifier {
	v := p.AC
	switch attack {
	case rules.AttackMelee:
		v += p.ACMelee
	case rules.AttackRanged:
		v += p.ACRanged
	}
	return p.one(v)
}

// Flags implements rules.Effect
func (p *Penalty) Flags() rules.Flags {
	return rules.Flags{
		CannotAct:    p.CannotAct,
		Helpless:     p.Helpless,
		LosesDexToAC: p.LosesDexToAC,
		FlatFooted:   p.FlatFooted,
	}
}

func (p *Penalty) one(v int) []rules.Modifier {
	if v == 0 {
		return nil
	}
	return []rules.Modifier{{Source: p.Label, Kind: rules.ModCondition, Value: v}}
}
