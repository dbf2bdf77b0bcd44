package rules

import (
	"fmt"
	"strings"
)

// CheckKind tags what a roll is for
type CheckKind string

const (
	KindAbility       CheckKind = "ability"
	KindSkill         CheckKind = "skill"
	KindSave          CheckKind = "save"
	KindAttack        CheckKind = "attack"
	KindInitiative    CheckKind = "initiative"
	KindManeuver      CheckKind = "maneuver"
	KindDamage        CheckKind = "damage"
	KindConcentration CheckKind = "concentration"
	KindStabilize     CheckKind = "stabilize"
	// KindEffect marks outcomes that involve no roll against a target
	KindEffect CheckKind = "effect"
)

// AttackKind distinguishes melee from ranged attacks
type AttackKind string

const (
	AttackMelee  AttackKind = "melee"
	AttackRanged AttackKind = "ranged"
)

// ModifierKind classifies a line in a Breakdown
type ModifierKind string

const (
	ModAbility     ModifierKind = "ability"
	ModBase        ModifierKind = "base"
	ModProficiency ModifierKind = "proficiency"
	ModClassSkill  ModifierKind = "class_skill"
	ModSize        ModifierKind = "size"
	ModCondition   ModifierKind = "condition"
	ModSituational ModifierKind = "situational"
)

// Modifier is one itemized contribution to a total
type Modifier struct {
	Source string       `json:"source" yaml:"source"`
	Kind   ModifierKind `json:"kind" yaml:"kind"`
	Value  int          `json:"value" yaml:"value"`
}

// Situational builds a caller supplied modifier such as flanking or cover
func Situational(source string, value int) Modifier {
	return Modifier{Source: source, Kind: ModSituational, Value: value}
}

// Context describes the check a Breakdown is being built for
type Context struct {
	Kind CheckKind
	// Ability overrides the default ability for the kind
	Ability Ability
	// Key names the skill, save or weapon
	Key    string
	Attack AttackKind
	// Situational modifiers are passed through unchanged
	Situational []Modifier
}

// Breakdown is an itemized modifier list. It is never collapsed to a bare
// sum so callers can show how a total was reached.
type Breakdown struct {
	Items []Modifier `json:"items"`
}

// Total sums every item
func (b Breakdown) Total() int {
	total := 0
	for _, m := range b.Items {
		total += m.Value
	}
	return total
}

// With returns a copy with extra items appended
func (b Breakdown) With(items ...Modifier) Breakdown {
	out := make([]Modifier, 0, len(b.Items)+len(items))
	out = append(out, b.Items...)
	out = append(out, items...)
	return Breakdown{Items: out}
}

// ByKind returns the items of one kind
func (b Breakdown) ByKind(kind ModifierKind) []Modifier {
	var out []Modifier
	for _, m := range b.Items {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Scale multiplies every item, used for critical multipliers
func (b Breakdown) Scale(factor int) Breakdown {
	out := make([]Modifier, len(b.Items))
	for i, m := range b.Items {
		m.Value *= factor
		out[i] = m
	}
	return Breakdown{Items: out}
}

func (b Breakdown) String() string {
	if len(b.Items) == 0 {
		return "+0"
	}
	parts := make([]string, len(b.Items))
	for i, m := range b.Items {
		parts[i] = fmt.Sprintf("%+d (%s)", m.Value, m.Source)
	}
	return strings.Join(parts, " ")
}
