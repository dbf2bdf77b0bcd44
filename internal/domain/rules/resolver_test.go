package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

// fatigue is a minimal effect: -2 Str via the snapshot and -1 to attacks
type fatigue struct{}

func (fatigue) Name() string { return "fatigue" }
func (fatigue) ModifySnapshot(s rules.Snapshot) rules.Snapshot {
	return s.WithScore(rules.Strength, s.Score(rules.Strength)-2)
}
func (fatigue) AdjustOutcome(o rules.Outcome) rules.Outcome { return o }
func (fatigue) Modifiers(ctx rules.Context) []rules.Modifier {
	if ctx.Kind != rules.KindAttack {
		return nil
	}
	return []rules.Modifier{{Source: "fatigue", Kind: rules.ModCondition, Value: -1}}
}
func (fatigue) DefenseModifiers(rules.AttackKind) []rules.Modifier { return nil }
func (fatigue) Flags() rules.Flags                                { return rules.Flags{LosesDexToAC: true} }

// dexShift changes effective Dex, optionally taking the Dex bonus from AC
type dexShift struct {
	score    int
	losesDex bool
}

func (dexShift) Name() string { return "dex shift" }
func (d dexShift) ModifySnapshot(s rules.Snapshot) rules.Snapshot {
	return s.WithScore(rules.Dexterity, d.score)
}
func (dexShift) AdjustOutcome(o rules.Outcome) rules.Outcome        { return o }
func (dexShift) Modifiers(rules.Context) []rules.Modifier           { return nil }
func (dexShift) DefenseModifiers(rules.AttackKind) []rules.Modifier { return nil }
func (d dexShift) Flags() rules.Flags                               { return rules.Flags{LosesDexToAC: d.losesDex} }

func fighter() rules.Snapshot {
	return rules.Snapshot{
		ID:   "fighter",
		Name: "Valeros",
		Abilities: map[rules.Ability]int{
			rules.Strength:     16,
			rules.Dexterity:    14,
			rules.Constitution: 13,
			rules.Wisdom:       9,
		},
		AC:               18,
		HP:               12,
		MaxHP:            12,
		ProficiencyBonus: 2,
		Proficiencies: map[string]bool{
			rules.ProficiencyKey(rules.KindAttack, "melee"):  true,
			rules.ProficiencyKey(rules.KindSave, "fortitude"): true,
		},
		BaseAttackBonus: 1,
		Size:            rules.SizeSmall,
		Saves:           map[rules.Save]int{rules.Fortitude: 2},
		Skills:          map[string]int{"climb": 1},
		ClassSkills:     map[string]bool{"climb": true},
	}
}

func TestResolve_Itemized(t *testing.T) {
	r := rules.NewResolver(nil)

	bd := r.Resolve(fighter(), rules.Context{
		Kind:        rules.KindAttack,
		Attack:      rules.AttackMelee,
		Situational: []rules.Modifier{rules.Situational("flanking", 2)},
	})

	assert.Equal(t, []rules.Modifier{
		{Source: "str", Kind: rules.ModAbility, Value: 3},
		{Source: "base attack", Kind: rules.ModBase, Value: 1},
		{Source: "size", Kind: rules.ModSize, Value: 1},
		{Source: "proficiency", Kind: rules.ModProficiency, Value: 2},
		{Source: "flanking", Kind: rules.ModSituational, Value: 2},
	}, bd.Items)
	assert.Equal(t, 9, bd.Total())
}

func TestResolve_SaveAndSkill(t *testing.T) {
	r := rules.NewResolver(nil)

	fort := r.Resolve(fighter(), rules.Context{Kind: rules.KindSave, Key: string(rules.Fortitude)})
	assert.Equal(t, 1+2+2, fort.Total())

	will := r.Resolve(fighter(), rules.Context{Kind: rules.KindSave, Key: string(rules.Will)})
	assert.Equal(t, -1, will.Total())

	climb := r.Resolve(fighter(), rules.Context{Kind: rules.KindSkill, Key: "climb"})
	assert.Equal(t, 3+1+3, climb.Total())
	require.Len(t, climb.ByKind(rules.ModClassSkill), 1)
}

func TestResolve_ConditionEffects(t *testing.T) {
	r := rules.NewResolver(rules.EffectList{"fighter": {fatigue{}}})

	bd := r.Resolve(fighter(), rules.Context{Kind: rules.KindAttack, Attack: rules.AttackMelee})
	assert.Equal(t, 2, bd.Items[0].Value, "str 14 after fatigue")
	assert.Len(t, bd.ByKind(rules.ModCondition), 1)
	assert.Equal(t, 2+1+1+2-1, bd.Total())

	def := r.Defense(fighter(), rules.AttackMelee)
	assert.Equal(t, 18-2, def.Total())

	assert.True(t, r.Flags("fighter").LosesDexToAC)
	assert.False(t, r.Flags("someone-else").LosesDexToAC)
}

func TestDefense_UsesEffectiveDex(t *testing.T) {
	tests := []struct {
		name   string
		effect dexShift
		want   int
	}{
		{"lowered dex", dexShift{score: 10}, 18 - 2},
		{"raised dex", dexShift{score: 18}, 18 + 2},
		{"lowered dex without bonus", dexShift{score: 12, losesDex: true}, 18 - 2},
		{"dex zero and helpless", dexShift{score: 0, losesDex: true}, 18 - 2 - 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rules.NewResolver(rules.EffectList{"fighter": {tt.effect}})
			assert.Equal(t, tt.want, r.Defense(fighter(), rules.AttackMelee).Total())
		})
	}
}

func TestResolve_IsPure(t *testing.T) {
	r := rules.NewResolver(rules.EffectList{"fighter": {fatigue{}}})
	snap := fighter()

	a := r.Resolve(snap, rules.Context{Kind: rules.KindAttack})
	b := r.Resolve(snap, rules.Context{Kind: rules.KindAttack})

	assert.Equal(t, a, b)
	assert.Equal(t, 16, snap.Score(rules.Strength))
}

func TestCombatManeuver(t *testing.T) {
	r := rules.NewResolver(nil)

	cmb := r.CombatManeuverBonus(fighter())
	assert.Equal(t, 3+1-1, cmb.Total())

	cmd := r.CombatManeuverDefense(fighter())
	assert.Equal(t, 10+3+2+1-1, cmd.Total())
}
