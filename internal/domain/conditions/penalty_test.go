package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

func snap() rules.Snapshot {
	return rules.Snapshot{
		ID: "rogue",
		Abilities: map[rules.Ability]int{
			rules.Strength:  12,
			rules.Dexterity: 17,
		},
		AC: 16,
		HP: 9,
	}
}

func effectOf(t *testing.T, name string) rules.Effect {
	t.Helper()
	return DefaultCatalog().MustNew(name, nil).Effect
}

func TestPenalty_Modifiers(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		ctx       rules.Context
		expected  int
	}{
		{"shaken attack", "shaken", rules.Context{Kind: rules.KindAttack}, -2},
		{"shaken will save", "shaken", rules.Context{Kind: rules.KindSave, Key: "will"}, -2},
		{"shaken damage", "shaken", rules.Context{Kind: rules.KindDamage}, 0},
		{"sickened damage", "sickened", rules.Context{Kind: rules.KindDamage}, -2},
		{"prone melee", "prone", rules.Context{Kind: rules.KindAttack, Attack: rules.AttackMelee}, -4},
		{"prone ranged", "prone", rules.Context{Kind: rules.KindAttack, Attack: rules.AttackRanged}, 0},
		{"deafened initiative", "deafened", rules.Context{Kind: rules.KindInitiative}, -4},
		{"dazzled perception", "dazzled", rules.Context{Kind: rules.KindSkill, Key: "perception"}, -1},
		{"dazzled climb", "dazzled", rules.Context{Kind: rules.KindSkill, Key: "climb"}, 0},
		{"frightened ability check", "frightened", rules.Context{Kind: rules.KindAbility}, -2},
		{"grappled maneuver", "grappled", rules.Context{Kind: rules.KindManeuver}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := effectOf(t, tt.condition).Modifiers(tt.ctx)
			got := rules.Breakdown{Items: mods}.Total()
			assert.Equal(t, tt.expected, got)
			for _, m := range mods {
				assert.Equal(t, rules.ModCondition, m.Kind)
			}
		})
	}
}

func TestPenalty_DefenseModifiers(t *testing.T) {
	prone := effectOf(t, "prone")
	assert.Equal(t, -4, rules.Breakdown{Items: prone.DefenseModifiers(rules.AttackMelee)}.Total())
	assert.Equal(t, 4, rules.Breakdown{Items: prone.DefenseModifiers(rules.AttackRanged)}.Total())

	stunned := effectOf(t, "stunned")
	assert.Equal(t, -2, rules.Breakdown{Items: stunned.DefenseModifiers(rules.AttackMelee)}.Total())
	assert.True(t, stunned.Flags().Incapacitated())
}

func TestPenalty_ModifySnapshotIsPure(t *testing.T) {
	in := snap()
	fatigued := effectOf(t, "fatigued")

	first := fatigued.ModifySnapshot(in)
	second := fatigued.ModifySnapshot(in)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, first.Score(rules.Strength))
	assert.Equal(t, 15, first.Score(rules.Dexterity))
	assert.Equal(t, 12, in.Score(rules.Strength), "input snapshot must not change")
}

func TestPenalty_SetAbilities(t *testing.T) {
	out := effectOf(t, "paralyzed").ModifySnapshot(snap())
	assert.Equal(t, 0, out.Score(rules.Strength))
	assert.Equal(t, 0, out.Score(rules.Dexterity))
	assert.Equal(t, -5, out.Modifier(rules.Dexterity))

	out = effectOf(t, "exhausted").ModifySnapshot(rules.Snapshot{Abilities: map[rules.Ability]int{rules.Strength: 4}})
	assert.Equal(t, 0, out.Score(rules.Strength), "scores floor at zero")
}

func TestPenalty_Reduction(t *testing.T) {
	stoneskin := effectOf(t, "stoneskin")
	in := rules.Outcome{
		Subject: "rogue",
		Deltas: []rules.Delta{
			{Target: "rogue", Kind: rules.DeltaHP, Amount: -14},
			{Target: "fighter", Kind: rules.DeltaHP, Amount: -14},
			{Target: "rogue", Kind: rules.DeltaApplyCondition, Condition: "prone"},
		},
	}

	out := stoneskin.AdjustOutcome(in)
	assert.Equal(t, -4, out.Deltas[0].Amount)
	assert.Equal(t, -14, out.Deltas[1].Amount, "only the holder is protected")
	assert.Equal(t, -14, in.Deltas[0].Amount, "input outcome must not change")

	small := stoneskin.AdjustOutcome(rules.Outcome{
		Subject: "rogue",
		Deltas:  []rules.Delta{{Target: "rogue", Kind: rules.DeltaHP, Amount: -6}},
	})
	assert.Equal(t, 0, small.Deltas[0].Amount)
}

func TestDeathThreshold(t *testing.T) {
	holder := rules.Snapshot{Abilities: map[rules.Ability]int{rules.Constitution: 14}}
	assert.Equal(t, -10, DeathThreshold(-10, holder))
	assert.Equal(t, -14, DeathThreshold(0, holder))
	assert.Equal(t, -10, DeathThreshold(0, rules.Snapshot{}))
}
