package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

func TestAbilityModifier(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{score: 1, want: -5},
		{score: 3, want: -4},
		{score: 7, want: -2},
		{score: 8, want: -1},
		{score: 9, want: -1},
		{score: 10, want: 0},
		{score: 11, want: 0},
		{score: 12, want: 1},
		{score: 19, want: 4},
		{score: 20, want: 5},
		{score: 0, want: -5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.AbilityModifier(tt.score), "score %d", tt.score)
	}
}

func TestSizeModifiers(t *testing.T) {
	assert.Equal(t, 8, rules.SizeModifier(rules.SizeFine))
	assert.Equal(t, -8, rules.ManeuverSizeModifier(rules.SizeFine))
	assert.Equal(t, -1, rules.SizeModifier(rules.SizeLarge))
	assert.Equal(t, 1, rules.ManeuverSizeModifier(rules.SizeLarge))
	assert.Equal(t, rules.SizeHuge, rules.ParseSize(" Huge "))
	assert.Equal(t, rules.SizeMedium, rules.ParseSize("enormous"))
}

func TestSpellDC(t *testing.T) {
	assert.Equal(t, 16, rules.SpellDC(3, 16, 0))
	assert.Equal(t, 10, rules.SpellDC(0, 9, 1))
	assert.Equal(t, 14, rules.SpellDC(1, 16, 0))
	assert.Equal(t, 17, rules.SpellDC(3, 18, 0))
	assert.Equal(t, 13, rules.SpellDC(0, 8, 4))
}

func TestSnapshotClone(t *testing.T) {
	snap := rules.Snapshot{Abilities: map[rules.Ability]int{rules.Strength: 14}}
	clone := snap.Clone()
	clone.Abilities[rules.Strength] = 8

	assert.Equal(t, 14, snap.Score(rules.Strength))
	assert.Equal(t, 10, snap.Score(rules.Wisdom))
}
