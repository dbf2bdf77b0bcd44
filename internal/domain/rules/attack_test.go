package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	mockdice "github.com/KirkDiggler/rpg-rules-engine/internal/dice/mock"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

func TestResolveAttack_NaturalRolls(t *testing.T) {
	for _, mod := range []int{-50, -5, 0, 5, 50} {
		for _, ac := range []int{5, 15, 30, 60} {
			roller, _ := mockdice.NewManualRoller(1)

			out, err := rules.ResolveAttack(rules.AttackInput{
				Roll:             d20(20),
				Modifiers:        mods(mod),
				Defense:          mods(ac),
				ConfirmCriticals: true,
				Roller:           roller,
			})
			require.NoError(t, err)
			assert.True(t, out.Succeeded(), "natural 20 hits with mod %d vs AC %d", mod, ac)
			assert.True(t, out.Threat)

			out, err = rules.ResolveAttack(rules.AttackInput{
				Roll:      d20(1),
				Modifiers: mods(mod),
				Defense:   mods(ac),
			})
			require.NoError(t, err)
			assert.False(t, out.Succeeded(), "natural 1 misses with mod %d vs AC %d", mod, ac)
			assert.Equal(t, rules.ResultCriticalFail, out.Result)
		}
	}
}

func TestResolveAttack_Confirmation(t *testing.T) {
	tests := []struct {
		name        string
		natural     int
		threatRange int
		confirmOn   bool
		rolls       []int
		wantResult  rules.Result
		wantDamage  int
	}{
		{
			name:       "confirmed crit multiplies",
			natural:    20,
			confirmOn:  true,
			rolls:      []int{12, 6, 3},
			wantResult: rules.ResultCriticalHit,
			wantDamage: 6 + 3 + 2*2,
		},
		{
			name:       "failed confirmation is a normal hit",
			natural:    20,
			confirmOn:  true,
			rolls:      []int{2, 5},
			wantResult: rules.ResultHit,
			wantDamage: 5 + 2,
		},
		{
			name:       "confirmation natural 1 fails even if total beats AC",
			natural:    20,
			confirmOn:  true,
			rolls:      []int{1, 5},
			wantResult: rules.ResultHit,
			wantDamage: 7,
		},
		{
			name:       "confirmation disabled",
			natural:    20,
			rolls:      []int{4, 4},
			wantResult: rules.ResultCriticalHit,
			wantDamage: 4 + 4 + 4,
		},
		{
			name:        "expanded threat range",
			natural:     19,
			threatRange: 19,
			confirmOn:   true,
			rolls:       []int{15, 8, 8},
			wantResult:  rules.ResultCriticalHit,
			wantDamage:  20,
		},
		{
			name:       "19 without expanded range is a plain hit",
			natural:    19,
			confirmOn:  true,
			rolls:      []int{3},
			wantResult: rules.ResultHit,
			wantDamage: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller, src := mockdice.NewManualRoller(tt.rolls...)

			out, err := rules.ResolveAttack(rules.AttackInput{
				AttackerID:       "a",
				TargetID:         "b",
				Roll:             d20(tt.natural),
				Modifiers:        mods(3),
				Defense:          mods(15),
				ThreatRange:      tt.threatRange,
				ConfirmCriticals: tt.confirmOn,
				Damage:           dice.MustParse("1d8"),
				DamageModifiers:  mods(2),
				CritPolicy:       rules.CritMultiply,
				Roller:           roller,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, out.Result)
			require.NotNil(t, out.Damage)
			assert.Equal(t, tt.wantDamage, out.Damage.Total)
			assert.Equal(t, []rules.Delta{{Target: "b", Kind: rules.DeltaHP, Amount: -tt.wantDamage}}, out.Deltas)
			assert.Equal(t, 0, src.Remaining())
		})
	}
}

func TestResolveAttack_DoubleDice(t *testing.T) {
	roller, _ := mockdice.NewManualRoller(6, 1)

	out, err := rules.ResolveAttack(rules.AttackInput{
		Roll:            d20(20),
		Defense:         mods(10),
		Damage:          dice.MustParse("1d6+1"),
		DamageModifiers: mods(3),
		CritPolicy:      rules.CritDoubleDice,
		Roller:          roller,
	})
	require.NoError(t, err)
	assert.Equal(t, rules.ResultCriticalHit, out.Result)
	assert.Equal(t, 6+1+1+3, out.Damage.Total)
	assert.Equal(t, 2, out.Damage.Rolls[0].Expression.Count)
}

func TestResolveAttack_MinimumDamage(t *testing.T) {
	roller, _ := mockdice.NewManualRoller(1)

	out, err := rules.ResolveAttack(rules.AttackInput{
		TargetID:        "b",
		Roll:            d20(15),
		Defense:         mods(10),
		Damage:          dice.MustParse("1d4"),
		DamageModifiers: mods(-3),
		Roller:          roller,
	})
	require.NoError(t, err)
	assert.Equal(t, rules.ResultHit, out.Result)
	assert.Equal(t, 1, out.Damage.Total)
	assert.True(t, out.Damage.Minimum)
}

func TestResolveAttack_Miss(t *testing.T) {
	out, err := rules.ResolveAttack(rules.AttackInput{
		Roll:      d20(8),
		Modifiers: mods(2),
		Defense:   mods(15),
		Damage:    dice.MustParse("1d8"),
		Roller:    dice.NewSeededRoller(1),
	})
	require.NoError(t, err)
	assert.Equal(t, rules.ResultMiss, out.Result)
	assert.Nil(t, out.Damage)
	assert.Empty(t, out.Deltas)
}

func TestResolveAttack_Validation(t *testing.T) {
	_, err := rules.ResolveAttack(rules.AttackInput{Defense: mods(10), ConfirmCriticals: true})
	require.Error(t, err)
	assert.True(t, rerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "roll: is required")
	assert.Contains(t, err.Error(), "roller: is required")
}
