package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

func d20(face int) *dice.RollResult {
	return &dice.RollResult{
		Expression: dice.Expression{Count: 1, Sides: 20},
		Rolls:      []int{face},
		Kept:       []int{face},
		Total:      face,
		Natural:    face,
	}
}

func mods(values ...int) rules.Breakdown {
	var bd rules.Breakdown
	for _, v := range values {
		bd = bd.With(rules.Modifier{Source: "test", Kind: rules.ModSituational, Value: v})
	}
	return bd
}

func TestResolveCheck(t *testing.T) {
	tests := []struct {
		name       string
		roll       *dice.RollResult
		mods       rules.Breakdown
		dc         int
		wantResult rules.Result
		wantDegree int
	}{
		{name: "tie succeeds", roll: d20(12), mods: mods(3), dc: 15, wantResult: rules.ResultSuccess, wantDegree: 0},
		{name: "one short fails", roll: d20(11), mods: mods(3), dc: 15, wantResult: rules.ResultFailure, wantDegree: -1},
		{name: "beat by five", roll: d20(17), mods: mods(3), dc: 15, wantResult: rules.ResultSuccess, wantDegree: 1},
		{name: "miss by six", roll: d20(6), mods: mods(3), dc: 15, wantResult: rules.ResultFailure, wantDegree: -2},
		{name: "natural 20 is not automatic", roll: d20(20), mods: mods(-8), dc: 15, wantResult: rules.ResultFailure, wantDegree: -1},
		{name: "natural 1 is not automatic", roll: d20(1), mods: mods(14), dc: 15, wantResult: rules.ResultSuccess, wantDegree: 0},
		{name: "take 10", roll: dice.Take(10, 0), mods: mods(5), dc: 15, wantResult: rules.ResultSuccess, wantDegree: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := rules.ResolveCheck(rules.KindSkill, tt.roll, tt.mods, tt.dc)
			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, tt.wantDegree, out.Degree)
			assert.Same(t, tt.roll, out.Roll)
			assert.Equal(t, tt.dc, out.Target)
		})
	}
}

func TestResolveManeuver(t *testing.T) {
	cmd := mods(10, 8)

	out := rules.ResolveManeuver(d20(20), mods(0), cmd)
	assert.Equal(t, rules.ResultSuccess, out.Result)

	out = rules.ResolveManeuver(d20(1), mods(30), cmd)
	assert.Equal(t, rules.ResultFailure, out.Result)

	out = rules.ResolveManeuver(d20(14), mods(4), cmd)
	assert.Equal(t, rules.ResultSuccess, out.Result)
	assert.Equal(t, 18, out.Target)
}

func TestResolveOpposed(t *testing.T) {
	tests := []struct {
		name     string
		iRoll    int
		iMod     int
		dRoll    int
		dMod     int
		policy   rules.TiePolicy
		wantWin  bool
		wantTie  bool
	}{
		{name: "higher total wins", iRoll: 15, iMod: 2, dRoll: 10, dMod: 3, wantWin: true},
		{name: "lower total loses", iRoll: 5, iMod: 2, dRoll: 10, dMod: 3, wantWin: false},
		{name: "tie defaults to initiator", iRoll: 10, iMod: 3, dRoll: 11, dMod: 2, wantWin: true, wantTie: true},
		{name: "tie to defender", iRoll: 10, iMod: 3, dRoll: 11, dMod: 2, policy: rules.TieDefender, wantWin: false, wantTie: true},
		{name: "tie to higher modifier", iRoll: 11, iMod: 2, dRoll: 10, dMod: 3, policy: rules.TieHigherModifier, wantWin: false, wantTie: true},
		{name: "tie equal modifiers falls back to initiator", iRoll: 10, iMod: 3, dRoll: 10, dMod: 3, policy: rules.TieHigherModifier, wantWin: true, wantTie: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := rules.ResolveOpposed(rules.KindManeuver,
				rules.Contestant{ID: "a", Roll: d20(tt.iRoll), Modifiers: mods(tt.iMod)},
				rules.Contestant{ID: "b", Roll: d20(tt.dRoll), Modifiers: mods(tt.dMod)},
				tt.policy)

			assert.Equal(t, tt.wantWin, out.Succeeded())
			assert.Equal(t, tt.wantTie, out.Opposed.Tie)
			assert.NotEmpty(t, out.Opposed.TiePolicy)
			assert.Equal(t, "b", out.Subject)
		})
	}
}
