package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  dice.Expression
	}{
		{name: "plain", input: "2d6", want: dice.Expression{Count: 2, Sides: 6}},
		{name: "implicit count", input: "d8", want: dice.Expression{Count: 1, Sides: 8}},
		{name: "plus modifier", input: "1d8+3", want: dice.Expression{Count: 1, Sides: 8, Modifier: 3}},
		{name: "minus modifier", input: "3d4-2", want: dice.Expression{Count: 3, Sides: 4, Modifier: -2}},
		{name: "spaced", input: "  2 d 10 + 1 ", want: dice.Expression{Count: 2, Sides: 10, Modifier: 1}},
		{name: "upper case", input: "1D20+5 ADVANTAGE", want: dice.Expression{Count: 1, Sides: 20, Modifier: 5, Mode: dice.ModeAdvantage}},
		{name: "disadvantage", input: "1d20-1 disadvantage", want: dice.Expression{Count: 1, Sides: 20, Modifier: -1, Mode: dice.ModeDisadvantage}},
		{name: "drop lowest", input: "4d6 drop lowest 1", want: dice.Expression{Count: 4, Sides: 6, Drop: dice.DropLowest, DropCount: 1}},
		{name: "drop highest", input: "5d10+2 drop highest 2", want: dice.Expression{Count: 5, Sides: 10, Modifier: 2, Drop: dice.DropHighest, DropCount: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dice.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParse_ParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		substring string
	}{
		{name: "empty", input: "   ", substring: ""},
		{name: "no die", input: "fireball", substring: "fireball"},
		{name: "bad sides", input: "2dx", substring: "2dx"},
		{name: "dangling sign", input: "2d6+", substring: "+"},
		{name: "trailing junk", input: "1d20 luck", substring: "luck"},
		{name: "incomplete drop", input: "4d6 drop lowest", substring: "drop lowest"},
		{name: "double mode", input: "1d20 advantage disadvantage", substring: "disadvantage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dice.Parse(tt.input)
			require.Error(t, err)
			assert.True(t, rerrors.IsParse(err), "expected parse error, got %v", err)
			assert.Equal(t, tt.substring, rerrors.GetMeta(err)["substring"])
		})
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "zero dice", input: "0d6", field: "count"},
		{name: "one sided", input: "1d1", field: "sides"},
		{name: "drop all", input: "4d6 drop lowest 4", field: "drop_count"},
		{name: "drop zero", input: "4d6 drop highest 0", field: "drop_count"},
		{name: "advantage on 2d20", input: "2d20 advantage", field: "mode"},
		{name: "advantage on d12", input: "1d12 advantage", field: "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dice.Parse(tt.input)
			require.Error(t, err)
			assert.True(t, rerrors.IsValidation(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestExpression_String(t *testing.T) {
	for _, notation := range []string{"2d6", "1d8+3", "3d4-2", "1d20+5 advantage", "4d6 drop lowest 1"} {
		assert.Equal(t, notation, dice.MustParse(notation).String())
	}
}
