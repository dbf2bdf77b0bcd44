package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	mockdice "github.com/KirkDiggler/rpg-rules-engine/internal/dice/mock"
)

type stubToolkitRoller struct {
	faces []int
}

func (s *stubToolkitRoller) Roll(size int) (int, error) {
	v := s.faces[0]
	s.faces = s.faces[1:]
	return v, nil
}

func (s *stubToolkitRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = s.Roll(size)
	}
	return out, nil
}

func TestRoller_Roll(t *testing.T) {
	roller, src := mockdice.NewManualRoller(4, 5)

	res, err := roller.Roll("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 0, src.Remaining())

	_, err = roller.Roll("2d6")
	assert.Error(t, err, "queue exhausted")
}

func TestRoller_RollD20(t *testing.T) {
	roller, _ := mockdice.NewManualRoller(3, 17)

	res, err := roller.RollD20(2, dice.ModeAdvantage)
	require.NoError(t, err)
	assert.Equal(t, 19, res.Total)
	assert.Equal(t, 17, res.Natural)
}

func TestSeededRoller_Reproducible(t *testing.T) {
	a, err := dice.NewSeededRoller(99).Roll("3d8+2")
	require.NoError(t, err)
	b, err := dice.NewSeededRoller(99).Roll("3d8+2")
	require.NoError(t, err)
	assert.Equal(t, a.Rolls, b.Rolls)
}

func TestToolkitSource(t *testing.T) {
	src := dice.NewToolkitSource(&stubToolkitRoller{faces: []int{6, 1, 4}})

	res, err := dice.Evaluate(dice.MustParse("3d6"), src)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 1, 4}, res.Rolls)
	assert.Equal(t, 11, res.Total)
}

func TestRollAbilityScores(t *testing.T) {
	faces := make([]int, 0, 24)
	for i := 0; i < 6; i++ {
		faces = append(faces, 6, 6, 6, 1)
	}
	roller, _ := mockdice.NewManualRoller(faces...)

	scores, err := dice.RollAbilityScores(roller, dice.MethodFourD6DropLowest)
	require.NoError(t, err)
	require.Len(t, scores, 6)
	for _, s := range scores {
		assert.Equal(t, 18, s.Total)
		assert.Equal(t, []int{1}, s.Dropped)
	}

	array, err := dice.RollAbilityScores(nil, dice.MethodStandardArray)
	require.NoError(t, err)
	assert.Equal(t, 15, array[0].Total)
	assert.Equal(t, 8, array[5].Total)

	_, err = dice.RollAbilityScores(roller, "5d6")
	assert.Error(t, err)
}
