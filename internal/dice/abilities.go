package dice

import (
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// AbilityMethod names a way of generating the six ability scores
type AbilityMethod string

const (
	MethodFourD6DropLowest AbilityMethod = "4d6_drop_lowest"
	MethodThreeD6          AbilityMethod = "3d6"
	MethodTwoD6Plus6       AbilityMethod = "2d6+6"
	MethodStandardArray    AbilityMethod = "standard_array"
)

var abilityNotation = map[AbilityMethod]string{
	MethodFourD6DropLowest: "4d6 drop lowest 1",
	MethodThreeD6:          "3d6",
	MethodTwoD6Plus6:       "2d6+6",
}

// StandardArray is the fixed score set used instead of rolling
var StandardArray = []int{15, 14, 13, 12, 10, 8}

// RollAbilityScores generates six scores using method
func RollAbilityScores(r Roller, method AbilityMethod) ([]*RollResult, error) {
	if method == MethodStandardArray {
		results := make([]*RollResult, len(StandardArray))
		for i, score := range StandardArray {
			results[i] = &RollResult{
				Rolls: []int{score},
				Kept:  []int{score},
				Total: score,
				Taken: true,
			}
		}
		return results, nil
	}

	notation, ok := abilityNotation[method]
	if !ok {
		return nil, rerrors.InvalidArgumentf("unknown ability score method %q", method)
	}
	if r == nil {
		return nil, rerrors.InvalidArgument("roller is required")
	}

	expr := MustParse(notation)
	results := make([]*RollResult, 6)
	for i := range results {
		res, err := r.RollExpression(expr)
		if err != nil {
			return nil, rerrors.Wrapf(err, "failed to roll ability score %d", i+1)
		}
		results[i] = res
	}
	return results, nil
}
