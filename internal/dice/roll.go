package dice

import (
	"fmt"
	"sort"
	"strings"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// RollResult is the evaluated form of an Expression.
// Treat it as immutable once returned; slices are owned by the result.
type RollResult struct {
	Expression Expression

	// Rolls holds every die value in draw order
	Rolls []int
	// Kept holds the dice that count toward the total
	Kept []int
	// Dropped holds the dice removed by a drop clause
	Dropped []int

	Modifier int
	Total    int

	// Natural is the kept d20 face when exactly one d20 is kept, otherwise 0
	Natural int

	// Alternates holds both full rolls of an advantage or disadvantage
	// roll in draw order. Chosen indexes the one that was kept.
	Alternates []*RollResult
	Chosen     int

	// Taken marks a fixed result from take 10 or take 20
	Taken bool
}

// Evaluate rolls expr using src. The same expression and an identically
// seeded source always produce the same result.
func Evaluate(expr *Expression, src Source) (*RollResult, error) {
	if expr == nil {
		return nil, rerrors.InvalidArgument("expression is required")
	}
	if src == nil {
		return nil, rerrors.InvalidArgument("source is required")
	}
	if err := expr.Validate(); err != nil {
		return nil, err
	}

	if expr.Mode == ModeNormal {
		return rollOnce(*expr, src)
	}

	first, err := rollOnce(*expr, src)
	if err != nil {
		return nil, err
	}
	second, err := rollOnce(*expr, src)
	if err != nil {
		return nil, err
	}

	chosen := 0
	switch expr.Mode {
	case ModeAdvantage:
		if second.Total > first.Total {
			chosen = 1
		}
	case ModeDisadvantage:
		if second.Total < first.Total {
			chosen = 1
		}
	}

	pair := []*RollResult{first, second}
	result := *pair[chosen]
	result.Expression = *expr
	result.Alternates = pair
	result.Chosen = chosen

	return &result, nil
}

func rollOnce(expr Expression, src Source) (*RollResult, error) {
	single := expr
	single.Mode = ModeNormal

	rolls := make([]int, expr.Count)
	for i := range rolls {
		v, err := src.Roll(expr.Sides)
		if err != nil {
			return nil, rerrors.Wrapf(err, "failed to roll d%d", expr.Sides)
		}
		if v < 1 || v > expr.Sides {
			return nil, rerrors.Internalf("source returned %d for d%d", v, expr.Sides)
		}
		rolls[i] = v
	}

	var kept, dropped []int
	switch expr.Drop {
	case DropLowest, DropHighest:
		sorted := append([]int(nil), rolls...)
		sort.Ints(sorted)
		if expr.Drop == DropLowest {
			dropped = sorted[:expr.DropCount]
			kept = sorted[expr.DropCount:]
		} else {
			split := len(sorted) - expr.DropCount
			kept = sorted[:split]
			dropped = sorted[split:]
		}
	default:
		kept = append([]int(nil), rolls...)
	}

	total := expr.Modifier
	for _, v := range kept {
		total += v
	}

	result := &RollResult{
		Expression: single,
		Rolls:      rolls,
		Kept:       kept,
		Dropped:    dropped,
		Modifier:   expr.Modifier,
		Total:      total,
	}
	if expr.Sides == 20 && len(kept) == 1 {
		result.Natural = kept[0]
	}

	return result, nil
}

// Take builds the fixed result of taking value (10 or 20) on a d20 check.
// A taken result never counts as a natural roll.
func Take(value, modifier int) *RollResult {
	return &RollResult{
		Expression: Expression{Count: 1, Sides: 20, Modifier: modifier},
		Rolls:      []int{value},
		Kept:       []int{value},
		Modifier:   modifier,
		Total:      value + modifier,
		Taken:      true,
	}
}

// IsNatural reports whether the kept d20 shows face n
func (r *RollResult) IsNatural(n int) bool {
	return r != nil && r.Natural != 0 && r.Natural == n
}

// Sum returns the kept dice without the modifier
func (r *RollResult) Sum() int {
	return r.Total - r.Modifier
}

func (r *RollResult) String() string {
	if r == nil {
		return "<nil>"
	}
	if r.Taken {
		if r.Expression.Count == 0 {
			return fmt.Sprintf("%d (fixed)", r.Total)
		}
		return fmt.Sprintf("%s = %d (took %d)", r.Expression, r.Total, r.Rolls[0])
	}
	if len(r.Alternates) == 2 {
		return fmt.Sprintf("%s = %d (%v | %v)", r.Expression, r.Total,
			compact(r.Alternates[0].Rolls), compact(r.Alternates[1].Rolls))
	}
	if len(r.Dropped) > 0 {
		return fmt.Sprintf("%s = %d (%s, dropped %s)", r.Expression, r.Total, compact(r.Rolls), compact(r.Dropped))
	}
	return fmt.Sprintf("%s = %d (%s)", r.Expression, r.Total, compact(r.Rolls))
}

func compact(values []int) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", values), " ", ",")
}
