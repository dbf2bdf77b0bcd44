package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// Mode selects advantage handling for a d20 expression
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdvantage
	ModeDisadvantage
)

func (m Mode) String() string {
	switch m {
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

// DropMode selects which end of the sorted dice is discarded
type DropMode int

const (
	DropNone DropMode = iota
	DropLowest
	DropHighest
)

func (d DropMode) String() string {
	switch d {
	case DropLowest:
		return "lowest"
	case DropHighest:
		return "highest"
	default:
		return "none"
	}
}

// MaxCount bounds the number of dice in a single expression
const MaxCount = 1000

// Expression is a parsed dice request such as "4d6 drop lowest 1"
type Expression struct {
	Count     int
	Sides     int
	Modifier  int
	Mode      Mode
	Drop      DropMode
	DropCount int
}

var (
	baseRe = regexp.MustCompile(`(?i)^(\d*)\s*d\s*(\d+)(?:\s*([+-])\s*(\d+))?`)
	modeRe = regexp.MustCompile(`(?i)^(advantage|disadvantage)\b`)
	dropRe = regexp.MustCompile(`(?i)^drop\s+(lowest|highest)\s+(\d+)\b`)
)

// Parse turns notation text into an Expression.
// Malformed text yields a parse error naming the offending substring;
// well formed but impossible requests yield a validation error.
func Parse(text string) (*Expression, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return nil, rerrors.Parse(text, "", "dice notation is empty")
	}

	m := baseRe.FindStringSubmatch(input)
	if m == nil {
		return nil, rerrors.Parse(text, firstToken(input), "expected NdX")
	}

	expr := &Expression{Count: 1}
	if m[1] != "" {
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, rerrors.Parse(text, m[1], "dice count is not a number")
		}
		expr.Count = count
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, rerrors.Parse(text, m[2], "die size is not a number")
	}
	expr.Sides = sides

	if m[3] != "" {
		mod, err := strconv.Atoi(m[4])
		if err != nil {
			return nil, rerrors.Parse(text, m[3]+m[4], "modifier is not a number")
		}
		if m[3] == "-" {
			mod = -mod
		}
		expr.Modifier = mod
	}

	rest := strings.TrimSpace(input[len(m[0]):])
	seenMode, seenDrop := false, false
	for rest != "" {
		switch {
		case modeRe.MatchString(rest):
			word := modeRe.FindString(rest)
			if seenMode {
				return nil, rerrors.Parse(text, word, "advantage or disadvantage given twice")
			}
			seenMode = true
			if strings.EqualFold(word, "advantage") {
				expr.Mode = ModeAdvantage
			} else {
				expr.Mode = ModeDisadvantage
			}
			rest = strings.TrimSpace(rest[len(word):])

		case dropRe.MatchString(rest):
			dm := dropRe.FindStringSubmatch(rest)
			if seenDrop {
				return nil, rerrors.Parse(text, dm[0], "drop clause given twice")
			}
			seenDrop = true
			k, err := strconv.Atoi(dm[2])
			if err != nil {
				return nil, rerrors.Parse(text, dm[2], "drop count is not a number")
			}
			if strings.EqualFold(dm[1], "lowest") {
				expr.Drop = DropLowest
			} else {
				expr.Drop = DropHighest
			}
			expr.DropCount = k
			rest = strings.TrimSpace(rest[len(dm[0]):])

		default:
			if len(rest) >= 4 && strings.EqualFold(rest[:4], "drop") {
				return nil, rerrors.Parse(text, rest, "expected drop lowest|highest K")
			}
			return nil, rerrors.Parse(text, firstToken(rest), "unexpected text")
		}
	}

	if err := expr.Validate(); err != nil {
		return nil, err
	}

	return expr, nil
}

// MustParse is Parse for notation known at compile time
func MustParse(text string) *Expression {
	expr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return expr
}

// Validate enforces the structural limits of an expression
func (e *Expression) Validate() error {
	vb := rerrors.NewValidationBuilder().
		Range("count", e.Count, 1, MaxCount).
		Min("sides", e.Sides, 2)

	switch e.Drop {
	case DropNone:
		if e.DropCount != 0 {
			vb.Field("drop_count", "must be 0 without a drop clause")
		}
	case DropLowest, DropHighest:
		if e.DropCount < 1 {
			vb.Fieldf("drop_count", "must be at least 1, got %d", e.DropCount)
		}
		if e.DropCount >= e.Count {
			vb.Fieldf("drop_count", "must be less than the dice count %d, got %d", e.Count, e.DropCount)
		}
	default:
		vb.InvalidField("drop", "unknown drop mode")
	}

	switch e.Mode {
	case ModeNormal:
	case ModeAdvantage, ModeDisadvantage:
		if e.Count != 1 || e.Sides != 20 {
			vb.Fieldf("mode", "%s requires a single d20, got %dd%d", e.Mode, e.Count, e.Sides)
		}
	default:
		vb.InvalidField("mode", "unknown mode")
	}

	return vb.Build()
}

// WithMode returns a copy using the given advantage mode
func (e Expression) WithMode(mode Mode) *Expression {
	e.Mode = mode
	return &e
}

// WithCount returns a copy rolling count dice
func (e Expression) WithCount(count int) *Expression {
	e.Count = count
	return &e
}

// String renders the canonical notation
func (e Expression) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dd%d", e.Count, e.Sides)
	switch {
	case e.Modifier > 0:
		fmt.Fprintf(&sb, "+%d", e.Modifier)
	case e.Modifier < 0:
		fmt.Fprintf(&sb, "%d", e.Modifier)
	}
	if e.Mode != ModeNormal {
		sb.WriteString(" " + e.Mode.String())
	}
	if e.Drop != DropNone {
		fmt.Fprintf(&sb, " drop %s %d", e.Drop, e.DropCount)
	}
	return sb.String()
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i > 0 {
		return s[:i]
	}
	return s
}
