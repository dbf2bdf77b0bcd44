package rules

import "strings"

// Size is a creature size category
type Size string

const (
	SizeFine       Size = "fine"
	SizeDiminutive Size = "diminutive"
	SizeTiny       Size = "tiny"
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeHuge       Size = "huge"
	SizeGargantuan Size = "gargantuan"
	SizeColossal   Size = "colossal"
)

var sizeModifiers = map[Size]int{
	SizeFine:       8,
	SizeDiminutive: 4,
	SizeTiny:       2,
	SizeSmall:      1,
	SizeMedium:     0,
	SizeLarge:      -1,
	SizeHuge:       -2,
	SizeGargantuan: -4,
	SizeColossal:   -8,
}

// ParseSize normalizes a size name; unknown names are medium
func ParseSize(name string) Size {
	s := Size(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := sizeModifiers[s]; ok {
		return s
	}
	return SizeMedium
}

// SizeModifier is the size bonus to attack rolls and AC
func SizeModifier(s Size) int {
	return sizeModifiers[s]
}

// ManeuverSizeModifier is the size bonus to CMB and CMD, the inverse of SizeModifier
func ManeuverSizeModifier(s Size) int {
	return -sizeModifiers[s]
}
