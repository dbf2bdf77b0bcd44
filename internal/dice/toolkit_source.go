package dice

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

type toolkitSource struct {
	roller toolkitdice.Roller
}

// NewToolkitSource draws faces from an rpg-toolkit roller.
// A nil roller falls back to the toolkit's crypto backed default.
func NewToolkitSource(roller toolkitdice.Roller) Source {
	if roller == nil {
		roller = toolkitdice.DefaultRoller
	}
	return &toolkitSource{roller: roller}
}

func (s *toolkitSource) Roll(sides int) (int, error) {
	return s.roller.Roll(sides)
}
