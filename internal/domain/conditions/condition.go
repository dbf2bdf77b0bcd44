// Package conditions models status conditions, their mechanical effects and
// the per-combat tracker that applies, ticks and expires them.
package conditions

import (
	"strings"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

// Stacking decides what happens when a condition is applied twice
type Stacking string

const (
	// StackReplace overwrites the existing instance and refreshes its duration
	StackReplace Stacking = "replace"
	// StackStack keeps every instance independently
	StackStack Stacking = "stack"
	// StackIgnore makes the second application a no-op
	StackIgnore Stacking = "ignore_if_present"
)

// Condition is a named effect on a combatant
type Condition struct {
	ID          string
	Name        string
	Description string
	Effect      rules.Effect
	// Duration in rounds; nil lasts until removed
	Duration     *int
	Stacking     Stacking
	Source       string
	EndsOnDamage bool
}

var _ rules.Attachment = Condition{}

// ConditionName implements rules.Attachment
func (c Condition) ConditionName() string {
	return c.Name
}

// Permanent reports a condition with no duration
func (c Condition) Permanent() bool {
	return c.Duration == nil
}

// WithDuration returns a copy lasting n rounds
func (c Condition) WithDuration(n int) Condition {
	c.Duration = Rounds(n)
	return c
}

// WithSource returns a copy attributed to source
func (c Condition) WithSource(source string) Condition {
	c.Source = source
	return c
}

// Rounds is a convenience for Condition.Duration
func Rounds(n int) *int {
	return &n
}

// Normalize maps "Flat-Footed" and "flat footed" to "flat_footed"
func Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "-", "_")
}
