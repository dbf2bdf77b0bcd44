// Package rules turns snapshots, dice and targets into itemized modifiers and outcomes.
package rules

// Ability is one of the six ability scores
type Ability string

const (
	Strength     Ability = "str"
	Dexterity    Ability = "dex"
	Constitution Ability = "con"
	Intelligence Ability = "int"
	Wisdom       Ability = "wis"
	Charisma     Ability = "cha"
)

// Abilities lists the six abilities in sheet order
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// DefaultAbilityScore is assumed for abilities missing from a snapshot
const DefaultAbilityScore = 10

// AbilityModifier returns floor((score-10)/2), rounding toward negative infinity.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// Save is a saving throw category
type Save string

const (
	Fortitude Save = "fortitude"
	Reflex    Save = "reflex"
	Will      Save = "will"
)

var saveAbility = map[Save]Ability{
	Fortitude: Constitution,
	Reflex:    Dexterity,
	Will:      Wisdom,
}

// SaveAbility returns the ability keyed to a save
func SaveAbility(s Save) Ability {
	if a, ok := saveAbility[s]; ok {
		return a
	}
	return Wisdom
}

var skillAbility = map[string]Ability{
	"acrobatics":       Dexterity,
	"appraise":         Intelligence,
	"bluff":            Charisma,
	"climb":            Strength,
	"diplomacy":        Charisma,
	"disable device":   Dexterity,
	"disguise":         Charisma,
	"escape artist":    Dexterity,
	"fly":              Dexterity,
	"handle animal":    Charisma,
	"heal":             Wisdom,
	"intimidate":       Charisma,
	"knowledge":        Intelligence,
	"linguistics":      Intelligence,
	"perception":       Wisdom,
	"ride":             Dexterity,
	"sense motive":     Wisdom,
	"sleight of hand":  Dexterity,
	"spellcraft":       Intelligence,
	"stealth":          Dexterity,
	"survival":         Wisdom,
	"swim":             Strength,
	"use magic device": Charisma,
}

// SkillAbility returns the ability a skill keys off, defaulting to Intelligence
func SkillAbility(skill string) Ability {
	if a, ok := skillAbility[skill]; ok {
		return a
	}
	return Intelligence
}

// ClassSkillBonus is added to trained class skills
const ClassSkillBonus = 3

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
