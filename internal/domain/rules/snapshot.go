package rules

// Snapshot is the mechanically relevant state of one combatant, supplied by
// the caller for each resolution. Resolvers work on copies.
type Snapshot struct {
	ID   string
	Name string

	Abilities map[Ability]int

	// AC is the full armor class as the character sheet reports it
	AC           int
	TouchAC      int
	FlatFootedAC int

	HP     int
	MaxHP  int
	TempHP int

	ProficiencyBonus int
	// Proficiencies holds keys built by ProficiencyKey
	Proficiencies map[string]bool

	Size            Size
	BaseAttackBonus int

	// Saves holds base save bonuses before the ability modifier
	Saves map[Save]int
	// Skills holds ranks per skill; ClassSkills marks class skills
	Skills      map[string]int
	ClassSkills map[string]bool

	// InitiativeBonus is a misc initiative bonus such as Improved Initiative
	InitiativeBonus int
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Abilities = cloneMap(s.Abilities)
	out.Proficiencies = cloneMap(s.Proficiencies)
	out.Saves = cloneMap(s.Saves)
	out.Skills = cloneMap(s.Skills)
	out.ClassSkills = cloneMap(s.ClassSkills)
	return out
}

// Score returns an ability score, defaulting to 10 when unset
func (s Snapshot) Score(a Ability) int {
	if v, ok := s.Abilities[a]; ok {
		return v
	}
	return DefaultAbilityScore
}

// Modifier returns the ability modifier for a
func (s Snapshot) Modifier(a Ability) int {
	return AbilityModifier(s.Score(a))
}

// WithScore returns a copy with ability a set to score
func (s Snapshot) WithScore(a Ability, score int) Snapshot {
	out := s.Clone()
	if out.Abilities == nil {
		out.Abilities = make(map[Ability]int)
	}
	out.Abilities[a] = score
	return out
}

// Proficient reports whether the snapshot is proficient for kind and key
func (s Snapshot) Proficient(kind CheckKind, key string) bool {
	return s.Proficiencies[ProficiencyKey(kind, key)]
}

// IsDown reports zero or negative hit points
func (s Snapshot) IsDown() bool {
	return s.HP <= 0
}

// ProficiencyKey builds the lookup key for Snapshot.Proficiencies
func ProficiencyKey(kind CheckKind, key string) string {
	return string(kind) + ":" + key
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
