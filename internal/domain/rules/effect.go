package rules

// Flags are the non numeric consequences of active effects
type Flags struct {
	CannotAct    bool
	Helpless     bool
	LosesDexToAC bool
	FlatFooted   bool
}

// Merge ORs two flag sets
func (f Flags) Merge(o Flags) Flags {
	return Flags{
		CannotAct:    f.CannotAct || o.CannotAct,
		Helpless:     f.Helpless || o.Helpless,
		LosesDexToAC: f.LosesDexToAC || o.LosesDexToAC,
		FlatFooted:   f.FlatFooted || o.FlatFooted,
	}
}

// Incapacitated reports whether the combatant can take no actions
func (f Flags) Incapacitated() bool {
	return f.CannotAct || f.Helpless
}

// Effect is the mechanical side of a condition. Implementations must be
// pure: the same input always yields the same output.
type Effect interface {
	// Name labels the modifiers the effect contributes
	Name() string

	// ModifySnapshot adjusts the snapshot before modifiers are derived
	ModifySnapshot(Snapshot) Snapshot

	// AdjustOutcome rewrites an outcome that lands on the effect's holder
	AdjustOutcome(Outcome) Outcome

	// Modifiers returns bonuses and penalties for a check the holder makes
	Modifiers(Context) []Modifier

	// DefenseModifiers returns AC adjustments against an incoming attack
	DefenseModifiers(AttackKind) []Modifier

	Flags() Flags
}

// EffectSource supplies the active effects of a combatant
type EffectSource interface {
	ActiveEffects(combatantID string) []Effect
}

// EffectList is a fixed EffectSource, handy outside of combat
type EffectList map[string][]Effect

// ActiveEffects implements EffectSource
func (l EffectList) ActiveEffects(id string) []Effect {
	return l[id]
}
