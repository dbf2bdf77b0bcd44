package rules

// Resolver derives itemized modifiers from a snapshot and the active effects
// of its combatant. It holds no state of its own beyond the effect source.
type Resolver struct {
	effects EffectSource
}

// NewResolver creates a resolver; a nil source means no active effects
func NewResolver(effects EffectSource) *Resolver {
	return &Resolver{effects: effects}
}

func (r *Resolver) active(id string) []Effect {
	if r == nil || r.effects == nil {
		return nil
	}
	return r.effects.ActiveEffects(id)
}

// Effective applies every active Snapshot transform to a copy of snap
func (r *Resolver) Effective(snap Snapshot) Snapshot {
	out := snap.Clone()
	for _, e := range r.active(snap.ID) {
		out = e.ModifySnapshot(out)
	}
	return out
}

// Flags merges the flags of every active effect on id
func (r *Resolver) Flags(id string) Flags {
	var f Flags
	for _, e := range r.active(id) {
		f = f.Merge(e.Flags())
	}
	return f
}

// Resolve builds the modifier breakdown for a check made by snap
func (r *Resolver) Resolve(snap Snapshot, ctx Context) Breakdown {
	eff := r.Effective(snap)
	ability := ctx.Ability
	if ability == "" {
		ability = defaultAbility(ctx)
	}

	var items []Modifier
	if ability != "" {
		items = append(items, Modifier{Source: string(ability), Kind: ModAbility, Value: eff.Modifier(ability)})
	}

	switch ctx.Kind {
	case KindAttack:
		items = appendNonZero(items, Modifier{Source: "base attack", Kind: ModBase, Value: eff.BaseAttackBonus})
		items = appendNonZero(items, Modifier{Source: "size", Kind: ModSize, Value: SizeModifier(eff.Size)})
	case KindManeuver:
		items = appendNonZero(items, Modifier{Source: "base attack", Kind: ModBase, Value: eff.BaseAttackBonus})
		items = appendNonZero(items, Modifier{Source: "size", Kind: ModSize, Value: ManeuverSizeModifier(eff.Size)})
	case KindSave:
		items = appendNonZero(items, Modifier{Source: "base " + ctx.Key, Kind: ModBase, Value: eff.Saves[Save(ctx.Key)]})
	case KindSkill:
		ranks := eff.Skills[ctx.Key]
		items = appendNonZero(items, Modifier{Source: "ranks", Kind: ModBase, Value: ranks})
		if ranks > 0 && eff.ClassSkills[ctx.Key] {
			items = append(items, Modifier{Source: "class skill", Kind: ModClassSkill, Value: ClassSkillBonus})
		}
	case KindInitiative:
		items = appendNonZero(items, Modifier{Source: "initiative bonus", Kind: ModBase, Value: eff.InitiativeBonus})
	}

	if eff.ProficiencyBonus != 0 && eff.Proficient(ctx.Kind, proficiencyKey(ctx)) {
		items = append(items, Modifier{Source: "proficiency", Kind: ModProficiency, Value: eff.ProficiencyBonus})
	}

	for _, e := range r.active(snap.ID) {
		for _, m := range e.Modifiers(ctx) {
			items = appendNonZero(items, m)
		}
	}

	items = append(items, ctx.Situational...)

	return Breakdown{Items: items}
}

// Defense builds the AC breakdown snap presents against an attack
func (r *Resolver) Defense(snap Snapshot, attack AttackKind) Breakdown {
	eff := r.Effective(snap)
	items := []Modifier{{Source: "armor class", Kind: ModBase, Value: eff.AC}}

	// AC as supplied already includes the unmodified Dex bonus. Swap it for
	// the condition-adjusted one; losing Dex to AC drops only a bonus.
	supplied, dex := AbilityModifier(snap.Score(Dexterity)), eff.Modifier(Dexterity)
	source := "dexterity"
	if r.Flags(snap.ID).LosesDexToAC {
		source = "loses dex"
		if dex > 0 {
			dex = 0
		}
	}
	items = appendNonZero(items, Modifier{Source: source, Kind: ModCondition, Value: dex - supplied})

	for _, e := range r.active(snap.ID) {
		for _, m := range e.DefenseModifiers(attack) {
			items = appendNonZero(items, m)
		}
	}

	return Breakdown{Items: items}
}

// AdjustOutcome runs the outcome transforms of the subject's effects
func (r *Resolver) AdjustOutcome(o Outcome) Outcome {
	if o.Subject == "" {
		return o
	}
	for _, e := range r.active(o.Subject) {
		o = e.AdjustOutcome(o)
	}
	return o
}

// CombatManeuverBonus is BAB + Str + maneuver size + condition and situational modifiers
func (r *Resolver) CombatManeuverBonus(snap Snapshot, situational ...Modifier) Breakdown {
	return r.Resolve(snap, Context{Kind: KindManeuver, Situational: situational})
}

// CombatManeuverDefense is 10 + BAB + Str + Dex + maneuver size
func (r *Resolver) CombatManeuverDefense(snap Snapshot) Breakdown {
	eff := r.Effective(snap)
	items := []Modifier{
		{Source: "base", Kind: ModBase, Value: 10},
		{Source: string(Strength), Kind: ModAbility, Value: eff.Modifier(Strength)},
	}
	dex := eff.Modifier(Dexterity)
	if r.Flags(snap.ID).LosesDexToAC && dex > 0 {
		dex = 0
	}
	items = append(items, Modifier{Source: string(Dexterity), Kind: ModAbility, Value: dex})
	items = appendNonZero(items, Modifier{Source: "base attack", Kind: ModBase, Value: eff.BaseAttackBonus})
	items = appendNonZero(items, Modifier{Source: "size", Kind: ModSize, Value: ManeuverSizeModifier(eff.Size)})
	return Breakdown{Items: items}
}

func defaultAbility(ctx Context) Ability {
	switch ctx.Kind {
	case KindAttack:
		if ctx.Attack == AttackRanged {
			return Dexterity
		}
		return Strength
	case KindManeuver, KindDamage:
		return Strength
	case KindInitiative:
		return Dexterity
	case KindSave:
		return SaveAbility(Save(ctx.Key))
	case KindSkill:
		return SkillAbility(ctx.Key)
	case KindStabilize:
		return Constitution
	}
	return ""
}

func proficiencyKey(ctx Context) string {
	if ctx.Key != "" {
		return ctx.Key
	}
	if ctx.Kind == KindAttack {
		return string(ctx.Attack)
	}
	return ""
}

func appendNonZero(items []Modifier, m Modifier) []Modifier {
	if m.Value == 0 {
		return items
	}
	return append(items, m)
}
