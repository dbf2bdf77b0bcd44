package dnd5e

import (
	"strings"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// Monster is an SRD stat block trimmed to what combat needs
type Monster struct {
	Key             string
	Name            string
	Type            string
	ArmorClass      int
	HitPoints       int
	HitDice         string
	ChallengeRating float32
	Attacks         []*Attack
}

// Attack is one weapon attack from a stat block. AttackBonus is the
// printed total, so the combatant built from it carries no ability
// or base attack bonus of its own.
type Attack struct {
	Name        string
	Description string
	AttackBonus int
	Ranged      bool
	Damage      *dice.Expression
}

// Combatant builds a hostile combatant for an encounter roster. Ability
// scores stay at the default so printed bonuses are used as they are.
func (m *Monster) Combatant(id string) *combat.Combatant {
	weapons := make([]combat.Weapon, 0, len(m.Attacks))
	for _, a := range m.Attacks {
		w := combat.Weapon{
			Name:        a.Name,
			Attack:      rules.AttackMelee,
			Damage:      a.Damage,
			AttackBonus: a.AttackBonus,
		}
		if a.Ranged {
			w.Attack = rules.AttackRanged
		}
		weapons = append(weapons, w)
	}

	return &combat.Combatant{
		ID:   id,
		Name: m.Name,
		Side: combat.SideEnemy,
		Snapshot: &rules.Snapshot{
			ID:           id,
			Name:         m.Name,
			AC:           m.ArmorClass,
			TouchAC:      m.ArmorClass,
			FlatFootedAC: m.ArmorClass,
			HP:           m.HitPoints,
			MaxHP:        m.HitPoints,
			Size:         rules.SizeMedium,
		},
		Weapons: weapons,
	}
}

func apiToMonster(input *apiEntities.Monster) *Monster {
	if input == nil {
		return nil
	}

	return &Monster{
		Key:             input.Key,
		Name:            input.Name,
		Type:            input.Type,
		ArmorClass:      int(input.ArmorClass),
		HitPoints:       int(input.HitPoints),
		HitDice:         input.HitDice,
		ChallengeRating: float32(input.ChallengeRating),
		Attacks:         apisToAttacks(input.MonsterActions),
	}
}

// apisToAttacks keeps actions that roll damage; multiattack and other
// descriptive actions are dropped
func apisToAttacks(input []*apiEntities.MonsterAction) []*Attack {
	var attacks []*Attack
	for _, action := range input {
		if a := apiToAttack(action); a != nil {
			attacks = append(attacks, a)
		}
	}
	return attacks
}

func apiToAttack(input *apiEntities.MonsterAction) *Attack {
	if input == nil {
		return nil
	}

	var damage *dice.Expression
	for _, d := range input.Damage {
		if d == nil || d.DamageDice == "" {
			continue
		}
		expr, err := dice.Parse(d.DamageDice)
		if err != nil {
			continue
		}
		damage = expr
		break
	}
	if damage == nil {
		return nil
	}

	return &Attack{
		Name:        input.Name,
		Description: input.Description,
		AttackBonus: int(input.AttackBonus),
		Ranged:      strings.Contains(strings.ToLower(input.Description), "ranged weapon attack"),
		Damage:      damage,
	}
}
