package testutils

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

// CreateTestFighter creates a first level fighter with a longsword
func CreateTestFighter(id, name string) *combat.Combatant {
	return &combat.Combatant{
		ID:   id,
		Name: name,
		Side: combat.SidePlayer,
		Snapshot: &rules.Snapshot{
			Name: name,
			Abilities: map[rules.Ability]int{
				rules.Strength:     16,
				rules.Dexterity:    13,
				rules.Constitution: 14,
				rules.Intelligence: 10,
				rules.Wisdom:       12,
				rules.Charisma:     8,
			},
			AC:              18,
			TouchAC:         11,
			FlatFootedAC:    17,
			HP:              12,
			MaxHP:           12,
			Size:            rules.SizeMedium,
			BaseAttackBonus: 1,
			Saves:           map[rules.Save]int{rules.Fortitude: 2},
			Skills:          map[string]int{"climb": 1},
			ClassSkills:     map[string]bool{"climb": true},
		},
		Weapons: []combat.Weapon{
			{Name: "longsword", DamageNotation: "1d8", ThreatRange: 19},
		},
	}
}

// CreateTestGoblin creates a goblin warrior with a short sword
func CreateTestGoblin(id string) *combat.Combatant {
	return &combat.Combatant{
		ID:   id,
		Name: "Goblin",
		Side: combat.SideEnemy,
		Snapshot: &rules.Snapshot{
			Name: "Goblin",
			Abilities: map[rules.Ability]int{
				rules.Strength:     11,
				rules.Dexterity:    15,
				rules.Constitution: 12,
				rules.Intelligence: 10,
				rules.Wisdom:       9,
				rules.Charisma:     6,
			},
			AC:              16,
			TouchAC:         13,
			FlatFootedAC:    14,
			HP:              6,
			MaxHP:           6,
			Size:            rules.SizeSmall,
			BaseAttackBonus: 1,
			Saves:           map[rules.Save]int{rules.Fortitude: 3},
		},
		Weapons: []combat.Weapon{
			{Name: "short sword", DamageNotation: "1d4", ThreatRange: 19},
		},
	}
}
