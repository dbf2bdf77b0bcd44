package events

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// CombatantEntity identifies a combatant to rpg-toolkit
type CombatantEntity struct {
	ID string
}

var _ core.Entity = (*CombatantEntity)(nil)

// GetID returns the combatant id
func (c *CombatantEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type
func (c *CombatantEntity) GetType() string {
	return "combatant"
}

func wrapCombatant(id string) core.Entity {
	if id == "" {
		return nil
	}
	return &CombatantEntity{ID: id}
}
