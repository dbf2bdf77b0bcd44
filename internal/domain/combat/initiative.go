package combat

import (
	"sort"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// InitiativeEntry is one slot in the turn order
type InitiativeEntry struct {
	CombatantID string           `json:"combatant_id"`
	Name        string           `json:"name"`
	Side        Side             `json:"side"`
	Initiative  int              `json:"initiative"`
	Modifier    int              `json:"modifier"`
	TieBreak    int              `json:"tie_break"`
	Roll        *dice.RollResult `json:"roll,omitempty"`
	Fled        bool             `json:"fled,omitempty"`

	seq int
}

// before is the turn order: initiative desc, tie-break key desc, then the
// order combatants joined.
func before(a, b *InitiativeEntry) bool {
	if a.Initiative != b.Initiative {
		return a.Initiative > b.Initiative
	}
	if a.TieBreak != b.TieBreak {
		return a.TieBreak > b.TieBreak
	}
	return a.seq < b.seq
}

func sortEntries(entries []*InitiativeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return before(entries[i], entries[j])
	})
}

// insertPosition is the index at which e belongs in an already sorted order
func insertPosition(order []*InitiativeEntry, e *InitiativeEntry) int {
	return sort.Search(len(order), func(i int) bool {
		return before(e, order[i])
	})
}

func (c *Combat) rollInitiative(cmb *Combatant, entry *InitiativeEntry) error {
	mods := c.resolver.Resolve(*cmb.Snapshot, rules.Context{Kind: rules.KindInitiative})
	roll, err := c.roller.RollD20(0, dice.ModeNormal)
	if err != nil {
		return rerrors.Wrapf(err, "failed to roll initiative for %s", cmb.ID)
	}

	entry.Roll = roll
	entry.Modifier = mods.Total()
	entry.Initiative = roll.Total + entry.Modifier
	entry.TieBreak = entry.Modifier
	if cmb.TieBreak != nil {
		entry.TieBreak = *cmb.TieBreak
	}
	return nil
}
