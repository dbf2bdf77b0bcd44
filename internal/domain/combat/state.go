package combat

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/conditions"
)

// State is the lifecycle stage of a combat
type State string

const (
	StateNotStarted        State = "not_started"
	StateRollingInitiative State = "rolling_initiative"
	StateInProgress        State = "in_progress"
	StateResolved          State = "resolved"
)

// Reason says why a combat resolved
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonPartyVictory Reason = "party_victory"
	ReasonPartyDefeat  Reason = "party_defeat"
	ReasonFled         Reason = "fled"
	ReasonAborted      Reason = "aborted"
)

// CombatantState is the read-only view of one combatant
type CombatantState struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Side       Side     `json:"side"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"max_hp"`
	TempHP     int      `json:"temp_hp"`
	Down       bool     `json:"down"`
	Fled       bool     `json:"fled"`
	Conditions []string `json:"conditions,omitempty"`
}

// CombatState is a deep copied projection of a combat. Changing it has no
// effect on the combat it came from.
type CombatState struct {
	ID         string            `json:"id"`
	State      State             `json:"state"`
	Reason     Reason            `json:"reason,omitempty"`
	Round      int               `json:"round"`
	TurnIndex  int               `json:"turn_index"`
	Current    string            `json:"current,omitempty"`
	Order      []InitiativeEntry `json:"order"`
	Combatants []CombatantState  `json:"combatants"`
	Log        []string          `json:"log"`
}

// TurnReport describes one AdvanceTurn call
type TurnReport struct {
	Previous string `json:"previous"`
	Current  string `json:"current,omitempty"`
	Round    int    `json:"round"`
	NewRound bool   `json:"new_round"`
	// Skipped holds entries passed over because they could not act
	Skipped  []string                 `json:"skipped,omitempty"`
	Ticks    []*conditions.TickReport `json:"-"`
	Resolved bool                     `json:"resolved"`
	Reason   Reason                   `json:"reason,omitempty"`
}
