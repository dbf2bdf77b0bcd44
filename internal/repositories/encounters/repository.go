// Package encounters archives resolved combats.
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencounters -source=repository.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
)

// Record is the archived summary of one combat
type Record struct {
	ID         string                   `json:"id"`
	SessionID  string                   `json:"session_id"`
	Reason     combat.Reason            `json:"reason"`
	Rounds     int                      `json:"rounds"`
	Order      []combat.InitiativeEntry `json:"order"`
	Log        []string                 `json:"log"`
	Combatants []combat.CombatantState  `json:"combatants"`
	CreatedAt  time.Time                `json:"created_at"`
}

// NewRecord builds a record from the final state of a combat
func NewRecord(sessionID string, st combat.CombatState) *Record {
	return &Record{
		ID:         st.ID,
		SessionID:  sessionID,
		Reason:     st.Reason,
		Rounds:     st.Round,
		Order:      st.Order,
		Log:        st.Log,
		Combatants: st.Combatants,
	}
}

// Repository defines the interface for encounter archive storage
type Repository interface {
	// Save stores a record, replacing any record with the same ID
	Save(ctx context.Context, record *Record) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*Record, error)

	// ListBySession returns a session's records, oldest first
	ListBySession(ctx context.Context, sessionID string) ([]*Record, error)

	// Delete removes a record
	Delete(ctx context.Context, id string) error
}
