package encounters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
)

func testRecord(id, sessionID string, createdAt time.Time) *encounters.Record {
	return &encounters.Record{
		ID:        id,
		SessionID: sessionID,
		Reason:    combat.ReasonPartyVictory,
		Rounds:    3,
		Order: []combat.InitiativeEntry{
			{CombatantID: "fighter", Name: "Valeros", Side: combat.SidePlayer, Initiative: 17},
			{CombatantID: "goblin", Name: "Goblin", Side: combat.SideEnemy, Initiative: 9},
		},
		Log: []string{
			"Round 1: Combat started: Valeros 17, Goblin 9",
			"Round 3: Combat ended: party_victory",
		},
		Combatants: []combat.CombatantState{
			{ID: "fighter", Name: "Valeros", Side: combat.SidePlayer, HP: 7, MaxHP: 12},
			{ID: "goblin", Name: "Goblin", Side: combat.SideEnemy, HP: -2, MaxHP: 6, Down: true, Conditions: []string{"dying"}},
		},
		CreatedAt: createdAt,
	}
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := encounters.NewInMemoryRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Save and get", func(t *testing.T) {
		record := testRecord("enc-1", "session-1", base)
		require.NoError(t, repo.Save(ctx, record))

		got, err := repo.Get(ctx, "enc-1")
		require.NoError(t, err)
		assert.Equal(t, record, got)

		// The stored copy is independent of the caller's
		record.Log[0] = "changed"
		got, err = repo.Get(ctx, "enc-1")
		require.NoError(t, err)
		assert.Equal(t, "Round 1: Combat started: Valeros 17, Goblin 9", got.Log[0])
	})

	t.Run("Save stamps missing timestamps", func(t *testing.T) {
		record := testRecord("enc-2", "session-2", time.Time{})
		require.NoError(t, repo.Save(ctx, record))
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("List by session is oldest first", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, testRecord("enc-4", "session-3", base.Add(time.Hour))))
		require.NoError(t, repo.Save(ctx, testRecord("enc-3", "session-3", base)))

		records, err := repo.ListBySession(ctx, "session-3")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "enc-3", records[0].ID)
		assert.Equal(t, "enc-4", records[1].ID)
	})

	t.Run("Save replaces without duplicating the index", func(t *testing.T) {
		record := testRecord("enc-3", "session-3", base)
		record.Rounds = 9
		require.NoError(t, repo.Save(ctx, record))

		records, err := repo.ListBySession(ctx, "session-3")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 9, records[0].Rounds)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "enc-4"))

		_, err := repo.Get(ctx, "enc-4")
		assert.True(t, rerrors.IsNotFound(err))

		records, err := repo.ListBySession(ctx, "session-3")
		require.NoError(t, err)
		assert.Len(t, records, 1)

		assert.True(t, rerrors.IsNotFound(repo.Delete(ctx, "enc-4")))
	})

	t.Run("Unknown session is empty", func(t *testing.T) {
		records, err := repo.ListBySession(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Validation", func(t *testing.T) {
		assert.True(t, rerrors.IsInvalidArgument(repo.Save(ctx, nil)))
		assert.True(t, rerrors.IsValidation(repo.Save(ctx, &encounters.Record{ID: "x"})))
	})
}
