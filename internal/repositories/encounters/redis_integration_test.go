//go:build integration
// +build integration

package encounters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-rules-engine/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	repo := encounters.NewRedis(client)
	ctx := context.Background()

	record := testRecord("enc-int-1", "session-int", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	t.Run("save and retrieve", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, record))

		got, err := repo.Get(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.SessionID, got.SessionID)
		assert.Equal(t, record.Log, got.Log)
		assert.Equal(t, record.Combatants, got.Combatants)
	})

	t.Run("list and delete", func(t *testing.T) {
		records, err := repo.ListBySession(ctx, "session-int")
		require.NoError(t, err)
		require.Len(t, records, 1)

		require.NoError(t, repo.Delete(ctx, record.ID))
		_, err = repo.Get(ctx, record.ID)
		assert.True(t, rerrors.IsNotFound(err))
	})
}
