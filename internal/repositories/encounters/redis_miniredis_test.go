package encounters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-rules-engine/internal/testutils"
)

func TestRedisRepository_MiniRedis(t *testing.T) {
	ctx := context.Background()
	client, mr := testutils.NewMiniRedis(t)
	repo := encounters.NewRedisRepository(&encounters.RedisRepoConfig{
		Client: client,
		TTL:    time.Hour,
	})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testRecord("enc-2", "session-1", base.Add(time.Minute))))
	require.NoError(t, repo.Save(ctx, testRecord("enc-1", "session-1", base)))

	got, err := repo.Get(ctx, "enc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rounds)
	assert.Equal(t, []string{"dying"}, got.Combatants[1].Conditions)
	assert.Equal(t, 17, got.Order[0].Initiative)

	records, err := repo.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "enc-1", records[0].ID)

	assert.True(t, mr.Exists("encounter:enc-1"))
	assert.Equal(t, time.Hour, mr.TTL("session:session-1:encounters"))

	// Expired records drop out of listings
	mr.FastForward(2 * time.Hour)
	records, err = repo.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, records)
}
