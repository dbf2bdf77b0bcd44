package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-rules-engine/internal/config"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, time.Duration(0), cfg.Redis.ArchiveTTL)
	assert.Equal(t, 30*time.Second, cfg.DND5E.HTTPTimeout)
	assert.Equal(t, combat.DefaultPolicy(), cfg.Policy())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("ENGINE_ARCHIVE_TTL", "24h")
	t.Setenv("DND5E_HTTP_TIMEOUT", "5s")
	t.Setenv("ENGINE_CONFIRM_CRITS", "false")
	t.Setenv("ENGINE_CRIT_POLICY", "double_dice")
	t.Setenv("ENGINE_STABLE_OCCUPIES_TURN", "true")
	t.Setenv("ENGINE_REROLL_INITIATIVE", "true")
	t.Setenv("ENGINE_OPPOSED_TIE", "higher_modifier")
	t.Setenv("ENGINE_DEATH_THRESHOLD", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ArchiveTTL)
	assert.Equal(t, 5*time.Second, cfg.DND5E.HTTPTimeout)
	assert.Equal(t, combat.Policy{
		StableOccupiesTurn:        true,
		RerollInitiativeEachRound: true,
		ConfirmCriticals:          false,
		CritPolicy:                rules.CritDoubleDice,
		OpposedTie:                rules.TieHigherModifier,
		DeathThreshold:            0,
	}, cfg.Policy())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(error) bool
	}{
		{"unknown crit policy", "ENGINE_CRIT_POLICY", "triple", rerrors.IsValidation},
		{"unknown tie policy", "ENGINE_OPPOSED_TIE", "coin_flip", rerrors.IsValidation},
		{"positive death threshold", "ENGINE_DEATH_THRESHOLD", "5", rerrors.IsValidation},
		{"negative ttl", "ENGINE_ARCHIVE_TTL", "-1m", rerrors.IsValidation},
		{"zero http timeout", "DND5E_HTTP_TIMEOUT", "0s", rerrors.IsValidation},
		{"unparseable bool", "ENGINE_CONFIRM_CRITS", "maybe", rerrors.IsInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}
