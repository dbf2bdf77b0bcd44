package config

import (
	"time"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the engine and its tools
type Config struct {
	Redis  RedisConfig
	DND5E  DND5EConfig
	Engine EngineConfig
}

// RedisConfig holds Redis-specific configuration. An empty URL keeps
// encounter archives in memory.
type RedisConfig struct {
	URL        string        `env:"REDIS_URL"`
	ArchiveTTL time.Duration `env:"ENGINE_ARCHIVE_TTL" envDefault:"0s"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	HTTPTimeout time.Duration `env:"DND5E_HTTP_TIMEOUT" envDefault:"30s"`
}

// EngineConfig holds the table rules combats run under
type EngineConfig struct {
	ConfirmCriticals   bool   `env:"ENGINE_CONFIRM_CRITS" envDefault:"true"`
	CritPolicy         string `env:"ENGINE_CRIT_POLICY" envDefault:"multiply"`
	StableOccupiesTurn bool   `env:"ENGINE_STABLE_OCCUPIES_TURN" envDefault:"false"`
	RerollInitiative   bool   `env:"ENGINE_REROLL_INITIATIVE" envDefault:"false"`
	OpposedTie         string `env:"ENGINE_OPPOSED_TIE" envDefault:"initiator"`
	// DeathThreshold below zero is an HP value; zero means negative Con
	DeathThreshold int `env:"ENGINE_DEATH_THRESHOLD" envDefault:"-10"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, rerrors.WrapWithCode(err, rerrors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	vb := rerrors.NewValidationBuilder()
	if c.Redis.ArchiveTTL < 0 {
		vb.InvalidField("ENGINE_ARCHIVE_TTL", "must not be negative")
	}
	if c.DND5E.HTTPTimeout <= 0 {
		vb.InvalidField("DND5E_HTTP_TIMEOUT", "must be positive")
	}
	if c.Engine.DeathThreshold > 0 {
		vb.InvalidField("ENGINE_DEATH_THRESHOLD", "must be zero or negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	return c.Policy().Validate()
}

// Policy builds the combat policy from the engine settings
func (c *Config) Policy() combat.Policy {
	return combat.Policy{
		StableOccupiesTurn:        c.Engine.StableOccupiesTurn,
		RerollInitiativeEachRound: c.Engine.RerollInitiative,
		ConfirmCriticals:          c.Engine.ConfirmCriticals,
		CritPolicy:                rules.CritPolicy(c.Engine.CritPolicy),
		OpposedTie:                rules.TiePolicy(c.Engine.OpposedTie),
		DeathThreshold:            c.Engine.DeathThreshold,
	}
}
