// Package main is a command line front end for rolling dice and running
// automated combats against the rules engine
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rules-engine/internal/config"
	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
)

var (
	cfg  *config.Config
	seed int64
)

var rootCmd = &cobra.Command{
	Use:   "combat-sim",
	Short: "Pathfinder rules engine simulator",
	Long:  `combat-sim rolls dice, generates ability scores and plays out scripted encounters using the rules engine.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for reproducible dice (0 picks a random seed)")

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(abilitiesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(monsterCmd)
	rootCmd.AddCommand(archiveCmd)
}

// seedFlag returns the --seed value when the flag was given
func seedFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	s := seed
	return &s
}

// openArchive connects to Redis when REDIS_URL is set. Without it, or when
// the connection fails, archives live only for this process.
func openArchive() (encounters.Repository, func()) {
	noop := func() {}

	if cfg.Redis.URL == "" {
		log.Println("No REDIS_URL found, archiving in memory")
		return encounters.NewInMemoryRepository(), noop
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory archive")
		return encounters.NewInMemoryRepository(), noop
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory archive")
		_ = client.Close()
		return encounters.NewInMemoryRepository(), noop
	}

	repo := encounters.NewRedisRepository(&encounters.RedisRepoConfig{
		Client: client,
		TTL:    cfg.Redis.ArchiveTTL,
	})
	return repo, func() {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close Redis connection: %v", err)
		}
	}
}
