package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rules-engine/internal/clients/dnd5e"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived combats",
}

var archiveListCmd = &cobra.Command{
	Use:   "list [session-id]",
	Short: "List a session's archived combats",
	Long: `List the combats archived for a session. Requires REDIS_URL.

  Example: archive list goblin-ambush`,
	Args: cobra.ExactArgs(1),
	RunE: runArchiveList,
}

var monsterCmd = &cobra.Command{
	Use:   "monster [key]",
	Short: "Show an SRD monster as the engine sees it",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonster,
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	repo, cleanup := openArchive()
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := repo.ListBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to list archive: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No archived combats for session %s\n", sessionID)
		return nil
	}

	fmt.Printf("\n📜 Archived combats for %s:\n", sessionID)
	for _, r := range records {
		fmt.Printf("  %s  %s  %-14s %d round(s), %d combatant(s)\n",
			r.CreatedAt.Format(time.RFC3339), r.ID, r.Reason, r.Rounds, len(r.Combatants))
	}
	return nil
}

func runMonster(cmd *cobra.Command, args []string) error {
	bestiary, err := dnd5e.New(&dnd5e.Config{Timeout: cfg.DND5E.HTTPTimeout})
	if err != nil {
		return fmt.Errorf("failed to create D&D 5e client: %w", err)
	}

	monster, err := bestiary.GetMonster(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("\n👹 %s (%s, CR %g)\n", monster.Name, monster.Type, monster.ChallengeRating)
	fmt.Printf("  AC %d, HP %d (%s)\n", monster.ArmorClass, monster.HitPoints, monster.HitDice)
	for _, a := range monster.Attacks {
		reach := "melee"
		if a.Ranged {
			reach = "ranged"
		}
		fmt.Printf("  %s: %+d %s, %s damage\n", a.Name, a.AttackBonus, reach, a.Damage)
	}
	return nil
}
