package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

var abilityMethod string

var rollCmd = &cobra.Command{
	Use:   "roll [notation]",
	Short: "Roll dice notation",
	Long: `Roll a dice expression such as "1d20+5", "4d6 drop lowest 1" or "1d20 advantage".

  Example: roll "2d6+3" --seed 42`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoll,
}

var abilitiesCmd = &cobra.Command{
	Use:   "abilities",
	Short: "Generate six ability scores",
	Long: `Generate ability scores with 4d6_drop_lowest, 3d6, 2d6+6 or standard_array.

  Example: abilities --method 3d6 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runAbilities,
}

func init() {
	abilitiesCmd.Flags().StringVar(&abilityMethod, "method", string(dice.MethodFourD6DropLowest), "Ability generation method")
}

func rollerFor(cmd *cobra.Command) dice.Roller {
	if s := seedFlag(cmd); s != nil {
		return dice.NewSeededRoller(*s)
	}
	return dice.NewRoller(dice.NewToolkitSource(nil))
}

func runRoll(cmd *cobra.Command, args []string) error {
	notation := strings.Join(args, " ")

	result, err := rollerFor(cmd).Roll(notation)
	if err != nil {
		return fmt.Errorf("failed to roll %q: %w", notation, err)
	}

	fmt.Printf("🎲 %s\n", notation)
	fmt.Printf("  Rolls: %s\n", result)
	fmt.Printf("  Total: %d\n", result.Total)
	return nil
}

func runAbilities(cmd *cobra.Command, args []string) error {
	results, err := dice.RollAbilityScores(rollerFor(cmd), dice.AbilityMethod(abilityMethod))
	if err != nil {
		return fmt.Errorf("failed to generate ability scores: %w", err)
	}

	fmt.Printf("\n🎲 Ability Scores (%s):\n", abilityMethod)
	fmt.Printf("=========================================\n")

	for i, result := range results {
		fmt.Printf("  Roll %d: %2d (%+d)  %s\n", i+1, result.Total, rules.AbilityModifier(result.Total), result)
	}
	return nil
}
