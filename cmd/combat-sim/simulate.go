package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rules-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-rules-engine/internal/services/encounter"
)

var (
	scenarioPath string
	showEvents   bool
	busKind      string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play out a scenario with automatic attacks",
	Long: `Load a YAML roster and let every combatant attack the first standing enemy
until the combat resolves. The combat log is printed and the result archived.

  Example: simulate --scenario cmd/combat-sim/scenarios/goblin-ambush.yaml --seed 3`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML")
	simulateCmd.Flags().BoolVar(&showEvents, "events", false, "Print engine events as they are published")
	simulateCmd.Flags().StringVar(&busKind, "bus", "local", "Event bus: local or toolkit")
	_ = simulateCmd.MarkFlagRequired("scenario")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	bestiary, err := dnd5e.New(&dnd5e.Config{Timeout: cfg.DND5E.HTTPTimeout})
	if err != nil {
		return fmt.Errorf("failed to create D&D 5e client: %w", err)
	}

	roster, err := sc.Roster(bestiary)
	if err != nil {
		return err
	}

	repo, cleanup := openArchive()
	defer cleanup()

	bus, err := newBus(busKind)
	if err != nil {
		return err
	}
	if showEvents {
		watchEvents(bus)
	}

	policy := cfg.Policy()
	svc := encounter.NewService(&encounter.ServiceConfig{
		Repository: repo,
		Publisher:  bus,
		Policy:     &policy,
	})

	ctx := context.Background()
	record, err := simulate(ctx, svc, &encounter.StartInput{
		SessionID: sc.Session,
		Roster:    roster,
		Seed:      seedFlag(cmd),
	}, sc.MaxRounds)
	if err != nil {
		return err
	}

	printRecord(record)
	return nil
}

// simulate starts a combat and drives it to resolution. Each turn holder
// attacks the first standing opponent in roster order; anyone without a
// target or unable to act passes. Combats still running after maxRounds
// are aborted.
func simulate(ctx context.Context, svc encounter.Service, input *encounter.StartInput, maxRounds int) (*encounters.Record, error) {
	started, err := svc.Start(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start combat: %w", err)
	}

	for {
		st, err := svc.State(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
		if st.State == combat.StateResolved {
			break
		}

		if st.Round > maxRounds {
			log.Printf("Round limit %d reached, aborting", maxRounds)
			if err := svc.Abort(ctx, input.SessionID, combat.ReasonAborted); err != nil {
				return nil, err
			}
			break
		}

		if target := pickTarget(st); target != "" {
			_, err := svc.ResolveAction(ctx, &encounter.ResolveActionInput{
				SessionID: input.SessionID,
				ActorID:   st.Current,
				Request:   combat.Attack(target, ""),
			})
			if err != nil && !rerrors.IsInvalidArgument(err) {
				return nil, err
			}
		}

		_, err = svc.AdvanceTurn(ctx, input.SessionID)
		if rerrors.IsTurnOrder(err) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	records, err := svc.Archived(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == started.CombatID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("combat %s was not archived", started.CombatID)
}

// pickTarget returns the first standing combatant opposing the turn holder
func pickTarget(st *combat.CombatState) string {
	var actor *combat.CombatantState
	for i := range st.Combatants {
		if st.Combatants[i].ID == st.Current {
			actor = &st.Combatants[i]
			break
		}
	}
	if actor == nil || actor.Down || actor.Fled {
		return ""
	}

	for _, c := range st.Combatants {
		if c.Down || c.Fled {
			continue
		}
		if (actor.Side.Party() && c.Side.Hostile()) || (actor.Side.Hostile() && c.Side.Party()) {
			return c.ID
		}
	}
	return ""
}

var watchedEvents = []events.EventType{
	events.CombatStarted,
	events.RoundStarted,
	events.ActionResolved,
	events.CombatantDown,
	events.ConditionApplied,
	events.ConditionExpired,
	events.Stabilized,
	events.CombatResolved,
}

// newBus picks the in-process priority bus or the rpg-toolkit bridge
func newBus(kind string) (events.Bus, error) {
	switch kind {
	case "", "local":
		return events.NewEventBus(), nil
	case "toolkit":
		return events.NewToolkitBus(), nil
	default:
		return nil, fmt.Errorf("unknown event bus %q (want local or toolkit)", kind)
	}
}

func watchEvents(bus events.Bus) {
	printer := events.NewListener(0, func(e *events.GameEvent) error {
		fmt.Printf("  [event] %s actor=%s target=%s %v\n", e.Type, e.ActorID, e.TargetID, e.Context)
		return nil
	})
	for _, t := range watchedEvents {
		bus.Subscribe(t, printer)
	}
}

func printRecord(r *encounters.Record) {
	fmt.Printf("\n⚔️  Combat %s (%s)\n", r.ID, r.SessionID)
	fmt.Printf("=========================================\n")
	for _, line := range r.Log {
		fmt.Printf("  %s\n", line)
	}
	fmt.Printf("\nResult: %s after %d round(s)\n", r.Reason, r.Rounds)
	for _, c := range r.Combatants {
		status := "standing"
		switch {
		case c.Fled:
			status = "fled"
		case c.Down:
			status = "down"
		}
		fmt.Printf("  %-12s %3d/%-3d HP  %s %v\n", c.Name, c.HP, c.MaxHP, status, c.Conditions)
	}
}
