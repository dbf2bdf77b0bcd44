package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rules-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
)

// Scenario is a YAML roster for simulate
type Scenario struct {
	Session    string              `yaml:"session"`
	MaxRounds  int                 `yaml:"max_rounds"`
	Combatants []ScenarioCombatant `yaml:"combatants"`
}

// ScenarioCombatant describes one combatant inline, or by SRD monster key
type ScenarioCombatant struct {
	ID   string      `yaml:"id"`
	Name string      `yaml:"name"`
	Side combat.Side `yaml:"side"`
	// Monster loads the stat block from the bestiary; inline fields are ignored
	Monster string `yaml:"monster"`

	Abilities    map[rules.Ability]int `yaml:"abilities"`
	AC           int                   `yaml:"ac"`
	TouchAC      int                   `yaml:"touch_ac"`
	FlatFootedAC int                   `yaml:"flat_footed_ac"`
	HP           int                   `yaml:"hp"`
	BAB          int                   `yaml:"bab"`
	Size         rules.Size            `yaml:"size"`
	Saves        map[rules.Save]int    `yaml:"saves"`
	Initiative   int                   `yaml:"initiative"`
	Weapons      []combat.Weapon       `yaml:"weapons"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if sc.Session == "" {
		sc.Session = "simulation"
	}
	if sc.MaxRounds <= 0 {
		sc.MaxRounds = 50
	}
	if len(sc.Combatants) == 0 {
		return nil, fmt.Errorf("scenario has no combatants")
	}
	return &sc, nil
}

// Roster builds combatants, fetching monster entries through bestiary.
// bestiary may be nil when the scenario has no monster entries.
func (sc *Scenario) Roster(bestiary dnd5e.Client) ([]*combat.Combatant, error) {
	roster := make([]*combat.Combatant, 0, len(sc.Combatants))
	for i, entry := range sc.Combatants {
		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("combatant-%d", i+1)
		}

		if entry.Monster != "" {
			if bestiary == nil {
				return nil, fmt.Errorf("%s needs the bestiary for monster %q", id, entry.Monster)
			}
			monster, err := bestiary.GetMonster(entry.Monster)
			if err != nil {
				return nil, fmt.Errorf("failed to load monster %q: %w", entry.Monster, err)
			}
			c := monster.Combatant(id)
			if entry.Name != "" {
				c.Name = entry.Name
				c.Snapshot.Name = entry.Name
			}
			if entry.Side != "" {
				c.Side = entry.Side
			}
			roster = append(roster, c)
			continue
		}

		roster = append(roster, entry.combatant(id))
	}
	return roster, nil
}

func (e ScenarioCombatant) combatant(id string) *combat.Combatant {
	side := e.Side
	if side == "" {
		side = combat.SidePlayer
	}
	size := e.Size
	if size == "" {
		size = rules.SizeMedium
	}
	touch, flat := e.TouchAC, e.FlatFootedAC
	if touch == 0 {
		touch = e.AC
	}
	if flat == 0 {
		flat = e.AC
	}

	return &combat.Combatant{
		ID:   id,
		Name: e.Name,
		Side: side,
		Snapshot: &rules.Snapshot{
			ID:              id,
			Name:            e.Name,
			Abilities:       e.Abilities,
			AC:              e.AC,
			TouchAC:         touch,
			FlatFootedAC:    flat,
			HP:              e.HP,
			MaxHP:           e.HP,
			Size:            size,
			BaseAttackBonus: e.BAB,
			Saves:           e.Saves,
			InitiativeBonus: e.Initiative,
		},
		Weapons: e.Weapons,
	}
}
