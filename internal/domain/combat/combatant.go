package combat

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// Side is which team a combatant fights for
type Side string

const (
	SidePlayer  Side = "player"
	SideAlly    Side = "ally"
	SideEnemy   Side = "enemy"
	SideNeutral Side = "neutral"
)

// Party reports whether the side counts toward party defeat
func (s Side) Party() bool {
	return s == SidePlayer || s == SideAlly
}

// Hostile reports whether the side counts toward party victory
func (s Side) Hostile() bool {
	return s == SideEnemy
}

// Weapon is one entry of a combatant's attack profile
type Weapon struct {
	Name   string           `yaml:"name"`
	Attack rules.AttackKind `yaml:"attack"`
	Damage *dice.Expression `yaml:"-"`
	// DamageNotation is parsed into Damage when Damage is nil
	DamageNotation string `yaml:"damage"`

	// Ability overrides Str/Dex for the attack roll
	Ability rules.Ability `yaml:"ability"`
	// DamageAbility adds an ability to damage; melee defaults to Str
	DamageAbility rules.Ability `yaml:"damage_ability"`

	// AttackBonus and DamageBonus cover enhancement and other flat bonuses
	AttackBonus int `yaml:"attack_bonus"`
	DamageBonus int `yaml:"damage_bonus"`

	ThreatRange int `yaml:"threat_range"`
	Multiplier  int `yaml:"multiplier"`
}

func (w *Weapon) damage() (*dice.Expression, error) {
	if w.Damage != nil {
		return w.Damage, nil
	}
	if w.DamageNotation == "" {
		return nil, nil
	}
	expr, err := dice.Parse(w.DamageNotation)
	if err != nil {
		return nil, err
	}
	w.Damage = expr
	return expr, nil
}

func (w *Weapon) kind() rules.AttackKind {
	if w.Attack == "" {
		return rules.AttackMelee
	}
	return w.Attack
}

// Combatant is a roster entry. Snapshot is owned by the caller; the state
// machine applies outcome deltas to it in place.
type Combatant struct {
	ID       string
	Name     string
	Side     Side
	Snapshot *rules.Snapshot
	Weapons  []Weapon
	// TieBreak replaces the initiative modifier as the tie-break key
	TieBreak *int
}

func (c *Combatant) validate() error {
	vb := rerrors.NewValidationBuilder()
	if c.ID == "" {
		vb.RequiredField("id")
	}
	if c.Snapshot == nil {
		vb.RequiredField("snapshot")
	} else if c.Snapshot.ID != "" && c.Snapshot.ID != c.ID {
		vb.InvalidField("snapshot", "snapshot id must match combatant id")
	}
	vb.Enum("side", string(c.Side), string(SidePlayer), string(SideAlly), string(SideEnemy), string(SideNeutral))
	for i := range c.Weapons {
		if _, err := c.Weapons[i].damage(); err != nil {
			vb.Fieldf("weapons", "%s: %v", c.Weapons[i].Name, err)
		}
	}
	return vb.Build()
}

func (c *Combatant) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// weapon picks by name; an empty name means the first weapon. A combatant
// without weapons fights unarmed for 1d3.
func (c *Combatant) weapon(name string) (*Weapon, error) {
	if len(c.Weapons) == 0 {
		if name != "" {
			return nil, rerrors.InvalidArgumentf("%s has no weapon %q", c.ID, name)
		}
		return &Weapon{Name: "unarmed strike", Attack: rules.AttackMelee, Damage: dice.MustParse("1d3")}, nil
	}
	if name == "" {
		return &c.Weapons[0], nil
	}
	for i := range c.Weapons {
		if c.Weapons[i].Name == name {
			return &c.Weapons[i], nil
		}
	}
	return nil, rerrors.InvalidArgumentf("%s has no weapon %q", c.ID, name)
}
