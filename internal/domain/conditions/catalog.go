package conditions

import (
	_ "embed"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

//go:embed catalog.yaml
var standardCatalog []byte

const (
	kindPenalty = "penalty"
	kindDying   = "dying"
	kindStable  = "stable"
)

type entry struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Kind         string   `yaml:"kind"`
	Stacking     Stacking `yaml:"stacking"`
	EndsOnDamage bool     `yaml:"ends_on_damage"`
	Effect       Penalty  `yaml:"effect"`
}

// Catalog holds condition definitions keyed by normalized name
type Catalog struct {
	entries map[string]entry
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the built in catalog of standard conditions
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(standardCatalog)
		if err != nil {
			panic("conditions: embedded catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog parses a YAML catalog. Keys are normalized, so "Flat-Footed"
// and "flat_footed" name the same entry.
func LoadCatalog(data []byte) (*Catalog, error) {
	raw := make(map[string]entry)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, rerrors.WrapWithCode(err, rerrors.CodeParse, "failed to parse condition catalog")
	}

	c := &Catalog{entries: make(map[string]entry, len(raw))}
	for key, e := range raw {
		key = Normalize(key)
		if e.Name == "" {
			e.Name = key
		}
		if e.Kind == "" {
			e.Kind = kindPenalty
		}
		if e.Stacking == "" {
			e.Stacking = StackReplace
		}

		vb := rerrors.NewValidationBuilder()
		vb.Enum(key+".kind", e.Kind, kindPenalty, kindDying, kindStable)
		vb.Enum(key+".stacking", string(e.Stacking), string(StackReplace), string(StackStack), string(StackIgnore))
		if err := vb.Build(); err != nil {
			return nil, err
		}

		c.entries[key] = e
	}
	return c, nil
}

// New instantiates a named condition. duration nil means until removed.
func (c *Catalog) New(name string, duration *int) (Condition, error) {
	key := Normalize(name)
	e, ok := c.entries[key]
	if !ok {
		return Condition{}, rerrors.NotFoundf("condition %q is not in the catalog", name)
	}

	cond := Condition{
		Name:         key,
		Description:  e.Description,
		Effect:       e.effect(),
		Stacking:     e.Stacking,
		EndsOnDamage: e.EndsOnDamage,
	}
	if duration != nil {
		cond.Duration = Rounds(*duration)
	}
	return cond, nil
}

// MustNew is New for names known to exist
func (c *Catalog) MustNew(name string, duration *int) Condition {
	cond, err := c.New(name, duration)
	if err != nil {
		panic(err)
	}
	return cond
}

// Has reports whether name is defined
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[Normalize(name)]
	return ok
}

// DisplayName returns the human readable name for a key
func (c *Catalog) DisplayName(name string) string {
	if e, ok := c.entries[Normalize(name)]; ok {
		return e.Name
	}
	return name
}

// Names lists every defined condition, sorted
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for k := range c.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e entry) effect() rules.Effect {
	p := e.Effect
	p.Label = e.Name
	switch e.Kind {
	case kindDying:
		return &Dying{Penalty: p}
	case kindStable:
		return &Stable{Penalty: p}
	default:
		return &p
	}
}
