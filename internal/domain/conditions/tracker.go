package conditions

import (
	"log"
	"sync"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/uuid"
)

const (
	NameDying  = "dying"
	NameStable = "stable"
	NameDead   = "dead"
)

// TrackerConfig holds the tracker's dependencies. Everything is optional.
type TrackerConfig struct {
	Catalog     *Catalog
	Publisher   events.Publisher
	Roller      dice.Roller
	IDGenerator uuid.Generator
	// DeathThreshold is the HP at which a dying creature dies; see DeathThreshold
	DeathThreshold int
}

// ApplyAction says what Apply did
type ApplyAction string

const (
	ActionAdded    ApplyAction = "added"
	ActionReplaced ApplyAction = "replaced"
	ActionStacked  ApplyAction = "stacked"
	ActionIgnored  ApplyAction = "ignored"
)

// ApplyResult reports the effect of one Apply call
type ApplyResult struct {
	Condition Condition
	Action    ApplyAction
	// Replaced is the instance that was overwritten, if any
	Replaced *Condition
}

// TickReport is everything that happened to one combatant in one tick
type TickReport struct {
	Ref  string
	Tick int

	Expired []Condition
	// Outcomes of per-round checks such as stabilization
	Outcomes []*rules.Outcome
	// Deltas the caller must apply to the holder's snapshot
	Deltas     []rules.Delta
	Stabilized bool
	Died       bool
}

type instance struct {
	cond      Condition
	appliedAt int
}

// Tracker holds the active conditions of every combatant in one combat.
// Durations count ticks of the holder, starting from the tick count at
// the time of application.
type Tracker struct {
	mu sync.RWMutex

	catalog        *Catalog
	publisher      events.Publisher
	roller         dice.Roller
	ids            uuid.Generator
	deathThreshold int

	active map[string][]*instance
	ticks  map[string]int
}

var _ rules.EffectSource = (*Tracker)(nil)

// NewTracker creates an empty tracker
func NewTracker(cfg *TrackerConfig) *Tracker {
	if cfg == nil {
		cfg = &TrackerConfig{}
	}
	t := &Tracker{
		catalog:        cfg.Catalog,
		publisher:      cfg.Publisher,
		roller:         cfg.Roller,
		ids:            cfg.IDGenerator,
		deathThreshold: cfg.DeathThreshold,
		active:         make(map[string][]*instance),
		ticks:          make(map[string]int),
	}
	if t.catalog == nil {
		t.catalog = DefaultCatalog()
	}
	if t.publisher == nil {
		t.publisher = events.Nop()
	}
	if t.ids == nil {
		t.ids = uuid.NewGoogleUUIDGenerator()
	}
	return t
}

// Catalog returns the catalog used to fill in effects and create stable/dead
func (t *Tracker) Catalog() *Catalog {
	return t.catalog
}

// Apply adds cond to ref according to its stacking rule. A condition
// without an Effect takes the catalog definition of the same name.
func (t *Tracker) Apply(ref string, cond Condition) (*ApplyResult, error) {
	cond.Name = Normalize(cond.Name)
	if cond.Effect == nil && cond.Name != "" {
		cond = t.fromCatalog(cond)
	}
	if cond.Stacking == "" {
		cond.Stacking = StackReplace
	}

	vb := rerrors.NewValidationBuilder()
	if ref == "" {
		vb.RequiredField("ref")
	}
	if cond.Name == "" {
		vb.RequiredField("name")
	}
	if cond.Duration != nil {
		vb.Min("duration", *cond.Duration, 0)
	}
	vb.Enum("stacking", string(cond.Stacking), string(StackReplace), string(StackStack), string(StackIgnore))
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if cond.ID == "" {
		cond.ID = t.ids.New()
	}
	cond = cond.clone()

	t.mu.Lock()
	result := t.apply(ref, cond)
	t.mu.Unlock()

	if result.Action != ActionIgnored {
		log.Printf("[CONDITIONS] %s %s on %s", result.Action, cond.Name, ref)
		t.publish(t.conditionEvent(events.ConditionApplied, ref, cond).
			WithContext("action", string(result.Action)))
	}
	return result, nil
}

func (t *Tracker) fromCatalog(cond Condition) Condition {
	def, err := t.catalog.New(cond.Name, nil)
	if err != nil {
		cond.Effect = &Penalty{Label: cond.Name}
		return cond
	}
	cond.Effect = def.Effect
	if cond.Description == "" {
		cond.Description = def.Description
	}
	if cond.Stacking == "" {
		cond.Stacking = def.Stacking
	}
	cond.EndsOnDamage = cond.EndsOnDamage || def.EndsOnDamage
	return cond
}

func (t *Tracker) apply(ref string, cond Condition) *ApplyResult {
	now := t.ticks[ref]
	list := t.active[ref]

	existing := -1
	for i, inst := range list {
		if inst.cond.Name == cond.Name {
			existing = i
			break
		}
	}

	if existing < 0 {
		t.active[ref] = append(list, &instance{cond: cond, appliedAt: now})
		return &ApplyResult{Condition: cond.clone(), Action: ActionAdded}
	}

	switch cond.Stacking {
	case StackIgnore:
		return &ApplyResult{Condition: list[existing].cond.clone(), Action: ActionIgnored}
	case StackStack:
		t.active[ref] = append(list, &instance{cond: cond, appliedAt: now})
		return &ApplyResult{Condition: cond.clone(), Action: ActionStacked}
	default:
		old := list[existing].cond.clone()
		list[existing] = &instance{cond: cond, appliedAt: now}
		return &ApplyResult{Condition: cond.clone(), Action: ActionReplaced, Replaced: &old}
	}
}

// Tick advances ref by one round. Per-round effects run first, then any
// condition whose duration has fully elapsed expires. holder is the
// current snapshot, used by the dying check.
func (t *Tracker) Tick(ref string, holder rules.Snapshot) (*TickReport, error) {
	t.mu.Lock()

	now := t.ticks[ref] + 1
	report := &TickReport{Ref: ref, Tick: now}
	var pending []*events.GameEvent

	hp := holder.HP
	list := t.active[ref]
	kept := make([]*instance, 0, len(list))
	for _, inst := range list {
		if ticker, ok := inst.cond.Effect.(Ticker); ok {
			current := holder
			current.HP = hp
			out, err := ticker.OnTick(current, t.roller)
			if err != nil {
				t.mu.Unlock()
				return nil, err
			}
			if out != nil {
				report.Outcomes = append(report.Outcomes, out)
				if next, ok := t.afterCheck(ref, inst, out, report, &hp, holder, now, &pending); ok {
					kept = append(kept, next)
					continue
				}
			}
		}

		if inst.cond.Duration != nil && now-inst.appliedAt >= *inst.cond.Duration {
			report.Expired = append(report.Expired, inst.cond.clone())
			pending = append(pending, t.conditionEvent(events.ConditionExpired, ref, inst.cond))
			continue
		}
		kept = append(kept, inst)
	}

	t.active[ref] = kept
	t.ticks[ref] = now
	t.mu.Unlock()

	for _, c := range report.Expired {
		log.Printf("[CONDITIONS] %s expired on %s", c.Name, ref)
	}
	for _, e := range pending {
		t.publish(e)
	}
	return report, nil
}

// afterCheck turns a per-round check into state. For the dying check it
// returns the instance that takes the checked one's place; other checks
// fall through to normal expiry.
func (t *Tracker) afterCheck(ref string, inst *instance, out *rules.Outcome, report *TickReport, hp *int, holder rules.Snapshot, now int, pending *[]*events.GameEvent) (*instance, bool) {
	if inst.cond.Name != NameDying {
		report.Deltas = append(report.Deltas, out.Deltas...)
		return nil, false
	}

	if out.Succeeded() {
		stable := t.successor(NameStable, inst.cond.Source)
		report.Stabilized = true
		log.Printf("[CONDITIONS] %s stabilized", ref)
		*pending = append(*pending,
			t.conditionEvent(events.ConditionRemoved, ref, inst.cond),
			events.NewGameEvent(events.Stabilized).WithTarget(ref),
			t.conditionEvent(events.ConditionApplied, ref, stable),
		)
		return &instance{cond: stable, appliedAt: now}, true
	}

	for _, d := range out.Deltas {
		report.Deltas = append(report.Deltas, d)
		if d.Kind == rules.DeltaHP && d.Target == ref {
			*hp += d.Amount
		}
	}

	if *hp <= DeathThreshold(t.deathThreshold, holder) {
		dead := t.successor(NameDead, inst.cond.Source)
		report.Died = true
		log.Printf("[CONDITIONS] %s died at %d hp", ref, *hp)
		*pending = append(*pending,
			t.conditionEvent(events.ConditionRemoved, ref, inst.cond),
			t.conditionEvent(events.ConditionApplied, ref, dead),
		)
		return &instance{cond: dead, appliedAt: now}, true
	}
	return inst, true
}

func (t *Tracker) successor(name, source string) Condition {
	cond, err := t.catalog.New(name, nil)
	if err != nil {
		cond = Condition{Name: name, Stacking: StackIgnore, Effect: &Penalty{Label: name, Helpless: true, CannotAct: true}}
	}
	cond.ID = t.ids.New()
	cond.Source = source
	return cond
}

// EffectsFor returns copies of ref's active conditions in application order
func (t *Tracker) EffectsFor(ref string) []Condition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := t.active[ref]
	out := make([]Condition, 0, len(list))
	for _, inst := range list {
		out = append(out, inst.cond.clone())
	}
	return out
}

// ActiveEffects implements rules.EffectSource
func (t *Tracker) ActiveEffects(ref string) []rules.Effect {
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := t.active[ref]
	out := make([]rules.Effect, 0, len(list))
	for _, inst := range list {
		if inst.cond.Effect != nil {
			out = append(out, inst.cond.Effect)
		}
	}
	return out
}

// Has reports whether ref has a condition named name
func (t *Tracker) Has(ref, name string) bool {
	name = Normalize(name)

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, inst := range t.active[ref] {
		if inst.cond.Name == name {
			return true
		}
	}
	return false
}

// Remaining returns the rounds left on the first instance of name, or
// false if it is absent or permanent.
func (t *Tracker) Remaining(ref, name string) (int, bool) {
	name = Normalize(name)

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, inst := range t.active[ref] {
		if inst.cond.Name == name && inst.cond.Duration != nil {
			return *inst.cond.Duration - (t.ticks[ref] - inst.appliedAt), true
		}
	}
	return 0, false
}

// Remove drops every instance of name from ref and returns how many went
func (t *Tracker) Remove(ref, name string) int {
	name = Normalize(name)
	return t.removeWhere(ref, func(c Condition) bool { return c.Name == name })
}

// RemoveByID drops a single instance
func (t *Tracker) RemoveByID(ref, id string) bool {
	return t.removeWhere(ref, func(c Condition) bool { return c.ID == id }) > 0
}

// BreakOnDamage removes conditions that end when the holder is hurt
func (t *Tracker) BreakOnDamage(ref string) int {
	return t.removeWhere(ref, func(c Condition) bool { return c.EndsOnDamage })
}

// Clear removes everything from ref and forgets its tick count
func (t *Tracker) Clear(ref string) int {
	n := t.removeWhere(ref, func(Condition) bool { return true })

	t.mu.Lock()
	delete(t.active, ref)
	delete(t.ticks, ref)
	t.mu.Unlock()
	return n
}

// Ticks returns how many times ref has been ticked
func (t *Tracker) Ticks(ref string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ticks[ref]
}

func (t *Tracker) removeWhere(ref string, match func(Condition) bool) int {
	t.mu.Lock()
	var removed []Condition
	list := t.active[ref]
	kept := list[:0]
	for _, inst := range list {
		if match(inst.cond) {
			removed = append(removed, inst.cond)
			continue
		}
		kept = append(kept, inst)
	}
	t.active[ref] = kept
	t.mu.Unlock()

	for _, c := range removed {
		log.Printf("[CONDITIONS] removed %s from %s", c.Name, ref)
		t.publish(t.conditionEvent(events.ConditionRemoved, ref, c))
	}
	return len(removed)
}

func (t *Tracker) conditionEvent(eventType events.EventType, ref string, c Condition) *events.GameEvent {
	e := events.NewGameEvent(eventType).
		WithTarget(ref).
		WithContext("condition", c.Name).
		WithContext("condition_id", c.ID)
	if c.Source != "" {
		e.WithContext("source", c.Source)
	}
	if c.Duration != nil {
		e.WithContext("rounds", *c.Duration)
	}
	return e
}

func (t *Tracker) publish(e *events.GameEvent) {
	if err := t.publisher.Publish(e); err != nil {
		log.Printf("[CONDITIONS] failed to publish %s: %v", e.Type, err)
	}
}

func (c Condition) clone() Condition {
	if c.Duration != nil {
		c.Duration = Rounds(*c.Duration)
	}
	return c
}
