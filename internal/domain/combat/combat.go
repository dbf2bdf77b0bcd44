// Package combat runs one encounter: initiative, turn order, action
// resolution, outcome application and end of combat detection. A Combat
// is owned by a single caller and is not safe for concurrent use.
package combat

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/conditions"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/uuid"
)

// MaxLogEntries bounds the combat log
const MaxLogEntries = 50

// Config holds the dependencies of a Combat. Only Roller is commonly set;
// the rest default to fresh instances wired to each other.
type Config struct {
	ID        string
	Roller    dice.Roller
	Tracker   *conditions.Tracker
	Resolver  *rules.Resolver
	Publisher events.Publisher
	Policy    *Policy
}

// Combat is the state machine for one encounter
type Combat struct {
	id        string
	roller    dice.Roller
	tracker   *conditions.Tracker
	resolver  *rules.Resolver
	publisher events.Publisher
	policy    Policy

	state  State
	reason Reason
	round  int
	turn   int

	order      []*InitiativeEntry
	combatants map[string]*Combatant
	nextSeq    int
	log        []string
}

// New creates a combat in the not_started state
func New(cfg *Config) (*Combat, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	policy := DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	c := &Combat{
		id:         cfg.ID,
		roller:     cfg.Roller,
		tracker:    cfg.Tracker,
		resolver:   cfg.Resolver,
		publisher:  cfg.Publisher,
		policy:     policy,
		state:      StateNotStarted,
		combatants: make(map[string]*Combatant),
	}
	if c.id == "" {
		c.id = uuid.NewGoogleUUIDGenerator().New()
	}
	if c.roller == nil {
		c.roller = dice.NewRandomRoller()
	}
	if c.publisher == nil {
		c.publisher = events.Nop()
	}
	if c.tracker == nil {
		c.tracker = conditions.NewTracker(&conditions.TrackerConfig{
			Publisher:      c.publisher,
			Roller:         c.roller,
			DeathThreshold: policy.DeathThreshold,
		})
	}
	if c.resolver == nil {
		c.resolver = rules.NewResolver(c.tracker)
	}
	return c, nil
}

// ID returns the combat id
func (c *Combat) ID() string { return c.id }

// Status returns the lifecycle state and, once resolved, the reason
func (c *Combat) Status() (State, Reason) { return c.state, c.reason }

// Round returns the current round, 0 before Start
func (c *Combat) Round() int { return c.round }

// Policy returns the rules the combat runs under
func (c *Combat) Policy() Policy { return c.policy }

// Tracker exposes the condition tracker for queries
func (c *Combat) Tracker() *conditions.Tracker { return c.tracker }

// Resolver exposes the modifier resolver bound to this combat's conditions
func (c *Combat) Resolver() *rules.Resolver { return c.resolver }

// Current returns the id of the turn holder, or "" before Start
func (c *Combat) Current() string {
	if len(c.order) == 0 || c.state == StateNotStarted {
		return ""
	}
	return c.order[c.turn].CombatantID
}

// Combatant returns a roster entry by id
func (c *Combat) Combatant(id string) (*Combatant, bool) {
	cmb, ok := c.combatants[id]
	return cmb, ok
}

// EffectsFor returns the active conditions of a combatant
func (c *Combat) EffectsFor(id string) []conditions.Condition {
	return c.tracker.EffectsFor(id)
}

// Start rolls initiative for the roster, sorts it and hands the first
// turn to the top of the order.
func (c *Combat) Start(roster []*Combatant) error {
	switch c.state {
	case StateNotStarted:
	case StateResolved:
		return rerrors.CombatResolved(string(c.reason))
	default:
		return rerrors.InvalidArgument("combat has already started")
	}

	if len(roster) == 0 {
		return rerrors.NewValidationBuilder().RequiredField("roster").Build()
	}
	seen := make(map[string]bool, len(roster))
	for _, cmb := range roster {
		if cmb == nil {
			return rerrors.InvalidArgument("roster contains a nil combatant")
		}
		if err := cmb.validate(); err != nil {
			return rerrors.Wrapf(err, "invalid combatant %q", cmb.ID)
		}
		if seen[cmb.ID] {
			return rerrors.AlreadyExistsf("combatant %q appears twice in the roster", cmb.ID)
		}
		seen[cmb.ID] = true
	}

	c.state = StateRollingInitiative
	order := make([]*InitiativeEntry, 0, len(roster))
	for _, cmb := range roster {
		cmb.Snapshot.ID = cmb.ID
		entry := c.newEntry(cmb)
		if err := c.rollInitiative(cmb, entry); err != nil {
			c.state = StateNotStarted
			return err
		}
		order = append(order, entry)
	}
	sortEntries(order)

	for _, cmb := range roster {
		c.combatants[cmb.ID] = cmb
	}
	c.order = order
	c.round = 1
	c.turn = 0
	c.state = StateInProgress

	c.logf("Combat started: %s", c.orderSummary())
	log.Printf("[COMBAT] %s started with %d combatants", c.id, len(order))
	c.publish(events.NewGameEvent(events.CombatStarted).WithContext("combat_id", c.id))
	c.publish(events.NewGameEvent(events.RoundStarted).WithContext("round", c.round))

	for _, cmb := range roster {
		c.syncVitals(cmb)
	}

	report := &TurnReport{}
	if err := c.settle(report); err != nil {
		return err
	}
	c.startTurn()
	return nil
}

// AdvanceTurn ends the current turn and passes it to the next entry able
// to act, wrapping into a new round at the end of the order. The ending
// combatant's conditions tick; so do those of every entry passed over.
func (c *Combat) AdvanceTurn() (*TurnReport, error) {
	if err := c.requireInProgress(); err != nil {
		return nil, err
	}

	ending := c.order[c.turn]
	report := &TurnReport{Previous: ending.CombatantID}
	ticked := map[string]bool{ending.CombatantID: true}
	if err := c.tick(ending, report); err != nil {
		return nil, err
	}

	c.turn++
	if err := c.settleFrom(report, ticked); err != nil {
		return nil, err
	}

	report.Round = c.round
	report.Current = c.order[c.turn].CombatantID
	if c.checkEnd() {
		report.Resolved = true
		report.Reason = c.reason
		return report, nil
	}
	c.startTurn()
	return report, nil
}

// AddCombatant rolls initiative for a newcomer and inserts it without
// changing whose turn it is.
func (c *Combat) AddCombatant(cmb *Combatant) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if cmb == nil {
		return rerrors.InvalidArgument("combatant is required")
	}
	if err := cmb.validate(); err != nil {
		return rerrors.Wrapf(err, "invalid combatant %q", cmb.ID)
	}
	if _, exists := c.combatants[cmb.ID]; exists {
		return rerrors.AlreadyExistsf("combatant %q is already in combat", cmb.ID)
	}

	cmb.Snapshot.ID = cmb.ID
	entry := c.newEntry(cmb)
	if err := c.rollInitiative(cmb, entry); err != nil {
		return err
	}

	pos := insertPosition(c.order, entry)
	c.order = append(c.order, nil)
	copy(c.order[pos+1:], c.order[pos:])
	c.order[pos] = entry
	if pos <= c.turn {
		c.turn++
	}
	c.combatants[cmb.ID] = cmb

	c.logf("%s joins the fight with initiative %d", cmb.displayName(), entry.Initiative)
	c.publish(events.NewGameEvent(events.CombatantJoined).
		WithActor(cmb.ID).
		WithContext("initiative", entry.Initiative))
	return nil
}

// RemoveCombatant takes a combatant out of the order along with its
// conditions. Removing anyone but the turn holder leaves the turn where it
// is; removing the holder passes the turn to the next entry able to act
// without ticking anyone.
func (c *Combat) RemoveCombatant(id string) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	cmb, ok := c.combatants[id]
	if !ok {
		return rerrors.NotFoundf("combatant %q is not in combat", id)
	}
	if len(c.order) == 1 {
		return rerrors.InvalidArgument("cannot remove the last combatant")
	}

	pos := -1
	for i, e := range c.order {
		if e.CombatantID == id {
			pos = i
			break
		}
	}
	wasCurrent := pos == c.turn
	c.order = append(c.order[:pos], c.order[pos+1:]...)
	if pos < c.turn {
		c.turn--
	}
	delete(c.combatants, id)
	c.tracker.Clear(id)

	c.logf("%s leaves the fight", cmb.displayName())
	c.publish(events.NewGameEvent(events.CombatantLeft).WithActor(id))

	if c.checkEnd() {
		if c.turn >= len(c.order) {
			c.turn = 0
		}
		return nil
	}
	if wasCurrent {
		if err := c.settle(&TurnReport{}); err != nil {
			return err
		}
		c.startTurn()
	}
	return nil
}

// End resolves the combat on request. Only fled and aborted are accepted;
// victory and defeat are detected, never declared.
func (c *Combat) End(reason Reason) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if reason != ReasonFled && reason != ReasonAborted {
		return rerrors.NewValidationBuilder().
			Enum("reason", string(reason), string(ReasonFled), string(ReasonAborted)).
			Build()
	}
	c.resolve(reason)
	return nil
}

// State returns a deep copied, read-only projection
func (c *Combat) State() CombatState {
	st := CombatState{
		ID:         c.id,
		State:      c.state,
		Reason:     c.reason,
		Round:      c.round,
		TurnIndex:  c.turn,
		Current:    c.Current(),
		Order:      make([]InitiativeEntry, 0, len(c.order)),
		Combatants: make([]CombatantState, 0, len(c.order)),
		Log:        append([]string(nil), c.log...),
	}

	for _, e := range c.order {
		st.Order = append(st.Order, *e)

		cmb := c.combatants[e.CombatantID]
		cs := CombatantState{
			ID:     cmb.ID,
			Name:   cmb.displayName(),
			Side:   cmb.Side,
			HP:     cmb.Snapshot.HP,
			MaxHP:  cmb.Snapshot.MaxHP,
			TempHP: cmb.Snapshot.TempHP,
			Down:   cmb.Snapshot.IsDown(),
			Fled:   e.Fled,
		}
		for _, cond := range c.tracker.EffectsFor(cmb.ID) {
			cs.Conditions = append(cs.Conditions, cond.Name)
		}
		st.Combatants = append(st.Combatants, cs)
	}
	return st
}

// Log returns a copy of the combat log, newest last
func (c *Combat) Log() []string {
	return append([]string(nil), c.log...)
}

func (c *Combat) requireInProgress() error {
	switch c.state {
	case StateInProgress:
		return nil
	case StateResolved:
		return rerrors.CombatResolved(string(c.reason))
	default:
		return rerrors.CombatNotStarted()
	}
}

func (c *Combat) newEntry(cmb *Combatant) *InitiativeEntry {
	c.nextSeq++
	return &InitiativeEntry{
		CombatantID: cmb.ID,
		Name:        cmb.displayName(),
		Side:        cmb.Side,
		seq:         c.nextSeq,
	}
}

func (c *Combat) entry(id string) *InitiativeEntry {
	for _, e := range c.order {
		if e.CombatantID == id {
			return e
		}
	}
	return nil
}

// settle moves the turn forward from the current index to the first entry
// that can take a turn.
func (c *Combat) settle(report *TurnReport) error {
	return c.settleFrom(report, make(map[string]bool))
}

func (c *Combat) settleFrom(report *TurnReport, ticked map[string]bool) error {
	wrapped := false
	for step := 0; step < len(c.order); step++ {
		if c.turn >= len(c.order) {
			if err := c.newRound(report); err != nil {
				return err
			}
			wrapped = true
		}

		next := c.order[c.turn]
		if c.canTakeTurn(next) {
			return nil
		}

		report.Skipped = append(report.Skipped, next.CombatantID)
		c.publish(events.NewGameEvent(events.TurnSkipped).WithActor(next.CombatantID))
		if !ticked[next.CombatantID] {
			ticked[next.CombatantID] = true
			if err := c.tick(next, report); err != nil {
				return err
			}
		}
		c.turn++
	}

	// nobody can act; park on the top of the order. A call wraps the round
	// at most once.
	if c.turn >= len(c.order) {
		if wrapped {
			c.turn = 0
			return nil
		}
		return c.newRound(report)
	}
	return nil
}

func (c *Combat) newRound(report *TurnReport) error {
	c.round++
	c.turn = 0
	report.NewRound = true

	if c.policy.RerollInitiativeEachRound {
		for _, e := range c.order {
			if err := c.rollInitiative(c.combatants[e.CombatantID], e); err != nil {
				return err
			}
		}
		sortEntries(c.order)
		c.logf("Initiative rerolled: %s", c.orderSummary())
	}

	log.Printf("[COMBAT] %s round %d", c.id, c.round)
	c.publish(events.NewGameEvent(events.RoundStarted).WithContext("round", c.round))
	return nil
}

func (c *Combat) startTurn() {
	current := c.order[c.turn]
	c.publish(events.NewGameEvent(events.TurnStarted).
		WithActor(current.CombatantID).
		WithContext("round", c.round))
}

func (c *Combat) tick(e *InitiativeEntry, report *TurnReport) error {
	cmb := c.combatants[e.CombatantID]
	rep, err := c.tracker.Tick(cmb.ID, *cmb.Snapshot)
	if err != nil {
		return rerrors.Wrapf(err, "failed to tick conditions for %s", cmb.ID)
	}
	report.Ticks = append(report.Ticks, rep)

	for _, cond := range rep.Expired {
		c.logf("%s is no longer %s", cmb.displayName(), c.tracker.Catalog().DisplayName(cond.Name))
	}
	for _, d := range rep.Deltas {
		if d.Kind == rules.DeltaHP && d.Target == cmb.ID {
			ApplyHP(cmb.Snapshot, d.Amount)
		}
	}
	switch {
	case rep.Stabilized:
		c.logf("%s stabilizes", cmb.displayName())
	case rep.Died:
		c.logf("%s dies", cmb.displayName())
	case len(rep.Deltas) > 0:
		c.logf("%s is dying (%d HP)", cmb.displayName(), cmb.Snapshot.HP)
	}
	c.syncVitals(cmb)
	return nil
}

// canTakeTurn decides whether an entry gets a turn or is skipped
func (c *Combat) canTakeTurn(e *InitiativeEntry) bool {
	if e.Fled {
		return false
	}
	if c.policy.StableOccupiesTurn && c.tracker.Has(e.CombatantID, conditions.NameStable) {
		return true
	}
	return c.canAct(e.CombatantID)
}

// canAct reports whether a combatant can take actions at all
func (c *Combat) canAct(id string) bool {
	cmb := c.combatants[id]
	if cmb.Snapshot.IsDown() {
		return false
	}
	if e := c.entry(id); e != nil && e.Fled {
		return false
	}
	return !c.resolver.Flags(id).Incapacitated()
}

// checkEnd resolves the combat when one side has nobody left standing.
// Victory is checked first, so a mutual wipe counts as a victory.
func (c *Combat) checkEnd() bool {
	if c.state != StateInProgress {
		return c.state == StateResolved
	}

	hostile, party := 0, 0
	for _, e := range c.order {
		if e.Fled || c.combatants[e.CombatantID].Snapshot.IsDown() {
			continue
		}
		switch {
		case e.Side.Hostile():
			hostile++
		case e.Side.Party():
			party++
		}
	}

	switch {
	case hostile == 0:
		c.resolve(ReasonPartyVictory)
	case party == 0:
		c.resolve(ReasonPartyDefeat)
	default:
		return false
	}
	return true
}

func (c *Combat) resolve(reason Reason) {
	c.state = StateResolved
	c.reason = reason
	c.logf("Combat ended: %s", reason)
	log.Printf("[COMBAT] %s resolved: %s after %d rounds", c.id, reason, c.round)
	c.publish(events.NewGameEvent(events.CombatResolved).
		WithContext("combat_id", c.id).
		WithContext("reason", string(reason)).
		WithContext("round", c.round))
}

func (c *Combat) logf(format string, args ...any) {
	entry := fmt.Sprintf("Round %d: %s", c.round, fmt.Sprintf(format, args...))
	c.log = append(c.log, entry)
	if len(c.log) > MaxLogEntries {
		c.log = append([]string(nil), c.log[len(c.log)-MaxLogEntries:]...)
	}
}

func (c *Combat) orderSummary() string {
	s := ""
	for i, e := range c.order {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %d", e.Name, e.Initiative)
	}
	return s
}

func (c *Combat) name(id string) string {
	if cmb, ok := c.combatants[id]; ok {
		return cmb.displayName()
	}
	return id
}

func (c *Combat) publish(e *events.GameEvent) {
	if err := c.publisher.Publish(e); err != nil {
		log.Printf("[COMBAT] failed to publish %s: %v", e.Type, err)
	}
}
