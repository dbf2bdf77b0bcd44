package combat

import (
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/conditions"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// ApplyHP changes snap's hit points in place. Damage comes out of temporary
// hit points first; healing stops at MaxHP when MaxHP is set. It returns the
// change to HP.
func ApplyHP(snap *rules.Snapshot, amount int) int {
	before := snap.HP
	switch {
	case amount < 0:
		damage := -amount
		if snap.TempHP > 0 {
			absorbed := min(snap.TempHP, damage)
			snap.TempHP -= absorbed
			damage -= absorbed
		}
		snap.HP -= damage
	case amount > 0:
		snap.HP += amount
		if snap.MaxHP > 0 && snap.HP > snap.MaxHP {
			snap.HP = snap.MaxHP
		}
	}
	return snap.HP - before
}

// ApplyOutcome applies an outcome computed elsewhere, for example one held
// while narration was generated. The actor is taken from the outcome.
func (c *Combat) ApplyOutcome(o *rules.Outcome) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if o == nil {
		return rerrors.InvalidArgument("outcome is required")
	}
	if err := c.applyOutcome(o.Actor, o); err != nil {
		return err
	}
	c.checkEnd()
	return nil
}

func (c *Combat) applyOutcome(actorID string, o *rules.Outcome) error {
	for _, d := range o.Deltas {
		if _, ok := c.combatants[d.Target]; !ok {
			return rerrors.InvalidArgumentf("unknown delta target %q", d.Target)
		}
	}

	for _, d := range o.Deltas {
		cmb := c.combatants[d.Target]
		switch d.Kind {
		case rules.DeltaHP:
			c.changeHP(cmb, d.Amount)
		case rules.DeltaTempHP:
			// temporary hit points do not stack
			if d.Amount > cmb.Snapshot.TempHP {
				cmb.Snapshot.TempHP = d.Amount
			}
		case rules.DeltaApplyCondition:
			cond, err := c.attachment(d)
			if err != nil {
				return err
			}
			if cond.Source == "" {
				cond.Source = actorID
			}
			if _, err := c.tracker.Apply(cmb.ID, cond); err != nil {
				return err
			}
		case rules.DeltaRemoveCondition:
			c.tracker.Remove(cmb.ID, d.Condition)
		case rules.DeltaFlee:
			if e := c.entry(cmb.ID); e != nil && !e.Fled {
				e.Fled = true
				c.logf("%s flees", cmb.displayName())
			}
		default:
			return rerrors.InvalidArgumentf("unknown delta kind %q", d.Kind)
		}
	}
	return nil
}

func (c *Combat) attachment(d rules.Delta) (conditions.Condition, error) {
	if cond, ok := d.Attach.(conditions.Condition); ok {
		return cond, nil
	}
	name := d.Condition
	if d.Attach != nil {
		name = d.Attach.ConditionName()
	}
	return c.tracker.Catalog().New(name, nil)
}

func (c *Combat) changeHP(cmb *Combatant, amount int) {
	if amount == 0 {
		return
	}
	id := cmb.ID
	if amount > 0 && c.tracker.Has(id, conditions.NameDead) {
		return
	}

	wasDown := cmb.Snapshot.IsDown()
	ApplyHP(cmb.Snapshot, amount)

	if amount < 0 {
		c.tracker.BreakOnDamage(id)
		// a stable creature that takes damage starts dying again
		if c.tracker.Has(id, conditions.NameStable) && cmb.Snapshot.HP < 0 {
			c.tracker.Remove(id, conditions.NameStable)
		}
	}
	c.syncVitals(cmb)

	if !wasDown && cmb.Snapshot.IsDown() {
		c.logf("%s falls", cmb.displayName())
		c.publish(events.NewGameEvent(events.CombatantDown).
			WithTarget(id).
			WithContext("hp", cmb.Snapshot.HP))
	}
}

// syncVitals keeps the dying, stable, disabled and dead conditions in step
// with hit points.
func (c *Combat) syncVitals(cmb *Combatant) {
	id := cmb.ID
	hp := cmb.Snapshot.HP
	if c.tracker.Has(id, conditions.NameDead) {
		return
	}

	threshold := conditions.DeathThreshold(c.policy.DeathThreshold, *cmb.Snapshot)
	switch {
	case hp <= threshold:
		c.tracker.Remove(id, conditions.NameDying)
		c.tracker.Remove(id, conditions.NameStable)
		c.tracker.Remove(id, nameDisabled)
		c.ensure(id, conditions.NameDead)
		c.logf("%s dies", cmb.displayName())
	case hp < 0:
		c.tracker.Remove(id, nameDisabled)
		if !c.tracker.Has(id, conditions.NameStable) {
			c.ensure(id, conditions.NameDying)
		}
	case hp == 0:
		c.tracker.Remove(id, conditions.NameDying)
		c.tracker.Remove(id, conditions.NameStable)
		c.ensure(id, nameDisabled)
	default:
		c.tracker.Remove(id, conditions.NameDying)
		c.tracker.Remove(id, conditions.NameStable)
		c.tracker.Remove(id, nameDisabled)
	}
}

const nameDisabled = "disabled"

func (c *Combat) ensure(id, name string) {
	if c.tracker.Has(id, name) {
		return
	}
	cond, err := c.tracker.Catalog().New(name, nil)
	if err != nil {
		cond = conditions.Condition{Name: name}
	}
	if _, err := c.tracker.Apply(id, cond); err != nil {
		c.logf("failed to apply %s to %s: %v", name, id, err)
	}
}
