package combat

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/conditions"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

// ActionKind selects how an ActionRequest is resolved
type ActionKind string

const (
	ActionAttack         ActionKind = "attack"
	ActionCheck          ActionKind = "check"
	ActionSave           ActionKind = "save"
	ActionManeuver       ActionKind = "maneuver"
	ActionOpposed        ActionKind = "opposed"
	ActionApplyCondition ActionKind = "apply_condition"
	ActionHeal           ActionKind = "heal"
	ActionDamage         ActionKind = "damage"
	ActionDelay          ActionKind = "delay"
	ActionWithdraw       ActionKind = "withdraw"
)

var actionKinds = []string{
	string(ActionAttack), string(ActionCheck), string(ActionSave), string(ActionManeuver),
	string(ActionOpposed), string(ActionApplyCondition), string(ActionHeal), string(ActionDamage),
	string(ActionDelay), string(ActionWithdraw),
}

// ActionRequest is what the turn holder wants to do. Which fields matter
// depends on Kind; the constructors below fill in the usual ones.
type ActionRequest struct {
	Kind     ActionKind
	TargetID string

	// Weapon names the attack profile entry; empty uses the first
	Weapon string
	// Maneuver labels a combat maneuver in the log, such as "trip"
	Maneuver string
	Mode     dice.Mode

	Situational       []rules.Modifier
	DamageSituational []rules.Modifier

	// Check, Key and Ability describe a check; OpposedKey is the
	// defender's skill in an opposed check
	Check      rules.CheckKind
	Key        string
	Ability    rules.Ability
	OpposedKey string
	DC         int
	// Take is 10 or 20 to take that result instead of rolling
	Take int

	Save rules.Save
	// Condition lands on a failed save, a successful maneuver or opposed
	// check, or directly for ActionApplyCondition
	Condition *conditions.Condition

	// Amount or Dice size heals and direct damage
	Amount int
	Dice   string

	// Initiative is the count a delaying combatant moves to
	Initiative int
}

// Attack builds a weapon attack against target
func Attack(targetID, weapon string) ActionRequest {
	return ActionRequest{Kind: ActionAttack, TargetID: targetID, Weapon: weapon}
}

// Check builds a skill check (or an ability check when key is empty)
func Check(key string, dc int) ActionRequest {
	return ActionRequest{Kind: ActionCheck, Key: key, DC: dc}
}

// SavingThrow makes target save against dc; onFail may be nil
func SavingThrow(targetID string, save rules.Save, dc int, onFail *conditions.Condition) ActionRequest {
	return ActionRequest{Kind: ActionSave, TargetID: targetID, Save: save, DC: dc, Condition: onFail}
}

// Maneuver builds a combat maneuver; onSuccess may be nil
func Maneuver(targetID, name string, onSuccess *conditions.Condition) ActionRequest {
	return ActionRequest{Kind: ActionManeuver, TargetID: targetID, Maneuver: name, Condition: onSuccess}
}

// Opposed pits the actor's key skill against the target's opposedKey skill
func Opposed(targetID, key, opposedKey string, onSuccess *conditions.Condition) ActionRequest {
	return ActionRequest{Kind: ActionOpposed, TargetID: targetID, Key: key, OpposedKey: opposedKey, Condition: onSuccess}
}

// ApplyCondition puts cond on target without a roll
func ApplyCondition(targetID string, cond conditions.Condition) ActionRequest {
	return ActionRequest{Kind: ActionApplyCondition, TargetID: targetID, Condition: &cond}
}

// Heal restores amount HP, or rolls notation when amount is 0
func Heal(targetID string, amount int, notation string) ActionRequest {
	return ActionRequest{Kind: ActionHeal, TargetID: targetID, Amount: amount, Dice: notation}
}

// Damage deals amount damage directly, or rolls notation when amount is 0
func Damage(targetID string, amount int, notation string) ActionRequest {
	return ActionRequest{Kind: ActionDamage, TargetID: targetID, Amount: amount, Dice: notation}
}

// Delay moves the actor to a lower initiative count
func Delay(initiative int) ActionRequest {
	return ActionRequest{Kind: ActionDelay, Initiative: initiative}
}

// Withdraw takes the actor out of the fight
func Withdraw() ActionRequest {
	return ActionRequest{Kind: ActionWithdraw}
}

func (r *ActionRequest) validate() error {
	vb := rerrors.NewValidationBuilder()
	vb.Enum("kind", string(r.Kind), actionKinds...)

	switch r.Kind {
	case ActionAttack, ActionManeuver, ActionOpposed:
		if r.TargetID == "" {
			vb.RequiredField("target_id")
		}
	case ActionSave:
		vb.Enum("save", string(r.Save), string(rules.Fortitude), string(rules.Reflex), string(rules.Will))
	case ActionCheck:
		if r.Take != 0 && r.Take != 10 && r.Take != 20 {
			vb.InvalidField("take", "must be 10 or 20")
		}
	case ActionApplyCondition:
		if r.Condition == nil {
			vb.RequiredField("condition")
		}
	case ActionHeal, ActionDamage:
		vb.Min("amount", r.Amount, 0)
		if r.Amount == 0 && r.Dice == "" {
			vb.RequiredField("amount")
		}
	}
	if r.Kind == ActionOpposed && r.Key == "" {
		vb.RequiredField("key")
	}
	return vb.Build()
}

// ResolveAction resolves an action by the turn holder, applies the
// resulting deltas to the snapshots involved and returns the outcome.
func (c *Combat) ResolveAction(actorID string, req ActionRequest) (*rules.Outcome, error) {
	if err := c.requireInProgress(); err != nil {
		return nil, err
	}

	actor, ok := c.combatants[actorID]
	if !ok {
		return nil, rerrors.InvalidArgumentf("unknown combatant %q", actorID)
	}
	if current := c.Current(); actorID != current {
		return nil, rerrors.NotYourTurn(actorID, current)
	}
	if !c.canAct(actorID) {
		return nil, rerrors.InvalidArgumentf("%s cannot act", actorID).WithMeta("actor_id", actorID)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.TargetID != "" {
		if _, ok := c.combatants[req.TargetID]; !ok {
			return nil, rerrors.InvalidArgumentf("unknown target %q", req.TargetID)
		}
	}

	out, err := c.dispatch(actor, req)
	if err != nil {
		return nil, err
	}
	adjusted := c.resolver.AdjustOutcome(*out)
	out = &adjusted

	if err := c.applyOutcome(actorID, out); err != nil {
		return nil, err
	}

	c.logf("%s", c.describe(actor, req, out))
	c.publish(events.NewGameEvent(events.ActionResolved).
		WithActor(actorID).
		WithTarget(out.Subject).
		WithContext("kind", string(req.Kind)).
		WithContext("result", string(out.Result)).
		WithContext("total", out.Total))

	c.checkEnd()
	return out, nil
}

func (c *Combat) dispatch(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	switch req.Kind {
	case ActionAttack:
		return c.attack(actor, c.combatants[req.TargetID], req)
	case ActionCheck:
		return c.check(actor, req)
	case ActionSave:
		return c.save(actor, req)
	case ActionManeuver:
		return c.maneuver(actor, c.combatants[req.TargetID], req)
	case ActionOpposed:
		return c.opposed(actor, c.combatants[req.TargetID], req)
	case ActionApplyCondition:
		return c.applyCondition(actor, req)
	case ActionHeal, ActionDamage:
		return c.hitPoints(actor, req)
	case ActionDelay:
		return c.delay(actor, req)
	default:
		return &rules.Outcome{
			Kind:    rules.KindEffect,
			Result:  rules.ResultSuccess,
			Actor:   actor.ID,
			Subject: actor.ID,
			Deltas:  []rules.Delta{{Target: actor.ID, Kind: rules.DeltaFlee}},
		}, nil
	}
}

func (c *Combat) attack(actor, target *Combatant, req ActionRequest) (*rules.Outcome, error) {
	w, err := actor.weapon(req.Weapon)
	if err != nil {
		return nil, err
	}
	dmg, err := w.damage()
	if err != nil {
		return nil, err
	}
	kind := w.kind()

	situational := append([]rules.Modifier(nil), req.Situational...)
	if w.AttackBonus != 0 {
		situational = append(situational, rules.Modifier{Source: w.Name, Kind: rules.ModBase, Value: w.AttackBonus})
	}

	mods := c.resolver.Resolve(*actor.Snapshot, rules.Context{
		Kind:        rules.KindAttack,
		Attack:      kind,
		Ability:     w.Ability,
		Situational: situational,
	})
	def := c.resolver.Defense(*target.Snapshot, kind)

	roll, err := c.roller.RollD20(0, req.Mode)
	if err != nil {
		return nil, rerrors.Wrap(err, "failed to roll attack")
	}

	return rules.ResolveAttack(rules.AttackInput{
		AttackerID:       actor.ID,
		TargetID:         target.ID,
		Roll:             roll,
		Modifiers:        mods,
		Defense:          def,
		ThreatRange:      w.ThreatRange,
		ConfirmCriticals: c.policy.ConfirmCriticals,
		Damage:           dmg,
		DamageModifiers:  c.damageModifiers(actor, w, req),
		CritPolicy:       c.policy.CritPolicy,
		Multiplier:       w.Multiplier,
		Roller:           c.roller,
	})
}

// damageModifiers adds Str to melee damage unless the weapon says
// otherwise. Ranged weapons add no ability unless one is named.
func (c *Combat) damageModifiers(actor *Combatant, w *Weapon, req ActionRequest) rules.Breakdown {
	situational := append([]rules.Modifier(nil), req.DamageSituational...)
	if w.DamageBonus != 0 {
		situational = append(situational, rules.Modifier{Source: w.Name, Kind: rules.ModBase, Value: w.DamageBonus})
	}

	ability := w.DamageAbility
	if ability == "" && w.kind() == rules.AttackMelee {
		ability = rules.Strength
	}

	bd := c.resolver.Resolve(*actor.Snapshot, rules.Context{
		Kind:        rules.KindDamage,
		Attack:      w.kind(),
		Ability:     ability,
		Situational: situational,
	})
	if ability == "" {
		bd = withoutKind(bd, rules.ModAbility)
	}
	return bd
}

func (c *Combat) check(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	kind := req.Check
	if kind == "" {
		kind = rules.KindAbility
		if req.Key != "" {
			kind = rules.KindSkill
		}
	}

	mods := c.resolver.Resolve(*actor.Snapshot, rules.Context{
		Kind:        kind,
		Key:         req.Key,
		Ability:     req.Ability,
		Situational: req.Situational,
	})

	var roll *dice.RollResult
	if req.Take > 0 {
		roll = dice.Take(req.Take, 0)
	} else {
		var err error
		roll, err = c.roller.RollD20(0, req.Mode)
		if err != nil {
			return nil, rerrors.Wrap(err, "failed to roll check")
		}
	}

	out := rules.ResolveCheck(kind, roll, mods, req.DC)
	out.Actor = actor.ID
	out.Subject = actor.ID
	return out, nil
}

func (c *Combat) save(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	subject := actor
	if req.TargetID != "" {
		subject = c.combatants[req.TargetID]
	}

	mods := c.resolver.Resolve(*subject.Snapshot, rules.Context{
		Kind:        rules.KindSave,
		Key:         string(req.Save),
		Situational: req.Situational,
	})
	roll, err := c.roller.RollD20(0, req.Mode)
	if err != nil {
		return nil, rerrors.Wrap(err, "failed to roll save")
	}

	out := rules.ResolveCheck(rules.KindSave, roll, mods, req.DC)
	out.Actor = actor.ID
	out.Subject = subject.ID
	if !out.Succeeded() && req.Condition != nil {
		out.Deltas = append(out.Deltas, conditionDelta(subject.ID, *req.Condition))
	}
	return out, nil
}

func (c *Combat) maneuver(actor, target *Combatant, req ActionRequest) (*rules.Outcome, error) {
	cmb := c.resolver.CombatManeuverBonus(*actor.Snapshot, req.Situational...)
	cmd := c.resolver.CombatManeuverDefense(*target.Snapshot)

	roll, err := c.roller.RollD20(0, req.Mode)
	if err != nil {
		return nil, rerrors.Wrap(err, "failed to roll combat maneuver")
	}

	out := rules.ResolveManeuver(roll, cmb, cmd)
	out.Actor = actor.ID
	out.Subject = target.ID
	if out.Succeeded() && req.Condition != nil {
		out.Deltas = append(out.Deltas, conditionDelta(target.ID, *req.Condition))
	}
	return out, nil
}

func (c *Combat) opposed(actor, target *Combatant, req ActionRequest) (*rules.Outcome, error) {
	opposedKey := req.OpposedKey
	if opposedKey == "" {
		opposedKey = req.Key
	}

	initiator := rules.Contestant{
		ID: actor.ID,
		Modifiers: c.resolver.Resolve(*actor.Snapshot, rules.Context{
			Kind: rules.KindSkill, Key: req.Key, Situational: req.Situational,
		}),
	}
	defender := rules.Contestant{
		ID:        target.ID,
		Modifiers: c.resolver.Resolve(*target.Snapshot, rules.Context{Kind: rules.KindSkill, Key: opposedKey}),
	}

	var err error
	if initiator.Roll, err = c.roller.RollD20(0, req.Mode); err != nil {
		return nil, rerrors.Wrap(err, "failed to roll opposed check")
	}
	if defender.Roll, err = c.roller.RollD20(0, dice.ModeNormal); err != nil {
		return nil, rerrors.Wrap(err, "failed to roll opposed check")
	}

	out := rules.ResolveOpposed(rules.KindSkill, initiator, defender, c.policy.OpposedTie)
	if out.Succeeded() && req.Condition != nil {
		out.Deltas = append(out.Deltas, conditionDelta(target.ID, *req.Condition))
	}
	return out, nil
}

func (c *Combat) applyCondition(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	target := req.TargetID
	if target == "" {
		target = actor.ID
	}
	cond := *req.Condition
	if cond.Source == "" {
		cond.Source = actor.ID
	}
	return &rules.Outcome{
		Kind:    rules.KindEffect,
		Result:  rules.ResultSuccess,
		Actor:   actor.ID,
		Subject: target,
		Deltas:  []rules.Delta{conditionDelta(target, cond)},
	}, nil
}

func (c *Combat) hitPoints(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	target := req.TargetID
	if target == "" {
		target = actor.ID
	}

	out := &rules.Outcome{
		Kind:    rules.KindEffect,
		Result:  rules.ResultSuccess,
		Actor:   actor.ID,
		Subject: target,
		Total:   req.Amount,
	}
	if req.Amount == 0 {
		roll, err := c.roller.Roll(req.Dice)
		if err != nil {
			return nil, err
		}
		out.Roll = roll
		out.Total = roll.Total
		if out.Total < 0 {
			out.Total = 0
		}
	}

	amount := out.Total
	if req.Kind == ActionDamage {
		out.Kind = rules.KindDamage
		amount = -amount
	}
	out.Deltas = []rules.Delta{{Target: target, Kind: rules.DeltaHP, Amount: amount}}
	return out, nil
}

// delay moves the actor to a lower count. The turn passes to whoever now
// sits at the actor's old slot, which may be the actor again.
func (c *Combat) delay(actor *Combatant, req ActionRequest) (*rules.Outcome, error) {
	e := c.order[c.turn]
	if req.Initiative >= e.Initiative {
		return nil, rerrors.InvalidArgumentf("delay must lower initiative below %d", e.Initiative).
			WithMeta("initiative", req.Initiative)
	}

	from := e.Initiative
	c.order = append(c.order[:c.turn], c.order[c.turn+1:]...)
	e.Initiative = req.Initiative
	pos := insertPosition(c.order, e)
	c.order = append(c.order, nil)
	copy(c.order[pos+1:], c.order[pos:])
	c.order[pos] = e

	if err := c.settle(&TurnReport{}); err != nil {
		return nil, err
	}
	if c.order[c.turn] != e {
		c.startTurn()
	}
	log.Printf("[COMBAT] %s delayed from %d to %d", actor.ID, from, req.Initiative)

	return &rules.Outcome{
		Kind:    rules.KindInitiative,
		Result:  rules.ResultSuccess,
		Actor:   actor.ID,
		Subject: actor.ID,
		Total:   req.Initiative,
		Target:  from,
	}, nil
}

func (c *Combat) describe(actor *Combatant, req ActionRequest, out *rules.Outcome) string {
	who := actor.displayName()
	target := c.name(out.Subject)

	switch req.Kind {
	case ActionAttack:
		s := fmt.Sprintf("%s attacks %s: %s (%d vs AC %d)", who, target, out.Result, out.Total, out.Target)
		if out.Damage != nil {
			s += fmt.Sprintf(" for %d damage", -hpChange(out, out.Subject))
		}
		return s
	case ActionCheck:
		label := req.Key
		if label == "" {
			label = string(req.Ability)
		}
		if label == "" {
			label = "ability"
		}
		return fmt.Sprintf("%s rolls %s: %d vs DC %d, %s", who, label, out.Total, out.Target, out.Result)
	case ActionSave:
		return fmt.Sprintf("%s makes a %s save: %d vs DC %d, %s", target, req.Save, out.Total, out.Target, out.Result)
	case ActionManeuver:
		name := req.Maneuver
		if name == "" {
			name = "maneuver"
		}
		return fmt.Sprintf("%s attempts %s on %s: %d vs CMD %d, %s", who, name, target, out.Total, out.Target, out.Result)
	case ActionOpposed:
		return fmt.Sprintf("%s %s vs %s: %d vs %d, %s", who, req.Key, target, out.Total, out.Target, out.Result)
	case ActionApplyCondition:
		return fmt.Sprintf("%s applies %s to %s", who, req.Condition.Name, target)
	case ActionHeal:
		return fmt.Sprintf("%s heals %s for %d", who, target, out.Total)
	case ActionDamage:
		return fmt.Sprintf("%s deals %d damage to %s", who, -hpChange(out, out.Subject), target)
	case ActionDelay:
		return fmt.Sprintf("%s delays to initiative %d", who, req.Initiative)
	default:
		return fmt.Sprintf("%s withdraws from combat", who)
	}
}

func conditionDelta(target string, cond conditions.Condition) rules.Delta {
	return rules.Delta{
		Target:    target,
		Kind:      rules.DeltaApplyCondition,
		Condition: conditions.Normalize(cond.Name),
		Attach:    cond,
	}
}

func hpChange(out *rules.Outcome, target string) int {
	total := 0
	for _, d := range out.Deltas {
		if d.Kind == rules.DeltaHP && d.Target == target {
			total += d.Amount
		}
	}
	return total
}

func withoutKind(b rules.Breakdown, kind rules.ModifierKind) rules.Breakdown {
	items := make([]rules.Modifier, 0, len(b.Items))
	for _, m := range b.Items {
		if m.Kind != kind {
			items = append(items, m)
		}
	}
	return rules.Breakdown{Items: items}
}
