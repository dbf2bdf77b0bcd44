package events

// EventType names an engine event. Values double as rpg-toolkit event names.
type EventType string

const (
	CombatStarted   EventType = "engine.combat.started"
	CombatResolved  EventType = "engine.combat.resolved"
	RoundStarted    EventType = "engine.combat.round_started"
	TurnStarted     EventType = "engine.combat.turn_started"
	TurnSkipped     EventType = "engine.combat.turn_skipped"
	ActionResolved  EventType = "engine.combat.action_resolved"
	CombatantJoined EventType = "engine.combat.combatant_joined"
	CombatantLeft   EventType = "engine.combat.combatant_left"
	CombatantDown   EventType = "engine.combat.combatant_down"

	ConditionApplied EventType = "engine.condition.applied"
	ConditionRemoved EventType = "engine.condition.removed"
	ConditionExpired EventType = "engine.condition.expired"
	Stabilized       EventType = "engine.condition.stabilized"
)

func (t EventType) String() string {
	return string(t)
}
