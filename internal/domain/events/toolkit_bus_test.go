package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolkitBus_RoundTrip(t *testing.T) {
	bus := NewToolkitBus()

	var received *GameEvent
	bus.Subscribe(ConditionApplied, NewListener(0, func(e *GameEvent) error {
		received = e
		return nil
	}))

	event := NewGameEvent(ConditionApplied).
		WithActor("cleric").
		WithTarget("orc").
		WithContext("condition", "shaken").
		WithContext("rounds", 2)

	require.NoError(t, bus.Publish(event))
	require.NotNil(t, received)

	assert.Equal(t, ConditionApplied, received.Type)
	assert.Equal(t, "cleric", received.ActorID)
	assert.Equal(t, "orc", received.TargetID)

	name, ok := received.GetStringContext("condition")
	require.True(t, ok)
	assert.Equal(t, "shaken", name)
	rounds, ok := received.GetIntContext("rounds")
	require.True(t, ok)
	assert.Equal(t, 2, rounds)
}

func TestToolkitBus_NoTarget(t *testing.T) {
	bus := NewToolkitBus()

	var received *GameEvent
	bus.Subscribe(RoundStarted, NewListener(0, func(e *GameEvent) error {
		received = e
		return nil
	}))

	require.NoError(t, bus.Publish(NewGameEvent(RoundStarted).WithContext("round", 2)))
	require.NotNil(t, received)
	assert.Empty(t, received.ActorID)
	assert.Empty(t, received.TargetID)
}

func TestToolkitBus_Unsubscribe(t *testing.T) {
	bus := NewToolkitBus()
	calls := 0
	l := NewListener(0, func(*GameEvent) error {
		calls++
		return nil
	})

	bus.Subscribe(TurnStarted, l)
	assert.Equal(t, 1, bus.ListenerCount(TurnStarted))
	require.NoError(t, bus.Publish(NewGameEvent(TurnStarted)))

	bus.Unsubscribe(TurnStarted, l)
	assert.Equal(t, 0, bus.ListenerCount(TurnStarted))
	require.NoError(t, bus.Publish(NewGameEvent(TurnStarted)))
	assert.Equal(t, 1, calls)
	assert.NotNil(t, bus.GetRPGBus())
}

func TestCombatantEntity(t *testing.T) {
	e := &CombatantEntity{ID: "x"}
	assert.Equal(t, "x", e.GetID())
	assert.Equal(t, "combatant", e.GetType())
	assert.Nil(t, wrapCombatant(""))
}
