package events

import (
	"context"
	"log"
	"sync"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
)

const contextKey = "engine_context"

// ToolkitBus publishes engine events on an rpg-toolkit bus so toolkit
// features can observe combat without depending on engine types.
type ToolkitBus struct {
	bus *rpgevents.Bus
	mu  sync.Mutex

	subscriptions map[EventType]map[EventListener]string
}

// NewToolkitBus creates a bus backed by a fresh rpg-toolkit bus
func NewToolkitBus() *ToolkitBus {
	return &ToolkitBus{
		bus:           rpgevents.NewBus(),
		subscriptions: make(map[EventType]map[EventListener]string),
	}
}

// GetRPGBus returns the underlying rpg-toolkit event bus
func (tb *ToolkitBus) GetRPGBus() *rpgevents.Bus {
	return tb.bus
}

// Subscribe registers a listener for an event type
func (tb *ToolkitBus) Subscribe(eventType EventType, listener EventListener) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	handler := func(_ context.Context, e rpgevents.Event) error {
		return listener.HandleEvent(fromToolkit(e, eventType))
	}

	id := tb.bus.SubscribeFunc(eventType.String(), listener.Priority(), handler)
	if tb.subscriptions[eventType] == nil {
		tb.subscriptions[eventType] = make(map[EventListener]string)
	}
	tb.subscriptions[eventType][listener] = id
}

// Unsubscribe removes a listener
func (tb *ToolkitBus) Unsubscribe(eventType EventType, listener EventListener) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	id, ok := tb.subscriptions[eventType][listener]
	if !ok {
		return
	}
	if err := tb.bus.Unsubscribe(id); err != nil {
		log.Printf("[EVENTS] failed to unsubscribe %s: %v", id, err)
	}
	delete(tb.subscriptions[eventType], listener)
}

// ListenerCount returns the number of tracked listeners for an event type
func (tb *ToolkitBus) ListenerCount(eventType EventType) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.subscriptions[eventType])
}

// Publish implements Publisher
func (tb *ToolkitBus) Publish(event *GameEvent) error {
	if event == nil {
		return nil
	}
	return tb.bus.Publish(context.Background(), toToolkit(event))
}

func toToolkit(event *GameEvent) rpgevents.Event {
	tk := rpgevents.NewGameEvent(event.Type.String(), wrapCombatant(event.ActorID), wrapCombatant(event.TargetID))
	data := make(map[string]any, len(event.Context))
	for k, v := range event.Context {
		data[k] = v
	}
	tk.Context().Set(contextKey, data)
	if event.Cancelled {
		tk.Cancel()
	}
	return tk
}

func fromToolkit(tk rpgevents.Event, eventType EventType) *GameEvent {
	event := NewGameEvent(eventType)
	event.Cancelled = tk.IsCancelled()
	if source := tk.Source(); source != nil {
		event.ActorID = source.GetID()
	}
	if target := tk.Target(); target != nil {
		event.TargetID = target.GetID()
	}
	if raw, ok := tk.Context().Get(contextKey); ok {
		if data, ok := raw.(map[string]any); ok {
			for k, v := range data {
				event.Context[k] = v
			}
		}
	}
	return event
}
