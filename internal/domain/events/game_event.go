package events

// GameEvent is a notification about something the engine resolved.
// Listeners observe; they never change the outcome.
type GameEvent struct {
	Type      EventType
	ActorID   string
	TargetID  string
	Context   map[string]any
	Cancelled bool
}

// NewGameEvent creates a new game event
func NewGameEvent(eventType EventType) *GameEvent {
	return &GameEvent{
		Type:    eventType,
		Context: make(map[string]any),
	}
}

// WithActor sets the acting combatant
func (e *GameEvent) WithActor(id string) *GameEvent {
	e.ActorID = id
	return e
}

// WithTarget sets the target for the event
func (e *GameEvent) WithTarget(id string) *GameEvent {
	e.TargetID = id
	return e
}

// WithContext adds context data to the event
func (e *GameEvent) WithContext(key string, value any) *GameEvent {
	e.Context[key] = value
	return e
}

// Cancel stops delivery to lower priority listeners
func (e *GameEvent) Cancel() {
	e.Cancelled = true
}

// GetIntContext retrieves an int value from the context
func (e *GameEvent) GetIntContext(key string) (int, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	intVal, ok := val.(int)
	return intVal, ok
}

// GetStringContext retrieves a string value from the context
func (e *GameEvent) GetStringContext(key string) (string, bool) {
	val, exists := e.Context[key]
	if !exists {
		return "", false
	}
	strVal, ok := val.(string)
	return strVal, ok
}
