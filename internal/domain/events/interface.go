package events

//go:generate mockgen -destination=mock/mock_publisher.go -package=mockevents -source=interface.go

// Publisher delivers engine events to whoever is listening
type Publisher interface {
	Publish(event *GameEvent) error
}

// Bus is a Publisher that listeners can subscribe to
type Bus interface {
	Publisher
	Subscribe(eventType EventType, listener EventListener)
	Unsubscribe(eventType EventType, listener EventListener)
	ListenerCount(eventType EventType) int
}

var (
	_ Bus = (*EventBus)(nil)
	_ Bus = (*ToolkitBus)(nil)
)

// EventListener handles events delivered by a bus
type EventListener interface {
	HandleEvent(event *GameEvent) error
	Priority() int
}

type funcListener struct {
	fn       func(event *GameEvent) error
	priority int
}

func (l *funcListener) HandleEvent(event *GameEvent) error { return l.fn(event) }
func (l *funcListener) Priority() int                      { return l.priority }

// NewListener adapts a function to EventListener. The returned value is
// comparable, so it can be passed back to Unsubscribe.
func NewListener(priority int, fn func(event *GameEvent) error) EventListener {
	return &funcListener{fn: fn, priority: priority}
}

type nopPublisher struct{}

func (nopPublisher) Publish(*GameEvent) error { return nil }

// Nop returns a Publisher that drops everything
func Nop() Publisher {
	return nopPublisher{}
}
