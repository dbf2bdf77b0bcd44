package events

import (
	"sync"
)

// Recorder is a Publisher that keeps every event, for tests and replays
type Recorder struct {
	mu     sync.Mutex
	events []*GameEvent
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish implements Publisher
func (r *Recorder) Publish(event *GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []*GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*GameEvent(nil), r.events...)
}

// Types lists the recorded event types in order
func (r *Recorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// Count returns how many events of a type were recorded
func (r *Recorder) Count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
