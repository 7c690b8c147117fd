// Package event provides the engine's notification bus: synchronous,
// topic-keyed publish/subscribe for hosts that want to react to window
// changes without polling.
package event

import "time"

// Topics published by the windowing engine.
const (
	// TopicWindowRecomputed fires after every window recompute, with a
	// WindowRecomputed payload.
	TopicWindowRecomputed = "window.recomputed"

	// TopicFocusChanged fires when the focus key or direction changes,
	// with a FocusChanged payload.
	TopicFocusChanged = "focus.changed"
)

// Event is one published notification. Events are immutable once
// created.
type Event struct {
	// Topic is the event type.
	Topic string

	// Payload is the topic-specific data.
	Payload any

	// Time is when the event was published.
	Time time.Time
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(Event)
