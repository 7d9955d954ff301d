package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxPathLength bounds the path carried by an event.
const MaxPathLength = 2048

// MaxNameLength bounds the route name carried by an event.
const MaxNameLength = 128

// MaxFrameSize is the read limit for a single client frame.
const MaxFrameSize = 8 << 10

// EventType identifies a client event.
type EventType string

const (
	EventHello    EventType = "hello"    // Initial page load
	EventNavigate EventType = "navigate" // Link click or client-side navigation request
	EventPopState EventType = "popstate" // Browser back/forward
)

// Event represents a decoded event from the client.
type Event struct {
	Seq     uint64    `json:"seq,omitempty"`
	Type    EventType `json:"type"`
	Path    string    `json:"path,omitempty"`
	Name    string    `json:"name,omitempty"`
	Replace bool      `json:"replace,omitempty"`

	// Position is history.state.position of the entry the browser landed on
	// (popstate only). The server uses it to derive the traversal delta.
	Position int `json:"position,omitempty"`
}

// Event validation errors.
var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrMissingPath   = errors.New("event requires a path")
	ErrMissingTarget = errors.New("navigate event requires a path or a name")
	ErrFieldTooLong  = errors.New("event field too long")
)

// Validate checks that the event is well formed for its type.
func (e *Event) Validate() error {
	if len(e.Path) > MaxPathLength || len(e.Name) > MaxNameLength {
		return ErrFieldTooLong
	}
	switch e.Type {
	case EventHello, EventPopState:
		if e.Path == "" {
			return ErrMissingPath
		}
	case EventNavigate:
		if e.Path == "" && e.Name == "" {
			return ErrMissingTarget
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	return nil
}

// DecodeEvent parses and validates a client frame.
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) > MaxFrameSize {
		return nil, ErrFieldTooLong
	}
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
