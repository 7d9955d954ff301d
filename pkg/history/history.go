package history

import (
	"sync"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// State is the state object stored with each history entry.
type State struct {
	Back     string `json:"back,omitempty"`
	Current  string `json:"current"`
	Forward  string `json:"forward,omitempty"`
	Position int    `json:"position"`
	Replaced bool   `json:"replaced,omitempty"`
}

// Direction of a traversal.
type Direction string

const (
	DirectionBack    Direction = "back"
	DirectionForward Direction = "forward"
	DirectionUnknown Direction = ""
)

// PopInfo describes a traversal reported to listeners.
type PopInfo struct {
	Delta     int
	Direction Direction
}

// Listener is called after a traversal moved the history to another entry.
// It is not called for Push or Replace.
type Listener func(to, from string, info PopInfo)

// History is the capability the router needs from the browser.
type History interface {
	// Base returns the normalized deployment base.
	Base() string

	// Location returns the current application path, with query and hash.
	Location() string

	// State returns the state of the current entry.
	State() State

	// Push adds a new entry after the current one, dropping forward entries.
	Push(to string, state State)

	// Replace overwrites the current entry.
	Replace(to string, state State)

	// Go traverses the history by delta entries.
	Go(delta int)

	// Listen registers a traversal listener and returns its remover.
	Listen(fn Listener) (remove func())

	// CreateHref returns the address-bar form of an application path.
	CreateHref(to string) string
}

// directionOf maps a traversal delta to a direction.
func directionOf(delta int) Direction {
	switch {
	case delta < 0:
		return DirectionBack
	case delta > 0:
		return DirectionForward
	default:
		return DirectionUnknown
	}
}

// listenerSet is a registry of listeners safe for concurrent use.
type listenerSet struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]Listener
}

func (s *listenerSet) add(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// notify calls every listener in registration order.
// It must be called without holding the owning history's lock.
func (s *listenerSet) notify(to, from string, info PopInfo) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.fns))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(to, from, info)
	}
}

func normalizeBase(base string) string {
	return routepath.NormalizeBase(base)
}

// createHref joins base and an application path.
func createHref(base, to string) string {
	return routepath.JoinBase(base, to)
}

// stripLocation turns a browser path into an application path.
// Paths outside base are kept unchanged.
func stripLocation(base, browserPath string) string {
	if browserPath == "" {
		return "/"
	}
	if loc, ok := routepath.StripBase(base, browserPath); ok {
		return loc
	}
	return browserPath
}
