package history

import (
	"sync"

	"github.com/notekeeper/notesweb/pkg/protocol"
)

// Sink receives the commands a Web history sends to its browser tab.
// The session passes in a closure that writes to the tab's WebSocket.
type Sink func(protocol.Command)

// Web mirrors the history of one browser tab.
//
// Push and Replace update the mirrored location immediately, the way
// pushState and replaceState do in the browser, and send the matching
// command. Go only sends a command: the location changes when the tab
// reports the resulting popstate through HandlePopState.
type Web struct {
	mu        sync.Mutex
	base      string
	location  string
	state     State
	sink      Sink
	listeners listenerSet
}

// NewWeb creates a Web history for a tab currently showing browserPath.
func NewWeb(base, browserPath string, sink Sink) *Web {
	return NewWebAt(base, browserPath, 0, sink)
}

// NewWebAt is like NewWeb for a tab whose current entry has the given
// position, as found in history.state after a reload.
func NewWebAt(base, browserPath string, position int, sink Sink) *Web {
	base = normalizeBase(base)
	loc := stripLocation(base, browserPath)
	return &Web{
		base:     base,
		location: loc,
		state:    State{Current: loc, Position: position},
		sink:     sink,
	}
}

// Base implements History.
func (w *Web) Base() string { return w.base }

// Location implements History.
func (w *Web) Location() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.location
}

// State implements History.
func (w *Web) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Push implements History.
func (w *Web) Push(to string, state State) {
	w.mu.Lock()
	state.Back = w.location
	state.Current = to
	state.Forward = ""
	state.Position = w.state.Position + 1
	state.Replaced = false
	w.location = to
	w.state = state
	w.mu.Unlock()

	w.send(protocol.NewPushCommand(w.CreateHref(to)))
}

// Replace implements History.
func (w *Web) Replace(to string, state State) {
	w.mu.Lock()
	state.Back = w.state.Back
	state.Forward = w.state.Forward
	state.Current = to
	state.Position = w.state.Position
	state.Replaced = true
	w.location = to
	w.state = state
	w.mu.Unlock()

	w.send(protocol.NewReplaceCommand(w.CreateHref(to)))
}

// Go implements History.
func (w *Web) Go(delta int) {
	if delta == 0 {
		return
	}
	w.send(protocol.NewGoCommand(delta))
}

// HandlePopState records a traversal reported by the tab and notifies
// listeners. position is history.state.position of the new entry.
func (w *Web) HandlePopState(browserPath string, position int) {
	to := stripLocation(w.base, browserPath)

	w.mu.Lock()
	from := w.location
	delta := position - w.state.Position
	w.location = to
	w.state = State{Current: to, Position: position}
	w.mu.Unlock()

	w.listeners.notify(to, from, PopInfo{Delta: delta, Direction: directionOf(delta)})
}

// Listen implements History.
func (w *Web) Listen(fn Listener) func() {
	return w.listeners.add(fn)
}

// CreateHref implements History.
func (w *Web) CreateHref(to string) string {
	return createHref(w.base, to)
}

func (w *Web) send(cmd protocol.Command) {
	if w.sink == nil {
		return
	}
	w.sink(cmd)
}

var _ History = (*Web)(nil)
