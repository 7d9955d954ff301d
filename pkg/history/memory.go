package history

import "sync"

type memoryEntry struct {
	location string
	state    State
}

// Memory is an in-process history stack.
type Memory struct {
	mu        sync.Mutex
	base      string
	entries   []memoryEntry
	position  int
	listeners listenerSet
}

// NewMemory creates a history whose single entry is "/".
func NewMemory(base string) *Memory {
	return NewMemoryAt(base, "/")
}

// NewMemoryAt creates a history whose single entry is the given browser path.
func NewMemoryAt(base, browserPath string) *Memory {
	base = normalizeBase(base)
	loc := stripLocation(base, browserPath)
	return &Memory{
		base:    base,
		entries: []memoryEntry{{location: loc, state: State{Current: loc}}},
	}
}

// Base implements History.
func (m *Memory) Base() string { return m.base }

// Location implements History.
func (m *Memory) Location() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.position].location
}

// State implements History.
func (m *Memory) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.position].state
}

// Push implements History.
func (m *Memory) Push(to string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.entries[m.position].location
	m.entries = m.entries[:m.position+1]
	m.entries[m.position].state.Forward = to

	state.Back = from
	state.Current = to
	state.Forward = ""
	state.Position = m.position + 1
	state.Replaced = false
	m.entries = append(m.entries, memoryEntry{location: to, state: state})
	m.position++
}

// Replace implements History.
func (m *Memory) Replace(to string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.entries[m.position].state
	state.Back = prev.Back
	state.Forward = prev.Forward
	state.Current = to
	state.Position = m.position
	state.Replaced = true
	m.entries[m.position] = memoryEntry{location: to, state: state}
}

// Go implements History. Traversals past either end are ignored.
func (m *Memory) Go(delta int) {
	m.mu.Lock()
	target := m.position + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return
	}
	from := m.entries[m.position].location
	m.position = target
	to := m.entries[m.position].location
	m.mu.Unlock()

	m.listeners.notify(to, from, PopInfo{Delta: delta, Direction: directionOf(delta)})
}

// Listen implements History.
func (m *Memory) Listen(fn Listener) func() {
	return m.listeners.add(fn)
}

// CreateHref implements History.
func (m *Memory) CreateHref(to string) string {
	return createHref(m.base, to)
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Position returns the index of the current entry.
func (m *Memory) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

var _ History = (*Memory)(nil)
