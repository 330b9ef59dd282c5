// Package session gives each client its own path state. The engine itself is
// single-threaded per path; the manager adds the per-session isolation and
// the locking needed once sessions arrive over a network boundary.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stavis/internal/timing"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = fmt.Errorf("session not found")

// Session is one client's path state. Mutations go through Manager.Apply so
// every event is immediately followed by a recomputation; callers never see a
// stale snapshot.
type Session struct {
	ID    string
	state *timing.PathState
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  timing.Catalog
	consts   timing.Constants
	maxChain int
	log      *zap.Logger
}

// NewManager creates an empty session manager.
func NewManager(catalog timing.Catalog, consts timing.Constants, maxChain int, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		consts:   consts,
		maxChain: maxChain,
		log:      log,
	}
}

// Reconfigure swaps the engine constants, for live config reload. Existing
// chains keep the delays resolved at their insertion time; new buffers and
// new sessions use the new catalog.
func (m *Manager) Reconfigure(catalog timing.Catalog, consts timing.Constants, maxChain int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = catalog
	m.consts = consts
	m.maxChain = maxChain
	for _, s := range m.sessions {
		s.state.Configure(catalog, maxChain)
	}
}

// Constants returns the current engine constants.
func (m *Manager) Constants() timing.Constants {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.consts
}

// Create starts a fresh session (empty chain, setup check off).
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:    uuid.NewString(),
		state: timing.NewPathState(m.catalog, m.maxChain),
	}
	m.sessions[s.ID] = s
	m.log.Info("session created", zap.String("session", s.ID))
	return s
}

// Adopt registers a session around an existing path state, used when a
// journal replay rebuilds a session's chain.
func (m *Manager) Adopt(id string, state *timing.PathState) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{ID: id, state: state}
	m.sessions[id] = s
	return s
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Apply runs one event against a session and returns the freshly recomputed
// breakdown. The whole mutate-then-recompute step happens under the lock, so
// there is no window where another caller can observe the mutated state
// without its breakdown.
func (m *Manager) Apply(id string, e timing.Event) (timing.Breakdown, error) {
	if err := e.Validate(); err != nil {
		return timing.Breakdown{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return timing.Breakdown{}, ErrNotFound
	}
	timing.Apply(s.state, e)
	b := timing.Compute(s.state, m.consts)
	m.log.Debug("event applied",
		zap.String("session", id),
		zap.String("kind", string(e.Kind)),
		zap.Float64("slack", b.Slack))
	return b, nil
}

// Breakdown recomputes and returns the current breakdown for a session.
func (m *Manager) Breakdown(id string) (timing.Breakdown, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return timing.Breakdown{}, ErrNotFound
	}
	return timing.Compute(s.state, m.consts), nil
}
