package timing

// Buffer is one inserted buffer instance. The delay is resolved from the
// catalog when the buffer is inserted and never changes afterwards.
type Buffer struct {
	Variant Variant
	Delay   float64
}

// PathState holds the ordered buffer chain and the setup-check flag for one
// data path. Chain order is data-path order from launch flop to capture flop:
// the chain only grows by appending at the tail and only shrinks by removing
// the tail.
//
// PathState is not safe for concurrent use; each session owns its own
// instance and drives it from a single goroutine (the TUI event loop or a
// lock held by the session manager).
type PathState struct {
	catalog  Catalog
	maxChain int // 0 = unbounded
	chain    []Buffer
	setup    bool
}

// NewPathState returns an empty path (no buffers, setup check off) using the
// given catalog. maxChain caps the chain length; 0 means unbounded.
func NewPathState(catalog Catalog, maxChain int) *PathState {
	return &PathState{catalog: catalog, maxChain: maxChain}
}

// AddBuffer appends a buffer of the given variant to the tail of the chain,
// resolving its delay from the catalog. It reports whether the buffer was
// added; the only refusal is a full chain when a cap is configured, in which
// case the state is left unchanged.
func (s *PathState) AddBuffer(v Variant) bool {
	if s.maxChain > 0 && len(s.chain) >= s.maxChain {
		return false
	}
	s.chain = append(s.chain, Buffer{Variant: v, Delay: s.catalog.Delay(v)})
	return true
}

// RemoveLast removes the most recently added buffer. Removing from an empty
// chain is a no-op, not an error.
func (s *PathState) RemoveLast() {
	if len(s.chain) > 0 {
		s.chain = s.chain[:len(s.chain)-1]
	}
}

// Reset restores the initial state exactly: empty chain, setup check off.
func (s *PathState) Reset() {
	s.chain = s.chain[:0]
	s.setup = false
}

// SetSetupCheck sets the setup-check flag. Independent of the chain.
func (s *PathState) SetSetupCheck(enabled bool) {
	s.setup = enabled
}

// SetupCheck reports whether the setup-check flag is on.
func (s *PathState) SetupCheck() bool { return s.setup }

// Len returns the number of inserted buffers.
func (s *PathState) Len() int { return len(s.chain) }

// Chain returns a copy of the buffer chain in data-path order. Callers get a
// value snapshot; the internal slice is never shared.
func (s *PathState) Chain() []Buffer {
	out := make([]Buffer, len(s.chain))
	copy(out, s.chain)
	return out
}

// Catalog returns the delay catalog the path was built with.
func (s *PathState) Catalog() Catalog { return s.catalog }

// Configure swaps the catalog and chain cap, for live config reload. Buffers
// already in the chain keep the delays resolved when they were inserted; only
// future insertions see the new catalog. An existing over-cap chain is left
// intact and simply refuses further adds.
func (s *PathState) Configure(catalog Catalog, maxChain int) {
	s.catalog = catalog
	s.maxChain = maxChain
}
