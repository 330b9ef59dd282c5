package timing

import "fmt"

// EventKind enumerates the closed set of user events the engine accepts.
type EventKind string

const (
	EventAddBuffer     EventKind = "add_buffer"
	EventRemoveLast    EventKind = "remove_last"
	EventReset         EventKind = "reset"
	EventSetSetupCheck EventKind = "set_setup_check"
)

// Event is one discrete user action. Variant is meaningful only for
// add_buffer, Enabled only for set_setup_check.
type Event struct {
	Kind    EventKind `json:"kind"`
	Variant Variant   `json:"variant,omitempty"`
	Enabled bool      `json:"enabled,omitempty"`
}

// Validate rejects events outside the closed set. This is the boundary check
// for transports that decode events from untrusted input; the TUI constructs
// events directly and cannot produce an invalid one.
func (e Event) Validate() error {
	switch e.Kind {
	case EventAddBuffer:
		if !e.Variant.Valid() {
			return fmt.Errorf("unknown buffer variant %q", e.Variant)
		}
		return nil
	case EventRemoveLast, EventReset, EventSetSetupCheck:
		return nil
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

// Apply mutates state according to the event. Events are total: a valid
// event never fails (a capped chain silently refuses the add, matching the
// no-op semantics of remove-on-empty).
func Apply(s *PathState, e Event) {
	switch e.Kind {
	case EventAddBuffer:
		s.AddBuffer(e.Variant)
	case EventRemoveLast:
		s.RemoveLast()
	case EventReset:
		s.Reset()
	case EventSetSetupCheck:
		s.SetSetupCheck(e.Enabled)
	}
}
