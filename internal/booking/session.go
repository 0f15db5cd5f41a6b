package booking

import (
	"sync"
	"time"

	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/negotiation"
)

// State is the position of a booking session in its lifecycle. A session
// only ever has one outstanding request; every transition is gated on the
// current state.
type State string

const (
	StateIdle       State = "idle"
	StateThinking   State = "thinking"
	StateConfirming State = "confirming"
	StateBooking    State = "booking"
)

// Mode distinguishes the two booking entry points.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeAgentic    Mode = "agentic"
)

// Proposal is the concrete booking the user is asked to confirm in agentic
// mode.
type Proposal struct {
	Doctor     directory.Doctor `json:"doctor"`
	DateTime   time.Time        `json:"date_time"`
	Reason     string           `json:"reason"`
	Confidence float64          `json:"confidence"`
}

// Session is one in-flight booking attempt. It lives from the moment a
// proposal or slot list is ready to confirm until the user confirms or
// cancels.
type Session struct {
	mu sync.Mutex

	id          string
	mode        Mode
	state       State
	patientID   string
	patientName string

	// Agentic mode.
	proposal *Proposal

	// Structured mode. Slots are confirmed by index into this list, never
	// by recomputing the time label.
	slots  []negotiation.Slot
	date   string
	reason string
}

// View is an immutable snapshot of a session handed to callers.
type View struct {
	ID       string             `json:"id"`
	Mode     Mode               `json:"mode"`
	State    State              `json:"state"`
	Proposal *Proposal          `json:"proposal,omitempty"`
	Slots    []negotiation.Slot `json:"slots,omitempty"`
}

func (s *Session) view() View {
	v := View{
		ID:    s.id,
		Mode:  s.mode,
		State: s.state,
	}
	if s.proposal != nil {
		p := *s.proposal
		v.Proposal = &p
	}
	if len(s.slots) > 0 {
		v.Slots = append(v.Slots, s.slots...)
	}
	return v
}

// registry holds the live sessions keyed by id.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
}

func (r *registry) get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
