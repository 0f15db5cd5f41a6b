package appointments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medibook/medibook/internal/directory"
)

// Store owns the appointment collection. It is safe for concurrent use.
// Records are appended in creation order and never physically deleted.
type Store struct {
	mu           sync.RWMutex
	appointments []Appointment
	latency      time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLatency makes every operation suspend for d before touching state,
// modeling the I/O a real backend would perform.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// NewStore creates an empty appointment store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) suspend(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create books a new appointment with a fresh id and status Booked.
func (s *Store) Create(ctx context.Context, req *CreateRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	appt := Appointment{
		ID:                   uuid.NewString(),
		DoctorID:             req.DoctorID,
		DoctorName:           req.DoctorName,
		DoctorSpecialization: req.DoctorSpecialization,
		PatientID:            req.PatientID,
		PatientName:          req.PatientName,
		DateTime:             req.DateTime,
		Reason:               req.Reason,
		Status:               StatusBooked,
	}

	s.mu.Lock()
	s.appointments = append(s.appointments, appt)
	s.mu.Unlock()

	return &appt, nil
}

// ListForAccount returns the appointments visible to an account. Patients
// see appointments where they are the patient; doctors see appointments
// where they are the doctor. No implicit sort; ordering is a presentation
// concern handled by Partition.
func (s *Store) ListForAccount(ctx context.Context, accountID string, role directory.Role) ([]Appointment, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Appointment
	for _, a := range s.appointments {
		if role == directory.RoleDoctor {
			if a.DoctorID == accountID {
				out = append(out, a)
			}
		} else if a.PatientID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListForDoctor returns all appointments where the given doctor is booked.
func (s *Store) ListForDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	return s.ListForAccount(ctx, doctorID, directory.RoleDoctor)
}

// SetStatus moves the appointment to the given status. An unknown id is a
// silent no-op, matching the permissive store contract; callers that need
// feedback must check existence themselves. Terminal appointments are left
// untouched so a Completed or Cancelled record can never revert.
func (s *Store) SetStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			if !s.appointments[i].Status.Terminal() {
				s.appointments[i].Status = status
			}
			a := s.appointments[i]
			return &a, nil
		}
	}
	return nil, nil
}
