package directory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// storedAccount pairs an account with its credential. The credential lives
// only here; every read path hands out the embedded Account by value.
type storedAccount struct {
	Account
	password string
}

// Store owns the account and doctor collections. It is safe for concurrent
// use; all access goes through its methods.
type Store struct {
	mu       sync.RWMutex
	accounts []storedAccount
	doctors  []Doctor
	latency  time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLatency makes every operation suspend for d before touching state,
// modeling the I/O a real backend would perform. Operations remain
// cancellable through their context either way.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// NewStore creates an empty directory store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// suspend is the uniform suspension point shared by all operations.
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

// FindByCredentials matches email case-insensitively and the password
// exactly. Any mismatch yields ErrInvalidCredentials.
func (s *Store) FindByCredentials(ctx context.Context, email, password string) (*Account, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.accounts {
		sa := &s.accounts[i]
		if strings.EqualFold(sa.Email, email) && sa.password == password {
			acc := sa.Account
			return &acc, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register creates a new account. Doctor registrations also append a
// directory entry so the doctor becomes browsable immediately.
func (s *Store) Register(ctx context.Context, req *RegisterRequest) (*Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if strings.EqualFold(s.accounts[i].Email, req.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	sa := storedAccount{
		Account: Account{
			ID:             uuid.NewString(),
			Name:           req.Name,
			Email:          req.Email,
			Role:           req.Role,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			DOB:            req.DOB,
			DoctorProfile:  req.DoctorProfile,
			PatientProfile: req.PatientProfile,
		},
		password: req.Password,
	}

	if req.Role == RoleDoctor {
		spec := req.Specialization
		if spec == "" {
			spec = "General Practice"
			sa.Specialization = spec
		}
		s.doctors = append(s.doctors, Doctor{
			ID:             sa.ID,
			Name:           sa.Name,
			Specialization: spec,
			Email:          sa.Email,
			DoctorProfile:  req.DoctorProfile,
		})
	}

	s.accounts = append(s.accounts, sa)
	acc := sa.Account
	return &acc, nil
}

// UpdateProfile merges the patch into the account; set fields overwrite,
// unset fields keep their prior value. Doctor accounts propagate the same
// merge into their directory entry so the two stay consistent.
func (s *Store) UpdateProfile(ctx context.Context, id string, update *ProfileUpdate) (*Account, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAccountNotFound
	}

	update.applyToAccount(&s.accounts[idx].Account)

	if s.accounts[idx].Role == RoleDoctor {
		for i := range s.doctors {
			if s.doctors[i].ID == id {
				update.applyToDoctor(&s.doctors[i])
				break
			}
		}
	}

	acc := s.accounts[idx].Account
	return &acc, nil
}

// ListDoctors returns a snapshot of the directory in insertion order.
func (s *Store) ListDoctors(ctx context.Context) ([]Doctor, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out, nil
}

// GetDoctor returns the directory entry for id, or ErrDoctorNotFound.
func (s *Store) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.doctors {
		if s.doctors[i].ID == id {
			d := s.doctors[i]
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

// GetAccount returns the account with the given id, credential stripped.
func (s *Store) GetAccount(ctx context.Context, id string) (*Account, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			acc := s.accounts[i].Account
			return &acc, nil
		}
	}
	return nil, ErrAccountNotFound
}
