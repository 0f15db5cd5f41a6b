package directory

import "errors"

var (
	// ErrDuplicateEmail is returned when registering an email that is
	// already in use (compared case-insensitively).
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned for any login failure. It is
	// deliberately uniform: callers cannot tell an unknown email from a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountNotFound is returned when a profile update references an
	// unknown account id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDoctorNotFound is returned when a doctor id has no directory entry.
	ErrDoctorNotFound = errors.New("doctor not found")

	ErrMissingName     = errors.New("name is required")
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrInvalidRole     = errors.New("role must be Patient or Doctor")
)
