package appointments

import "errors"

var (
	ErrMissingDoctor   = errors.New("doctor id is required")
	ErrMissingPatient  = errors.New("patient id is required")
	ErrMissingReason   = errors.New("reason is required")
	ErrMissingDateTime = errors.New("appointment time is required")

	// ErrInvalidStatus is returned when a status change names an unknown
	// status value.
	ErrInvalidStatus = errors.New("invalid appointment status")
)
