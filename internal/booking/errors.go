package booking

import "errors"

var (
	// ErrEmptyRequest guards the agentic entry point: blank input never
	// starts a session.
	ErrEmptyRequest = errors.New("request text is empty")

	// ErrCannotUnderstand covers every agentic rejection: parse failure,
	// low confidence, or an unresolvable doctor id. Callers surface one
	// uniform "please rephrase" message for all three.
	ErrCannotUnderstand = errors.New("could not understand the request")

	// ErrMissingFields gates structured slot search on reason, doctor,
	// and date all being present.
	ErrMissingFields = errors.New("reason, doctor, and date are all required")

	// ErrNoSlots is returned when the doctor id did not resolve and no
	// slots could be proposed.
	ErrNoSlots = errors.New("no slots available")

	// ErrNoSlotSelected is returned when confirming a structured session
	// without picking one of its proposed slots.
	ErrNoSlotSelected = errors.New("no slot selected")

	// ErrSessionNotFound is returned for unknown or already-finished
	// session ids.
	ErrSessionNotFound = errors.New("booking session not found")

	// ErrSessionBusy is returned when a transition arrives while the
	// session is mid-booking.
	ErrSessionBusy = errors.New("booking session is busy")

	// ErrPatientNotFound is returned when the booking patient id does not
	// resolve to a patient account.
	ErrPatientNotFound = errors.New("patient account not found")
)
