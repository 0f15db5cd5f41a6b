package appointments

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusBooked    Status = "Booked"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusBooked || s == StatusCompleted || s == StatusCancelled
}

// Terminal reports whether s ends the lifecycle. Terminal appointments never
// move again; a Completed or Cancelled record cannot return to Booked.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is an immutable value record of a booking. Doctor and patient
// display fields are snapshots taken at booking time and are intentionally
// not kept in sync with later profile edits.
type Appointment struct {
	ID                   string    `json:"id"`
	DoctorID             string    `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	PatientID            string    `json:"patient_id"`
	PatientName          string    `json:"patient_name"`
	DateTime             time.Time `json:"date_time"`
	Reason               string    `json:"reason"`
	Status               Status    `json:"status"`
}

// CreateRequest carries the fields needed to book an appointment. The store
// assigns the id and the initial status.
type CreateRequest struct {
	DoctorID             string    `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	PatientID            string    `json:"patient_id"`
	PatientName          string    `json:"patient_name"`
	DateTime             time.Time `json:"date_time"`
	Reason               string    `json:"reason"`
}

// Validate checks the structural requirements for creation. Referential
// checks against the directory are a caller concern; the store stays a dumb
// persistence primitive.
func (r *CreateRequest) Validate() error {
	if r.DoctorID == "" {
		return ErrMissingDoctor
	}
	if r.PatientID == "" {
		return ErrMissingPatient
	}
	if strings.TrimSpace(r.Reason) == "" {
		return ErrMissingReason
	}
	if r.DateTime.IsZero() {
		return ErrMissingDateTime
	}
	return nil
}
