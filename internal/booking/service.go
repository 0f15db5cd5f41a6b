package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medibook/medibook/internal/appointments"
	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/negotiation"
	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

var bookingTracer = otel.Tracer("medibook.internal.booking")

// confidenceThreshold is the minimum self-reported certainty required
// before an agentic proposal is shown for confirmation. The comparison is
// strictly greater-than: 0.6 exactly is rejected. Below it, a proposal is
// discarded rather than shown, since confirming a wrong doctor or time
// costs more than asking the user to retry.
const confidenceThreshold = 0.6

// Service walks a patient from booking intent to a persisted appointment.
// Validity policy (doctor exists, confidence gate, slot selection) lives
// here; the stores underneath stay permissive persistence primitives.
type Service struct {
	negotiator   *negotiation.Service
	directory    *directory.Store
	appointments *appointments.Store
	logger       *logging.Logger
	metrics      *metrics.NegotiationMetrics
	sessions     *registry
	onBooked     func(*appointments.Appointment)
}

// NewService creates a booking service.
func NewService(neg *negotiation.Service, dir *directory.Store, appts *appointments.Store, logger *logging.Logger, m *metrics.NegotiationMetrics) *Service {
	return &Service{
		negotiator:   neg,
		directory:    dir,
		appointments: appts,
		logger:       logger,
		metrics:      m,
		sessions:     newRegistry(),
	}
}

// OnBooked registers a callback invoked after every persisted appointment,
// letting the surrounding dashboard refresh its lists.
func (s *Service) OnBooked(fn func(*appointments.Appointment)) {
	s.onBooked = fn
}

func (s *Service) resolvePatient(ctx context.Context, patientID string) (*directory.Account, error) {
	account, err := s.directory.GetAccount(ctx, patientID)
	if err != nil || account.Role != directory.RolePatient {
		return nil, ErrPatientNotFound
	}
	return account, nil
}

// SubmitAgentic runs the free-text entry point: parse the request, gate it
// on confidence and doctor resolution, and open a confirming session
// holding the proposal. Every rejection path collapses to
// ErrCannotUnderstand so the caller shows one uniform rephrase message.
func (s *Service) SubmitAgentic(ctx context.Context, patientID, text string) (View, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.agentic.submit")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return View{}, ErrEmptyRequest
	}

	patient, err := s.resolvePatient(ctx, patientID)
	if err != nil {
		return View{}, err
	}

	parsed := s.negotiator.ParseRequest(ctx, text)
	if parsed == nil {
		return View{}, ErrCannotUnderstand
	}
	span.SetAttributes(
		attribute.String("medibook.doctor_id", parsed.FoundDoctorID),
		attribute.Float64("medibook.confidence", parsed.Confidence),
	)

	if parsed.Confidence <= confidenceThreshold {
		s.logger.Info("agentic proposal below confidence gate", "confidence", parsed.Confidence)
		s.metrics.ObserveParse("rejected")
		return View{}, ErrCannotUnderstand
	}

	doctor, err := s.directory.GetDoctor(ctx, parsed.FoundDoctorID)
	if err != nil {
		s.logger.Warn("agentic proposal named an unknown doctor", "doctor_id", parsed.FoundDoctorID)
		s.metrics.ObserveParse("rejected")
		return View{}, ErrCannotUnderstand
	}

	when, err := parseISODate(parsed.SuggestedDateISO)
	if err != nil {
		s.logger.Warn("agentic proposal carried an unparseable date", "date", parsed.SuggestedDateISO)
		s.metrics.ObserveParse("rejected")
		return View{}, ErrCannotUnderstand
	}

	// A proposal without a reason would only fail store validation at
	// confirm time; reject it now so the user is asked to rephrase instead
	// of seeing a confirm-stage error.
	if strings.TrimSpace(parsed.Reason) == "" {
		s.logger.Warn("agentic proposal carried no reason")
		s.metrics.ObserveParse("rejected")
		return View{}, ErrCannotUnderstand
	}
	s.metrics.ObserveParse("ok")

	session := &Session{
		id:          uuid.NewString(),
		mode:        ModeAgentic,
		state:       StateConfirming,
		patientID:   patient.ID,
		patientName: patient.Name,
		proposal: &Proposal{
			Doctor:     *doctor,
			DateTime:   when,
			Reason:     parsed.Reason,
			Confidence: parsed.Confidence,
		},
	}
	s.sessions.add(session)
	return session.view(), nil
}

// FindSlots runs the structured entry point: all three fields must be
// present, then the negotiator proposes times and a confirming session is
// opened around them.
func (s *Service) FindSlots(ctx context.Context, patientID, reason, doctorID, date string) (View, error) {
	if strings.TrimSpace(reason) == "" || doctorID == "" || date == "" {
		return View{}, ErrMissingFields
	}

	patient, err := s.resolvePatient(ctx, patientID)
	if err != nil {
		return View{}, err
	}

	slots := s.negotiator.ProposeSlots(ctx, reason, doctorID, date)
	if len(slots) == 0 {
		return View{}, ErrNoSlots
	}

	session := &Session{
		id:          uuid.NewString(),
		mode:        ModeStructured,
		state:       StateConfirming,
		patientID:   patient.ID,
		patientName: patient.Name,
		slots:       slots,
		date:        date,
		reason:      reason,
	}
	s.sessions.add(session)
	return session.view(), nil
}

// Confirm persists an agentic session's proposal and closes the session.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*appointments.Appointment, error) {
	session, ok := s.sessions.get(sessionID)
	if !ok || session.mode != ModeAgentic {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	if session.state != StateConfirming {
		session.mu.Unlock()
		return nil, ErrSessionBusy
	}
	session.state = StateBooking
	proposal := *session.proposal
	session.mu.Unlock()

	return s.persist(ctx, session, &appointments.CreateRequest{
		DoctorID:             proposal.Doctor.ID,
		DoctorName:           proposal.Doctor.Name,
		DoctorSpecialization: proposal.Doctor.Specialization,
		PatientID:            session.patientID,
		PatientName:          session.patientName,
		DateTime:             proposal.DateTime,
		Reason:               proposal.Reason,
	}, ModeAgentic)
}

// ConfirmSlot persists a structured session using the slot at the given
// index. Selection is by index into the proposed list; the time label is
// parsed into a concrete hour only now, at confirmation time.
func (s *Service) ConfirmSlot(ctx context.Context, sessionID string, slotIndex int) (*appointments.Appointment, error) {
	session, ok := s.sessions.get(sessionID)
	if !ok || session.mode != ModeStructured {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	if session.state != StateConfirming {
		session.mu.Unlock()
		return nil, ErrSessionBusy
	}
	if slotIndex < 0 || slotIndex >= len(session.slots) {
		session.mu.Unlock()
		return nil, ErrNoSlotSelected
	}
	slot := session.slots[slotIndex]
	date, reason := session.date, session.reason
	session.state = StateBooking
	session.mu.Unlock()

	when, err := negotiation.SlotDateTime(date, slot.Time)
	if err != nil {
		session.mu.Lock()
		session.state = StateConfirming
		session.mu.Unlock()
		return nil, err
	}

	return s.persist(ctx, session, &appointments.CreateRequest{
		DoctorID:             slot.Doctor.ID,
		DoctorName:           slot.Doctor.Name,
		DoctorSpecialization: slot.Doctor.Specialization,
		PatientID:            session.patientID,
		PatientName:          session.patientName,
		DateTime:             when,
		Reason:               reason,
	}, ModeStructured)
}

func (s *Service) persist(ctx context.Context, session *Session, req *appointments.CreateRequest, mode Mode) (*appointments.Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("medibook.doctor_id", req.DoctorID),
		attribute.String("medibook.mode", string(mode)),
	)

	appt, err := s.appointments.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		session.mu.Lock()
		session.state = StateConfirming
		session.mu.Unlock()
		return nil, err
	}

	s.sessions.remove(session.id)
	s.metrics.ObserveBooked(string(mode))
	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"patient_id", appt.PatientID,
		"mode", mode,
	)
	if s.onBooked != nil {
		s.onBooked(appt)
	}
	return appt, nil
}

// Cancel discards a confirming session without persisting anything.
func (s *Service) Cancel(_ context.Context, sessionID string) error {
	session, ok := s.sessions.get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != StateConfirming {
		return ErrSessionBusy
	}
	session.state = StateIdle
	s.sessions.remove(sessionID)
	return nil
}

// parseISODate accepts the date shapes the collaborator is known to emit.
func parseISODate(iso string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, iso, time.Local); err == nil {
			return t, nil
		}
	}
	_, err := time.Parse(time.RFC3339, iso)
	return time.Time{}, err
}
