package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/pkg/logging"
)

// rephraseMessage is the uniform reply for every agentic rejection.
const rephraseMessage = "I couldn't quite understand your request. Please specify the reason and a preferred time."

// Handler handles HTTP requests for both booking entry points.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type agenticRequest struct {
	PatientID string `json:"patient_id"`
	Text      string `json:"text"`
}

// SubmitAgentic handles POST /bookings/agentic.
func (h *Handler) SubmitAgentic(w http.ResponseWriter, r *http.Request) {
	var req agenticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.SubmitAgentic(r.Context(), req.PatientID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyRequest):
			http.Error(w, "Please describe what you need.", http.StatusBadRequest)
		case errors.Is(err, ErrPatientNotFound):
			http.Error(w, "Patient account not found.", http.StatusNotFound)
		case errors.Is(err, ErrCannotUnderstand):
			http.Error(w, rephraseMessage, http.StatusUnprocessableEntity)
		default:
			h.logger.Error("agentic submit failed", "error", err)
			http.Error(w, "failed to process request", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// ConfirmAgentic handles POST /bookings/agentic/{sessionID}/confirm.
func (h *Handler) ConfirmAgentic(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	appt, err := h.service.Confirm(r.Context(), sessionID)
	if err != nil {
		h.writeConfirmError(w, err, sessionID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

// CancelAgentic handles POST /bookings/agentic/{sessionID}/cancel.
func (h *Handler) CancelAgentic(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.service.Cancel(r.Context(), sessionID); err != nil {
		h.writeConfirmError(w, err, sessionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type slotSearchRequest struct {
	PatientID string `json:"patient_id"`
	Reason    string `json:"reason"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
}

// FindSlots handles POST /bookings/slots.
func (h *Handler) FindSlots(w http.ResponseWriter, r *http.Request) {
	var req slotSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.FindSlots(r.Context(), req.PatientID, req.Reason, req.DoctorID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			http.Error(w, "Please fill in all fields.", http.StatusBadRequest)
		case errors.Is(err, ErrPatientNotFound):
			http.Error(w, "Patient account not found.", http.StatusNotFound)
		case errors.Is(err, ErrNoSlots):
			http.Error(w, "No slots available.", http.StatusNotFound)
		default:
			h.logger.Error("slot search failed", "error", err)
			http.Error(w, "failed to find slots", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

type slotConfirmRequest struct {
	SlotIndex int `json:"slot_index"`
}

// ConfirmSlot handles POST /bookings/slots/{sessionID}/confirm.
func (h *Handler) ConfirmSlot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req slotConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.ConfirmSlot(r.Context(), sessionID, req.SlotIndex)
	if err != nil {
		if errors.Is(err, ErrNoSlotSelected) {
			http.Error(w, "Please select one of the suggested slots.", http.StatusBadRequest)
			return
		}
		h.writeConfirmError(w, err, sessionID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

func (h *Handler) writeConfirmError(w http.ResponseWriter, err error, sessionID string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "Booking session not found.", http.StatusNotFound)
	case errors.Is(err, ErrSessionBusy):
		http.Error(w, "This booking is already being processed.", http.StatusConflict)
	default:
		h.logger.Error("booking confirmation failed", "error", err, "session_id", sessionID)
		http.Error(w, "failed to complete booking", http.StatusInternalServerError)
	}
}
