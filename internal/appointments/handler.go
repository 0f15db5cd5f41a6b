package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/pkg/logging"
)

// Handler handles HTTP requests for appointment lists, status changes, and
// the doctor calendar.
type Handler struct {
	store     *Store
	directory *directory.Store
	logger    *logging.Logger
	now       func() time.Time
}

// NewHandler creates a new appointments handler.
func NewHandler(store *Store, dir *directory.Store, logger *logging.Logger) *Handler {
	return &Handler{
		store:     store,
		directory: dir,
		logger:    logger,
		now:       time.Now,
	}
}

// ListResponse carries an account's appointments partitioned for display.
type ListResponse struct {
	Appointments []Appointment `json:"appointments"`
	Upcoming     []Appointment `json:"upcoming"`
	Past         []Appointment `json:"past"`
	Count        int           `json:"count"`
}

// ListForAccount handles GET /accounts/{accountID}/appointments.
func (h *Handler) ListForAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	account, err := h.directory.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, directory.ErrAccountNotFound) {
			http.Error(w, "Account not found.", http.StatusNotFound)
			return
		}
		h.logger.Error("account lookup failed", "error", err, "id", accountID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	appts, err := h.store.ListForAccount(r.Context(), account.ID, account.Role)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err, "id", accountID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			http.Error(w, "Invalid appointment status.", http.StatusBadRequest)
			return
		}
		appts = FilterByStatus(appts, status)
	}

	upcoming, past := Partition(appts, h.now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Appointments: appts,
		Upcoming:     upcoming,
		Past:         past,
		Count:        len(appts),
	})
}

type statusRequest struct {
	Status Status `json:"status"`
}

// SetStatus handles PATCH /appointments/{appointmentID}/status. An unknown
// appointment id yields 204 rather than 404: the store treats it as a
// no-op and there is nothing to return.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.store.SetStatus(r.Context(), appointmentID, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			http.Error(w, "Invalid appointment status.", http.StatusBadRequest)
			return
		}
		h.logger.Error("status change failed", "error", err, "id", appointmentID)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}
	if appt == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.logger.Info("appointment status changed", "id", appt.ID, "status", appt.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}

// Calendar handles GET /doctors/{doctorID}/calendar.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")

	if _, err := h.directory.GetDoctor(r.Context(), doctorID); err != nil {
		if errors.Is(err, directory.ErrDoctorNotFound) {
			http.Error(w, "Doctor not found.", http.StatusNotFound)
			return
		}
		h.logger.Error("doctor lookup failed", "error", err, "id", doctorID)
		http.Error(w, "failed to build calendar", http.StatusInternalServerError)
		return
	}

	appts, err := h.store.ListForDoctor(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err, "id", doctorID)
		http.Error(w, "failed to build calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProjectWeek(appts))
}
