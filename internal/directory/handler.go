package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/pkg/logging"
)

// Handler handles HTTP requests for accounts and the doctor directory.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new directory handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// LoginRequest is the body for POST /auth/login. Portal, when set, rejects
// accounts logging into the wrong side of the app.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Portal   Role   `json:"portal,omitempty"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.store.FindByCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		// Uniform response regardless of which part of the credential
		// failed.
		http.Error(w, "Invalid email or password.", http.StatusUnauthorized)
		return
	}

	if req.Portal.Valid() && account.Role != req.Portal {
		msg := fmt.Sprintf("This account does not belong to the %s portal.", strings.ToLower(string(req.Portal)))
		http.Error(w, msg, http.StatusForbidden)
		return
	}

	h.logger.Info("account logged in", "id", account.ID, "role", account.Role)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.store.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			http.Error(w, "Email already in use.", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("account registered", "id", account.ID, "role", account.Role)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
}

// UpdateProfile handles PATCH /accounts/{accountID}/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		http.Error(w, "missing account id", http.StatusBadRequest)
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.store.UpdateProfile(r.Context(), accountID, &update)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			http.Error(w, "Account not found.", http.StatusNotFound)
			return
		}
		h.logger.Error("profile update failed", "error", err, "id", accountID)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}

// ListDoctorsResponse is the response for listing doctors.
type ListDoctorsResponse struct {
	Doctors []Doctor `json:"doctors"`
	Count   int      `json:"count"`
}

// ListDoctors handles GET /doctors. It requires no authentication so the
// landing page can browse the directory.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.store.ListDoctors(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		http.Error(w, "failed to list doctors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListDoctorsResponse{
		Doctors: doctors,
		Count:   len(doctors),
	})
}
