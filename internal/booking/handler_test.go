package booking

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/medibook/internal/appointments"
	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/negotiation"
	"github.com/medibook/medibook/pkg/logging"
)

func newTestRouter(t *testing.T, llm negotiation.LLMClient) http.Handler {
	t.Helper()
	logger := logging.NewWithWriter("error", io.Discard)
	dir := directory.NewStore()
	dir.SeedDemo()
	appts := appointments.NewStore()
	neg := negotiation.NewService(llm, dir, logger, nil, time.Second)
	h := NewHandler(NewService(neg, dir, appts, logger, nil), logger)

	r := chi.NewRouter()
	r.Post("/bookings/agentic", h.SubmitAgentic)
	r.Post("/bookings/agentic/{sessionID}/confirm", h.ConfirmAgentic)
	r.Post("/bookings/agentic/{sessionID}/cancel", h.CancelAgentic)
	r.Post("/bookings/slots", h.FindSlots)
	r.Post("/bookings/slots/{sessionID}/confirm", h.ConfirmSlot)
	return r
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAgenticEndpoints(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{text: parseReply("doc6", 0.85)})

	rec := post(t, r, "/bookings/agentic", map[string]string{
		"patient_id": "user1",
		"text":       "I need a dermatologist next week for a rash",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.State != StateConfirming || view.Proposal == nil {
		t.Fatalf("expected confirming session with proposal, got %+v", view)
	}

	rec = post(t, r, "/bookings/agentic/"+view.ID+"/confirm", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var appt appointments.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.DoctorID != "doc6" || appt.Status != appointments.StatusBooked {
		t.Fatalf("unexpected appointment: %+v", appt)
	}

	// Confirming again hits a dead session.
	rec = post(t, r, "/bookings/agentic/"+view.ID+"/confirm", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAgenticRejectionMessage(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{text: parseReply("doc6", 0.2)})

	rec := post(t, r, "/bookings/agentic", map[string]string{
		"patient_id": "user1",
		"text":       "help",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != rephraseMessage {
		t.Errorf("expected %q, got %q", rephraseMessage, got)
	}
}

func TestAgenticCancelEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{text: parseReply("doc6", 0.85)})

	rec := post(t, r, "/bookings/agentic", map[string]string{
		"patient_id": "user1",
		"text":       "dermatologist for a rash",
	})
	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}

	rec = post(t, r, "/bookings/agentic/"+view.ID+"/cancel", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = post(t, r, "/bookings/agentic/"+view.ID+"/confirm", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after cancel, got %d", rec.Code)
	}
}

func TestStructuredEndpoints(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{text: `["10:00 AM", "02:30 PM", "04:15 PM"]`})

	rec := post(t, r, "/bookings/slots", map[string]string{
		"patient_id": "user1",
		"reason":     "chest pain",
		"doctor_id":  "doc1",
		"date":       "2024-06-10",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(view.Slots))
	}

	rec = post(t, r, "/bookings/slots/"+view.ID+"/confirm", map[string]int{"slot_index": 0})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var appt appointments.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.DateTime.Hour() != 10 {
		t.Errorf("expected 10:00 booking, got hour %d", appt.DateTime.Hour())
	}
}

func TestStructuredValidationErrors(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{text: `["10:00 AM", "11:00 AM", "12:00 PM"]`})

	rec := post(t, r, "/bookings/slots", map[string]string{
		"patient_id": "user1",
		"reason":     "",
		"doctor_id":  "doc1",
		"date":       "2024-06-10",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}

	rec = post(t, r, "/bookings/slots", map[string]string{
		"patient_id": "user1",
		"reason":     "checkup",
		"doctor_id":  "ghost",
		"date":       "2024-06-10",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown doctor, got %d", rec.Code)
	}

	rec = post(t, r, "/bookings/slots", map[string]string{
		"patient_id": "user1",
		"reason":     "checkup",
		"doctor_id":  "doc1",
		"date":       "2024-06-10",
	})
	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}

	rec = post(t, r, "/bookings/slots/"+view.ID+"/confirm", map[string]int{"slot_index": 9})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad slot index, got %d", rec.Code)
	}
}
