package negotiation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

// fallbackTimes is served whenever the collaborator fails during structured
// slot suggestion, so the booking flow never dead-ends on AI unavailability.
var fallbackTimes = []string{"09:00 AM", "01:00 PM", "04:00 PM"}

// Slot is one proposed appointment time paired with the resolved doctor.
type Slot struct {
	Time   string           `json:"time"`
	Doctor directory.Doctor `json:"doctor"`
}

// ParsedRequest is the collaborator's interpretation of a free-text booking
// request. Confidence is self-reported in [0,1]; the booking layer decides
// whether it clears the acceptance threshold.
type ParsedRequest struct {
	FoundDoctorID    string  `json:"foundDoctorId"`
	SuggestedDateISO string  `json:"suggestedDateISO"`
	Reason           string  `json:"reason"`
	Confidence       float64 `json:"confidence"`
}

// Service turns ambiguous booking intent into concrete proposals. Every
// collaborator failure is absorbed here: ProposeSlots degrades to a fixed
// fallback and ParseRequest degrades to nil. Neither ever returns an error.
type Service struct {
	llm       LLMClient
	directory *directory.Store
	logger    *logging.Logger
	metrics   *metrics.NegotiationMetrics
	timeout   time.Duration
	now       func() time.Time
}

// NewService creates a negotiation service. llm may be nil, in which case
// structured suggestions always fall back and agentic parsing always
// reports "could not understand".
func NewService(llm LLMClient, dir *directory.Store, logger *logging.Logger, m *metrics.NegotiationMetrics, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{
		llm:       llm,
		directory: dir,
		logger:    logger,
		metrics:   m,
		timeout:   timeout,
		now:       time.Now,
	}
}

// ProposeSlots suggests three times for (reason, doctor, date). The doctor
// id must resolve; an unknown doctor yields an empty slice and the caller
// surfaces "no slots". Date is a YYYY-MM-DD string.
func (s *Service) ProposeSlots(ctx context.Context, reason, doctorID, date string) []Slot {
	doctor, err := s.directory.GetDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Warn("slot proposal for unknown doctor", "doctor_id", doctorID)
		s.metrics.ObservePropose("no_doctor")
		return nil
	}

	times, err := s.suggestTimes(ctx, doctor, date, reason)
	if err != nil {
		s.logger.Error("slot suggestion failed, serving fallback", "error", err, "doctor_id", doctorID)
		s.metrics.ObservePropose("fallback")
		times = fallbackTimes
	} else {
		s.metrics.ObservePropose("ok")
	}

	slots := make([]Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, Slot{Time: t, Doctor: *doctor})
	}
	return slots
}

func (s *Service) suggestTimes(ctx context.Context, doctor *directory.Doctor, date, reason string) ([]string, error) {
	if s.llm == nil {
		return nil, ErrNoCollaborator
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.llm.Complete(ctx, LLMRequest{
		Prompt:       buildSlotPrompt(doctor, date, reason),
		Temperature:  0.7,
		JSONResponse: true,
	})
	s.metrics.ObserveLLMLatency("propose_slots", time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	var times []string
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &times); err != nil {
		return nil, err
	}
	if len(times) != 3 {
		return nil, ErrMalformedSuggestion
	}
	return times, nil
}

// ParseRequest interprets a free-text booking request. It returns nil on
// any collaborator failure or malformed reply; the caller must treat nil as
// "could not understand", not as a retryable error. No fallback proposal is
// fabricated here: a wrong doctor match is a worse outcome than asking the
// user to rephrase.
func (s *Service) ParseRequest(ctx context.Context, freeText string) *ParsedRequest {
	if s.llm == nil {
		s.metrics.ObserveParse("error")
		return nil
	}

	doctors, err := s.directory.ListDoctors(ctx)
	if err != nil {
		s.logger.Error("doctor listing failed during parse", "error", err)
		s.metrics.ObserveParse("error")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.llm.Complete(ctx, LLMRequest{
		Prompt:       buildParsePrompt(doctors, freeText, s.now()),
		JSONResponse: true,
	})
	s.metrics.ObserveLLMLatency("parse_request", time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("agentic parse failed", "error", err)
		s.metrics.ObserveParse("error")
		return nil
	}

	var parsed ParsedRequest
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &parsed); err != nil {
		s.logger.Error("agentic parse returned malformed JSON", "error", err)
		s.metrics.ObserveParse("error")
		return nil
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		s.logger.Warn("agentic parse reported out-of-range confidence", "confidence", parsed.Confidence)
		s.metrics.ObserveParse("error")
		return nil
	}

	// The accept/reject outcome is recorded by the booking layer once the
	// confidence gate has run.
	return &parsed
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
