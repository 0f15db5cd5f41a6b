package negotiation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/pkg/logging"
)

type fakeLLM struct {
	text string
	err  error

	lastPrompt string
}

func (f *fakeLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	f.lastPrompt = req.Prompt
	if f.err != nil {
		return LLMResponse{}, f.err
	}
	return LLMResponse{Text: f.text}, nil
}

func newTestService(llm LLMClient) *Service {
	dir := directory.NewStore()
	dir.SeedDemo()
	return NewService(llm, dir, logging.NewWithWriter("error", io.Discard), nil, time.Second)
}

func TestProposeSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("returns collaborator slots paired with the doctor", func(t *testing.T) {
		llm := &fakeLLM{text: `["10:00 AM", "02:30 PM", "04:15 PM"]`}
		svc := newTestService(llm)

		slots := svc.ProposeSlots(ctx, "chest pain", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
		assert.Equal(t, "10:00 AM", slots[0].Time)
		for _, s := range slots {
			assert.Equal(t, "doc1", s.Doctor.ID)
		}
		assert.Contains(t, llm.lastPrompt, "Dr. Emily Carter")
		assert.Contains(t, llm.lastPrompt, "2024-06-10")
	})

	t.Run("unknown doctor yields empty", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: `["10:00 AM", "11:00 AM", "12:00 PM"]`})
		assert.Empty(t, svc.ProposeSlots(ctx, "checkup", "ghost", "2024-06-10"))
	})

	t.Run("collaborator error falls back to the fixed triple", func(t *testing.T) {
		svc := newTestService(&fakeLLM{err: errors.New("upstream down")})

		slots := svc.ProposeSlots(ctx, "checkup", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
		assert.Equal(t, "09:00 AM", slots[0].Time)
		assert.Equal(t, "01:00 PM", slots[1].Time)
		assert.Equal(t, "04:00 PM", slots[2].Time)
		for _, s := range slots {
			assert.Equal(t, "doc1", s.Doctor.ID)
		}
	})

	t.Run("malformed reply falls back", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: `{"oops": true}`})
		slots := svc.ProposeSlots(ctx, "checkup", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
		assert.Equal(t, "09:00 AM", slots[0].Time)
	})

	t.Run("wrong slot count falls back", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: `["10:00 AM"]`})
		slots := svc.ProposeSlots(ctx, "checkup", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
		assert.Equal(t, "09:00 AM", slots[0].Time)
	})

	t.Run("fenced reply is accepted", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: "```json\n[\"10:00 AM\", \"11:00 AM\", \"12:00 PM\"]\n```"})
		slots := svc.ProposeSlots(ctx, "checkup", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
		assert.Equal(t, "10:00 AM", slots[0].Time)
	})

	t.Run("nil collaborator falls back", func(t *testing.T) {
		svc := newTestService(nil)
		slots := svc.ProposeSlots(ctx, "checkup", "doc1", "2024-06-10")
		require.Len(t, slots, 3)
	})
}

func TestParseRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the parsed proposal", func(t *testing.T) {
		llm := &fakeLLM{text: `{"foundDoctorId":"doc6","suggestedDateISO":"2024-06-17T10:00:00Z","reason":"rash","confidence":0.85}`}
		svc := newTestService(llm)

		parsed := svc.ParseRequest(ctx, "I need a dermatologist next week for a rash")
		require.NotNil(t, parsed)
		assert.Equal(t, "doc6", parsed.FoundDoctorID)
		assert.Equal(t, "rash", parsed.Reason)
		assert.InDelta(t, 0.85, parsed.Confidence, 1e-9)

		// The prompt carries the full directory and the current date.
		assert.Contains(t, llm.lastPrompt, "doc6")
		assert.Contains(t, llm.lastPrompt, "Dermatologist")
		assert.Contains(t, llm.lastPrompt, "Current Date:")
	})

	t.Run("collaborator error yields nil", func(t *testing.T) {
		svc := newTestService(&fakeLLM{err: errors.New("upstream down")})
		assert.Nil(t, svc.ParseRequest(ctx, "help"))
	})

	t.Run("malformed reply yields nil", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: "not json"})
		assert.Nil(t, svc.ParseRequest(ctx, "help"))
	})

	t.Run("out-of-range confidence yields nil", func(t *testing.T) {
		svc := newTestService(&fakeLLM{text: `{"foundDoctorId":"doc1","suggestedDateISO":"2024-06-17T10:00:00Z","reason":"x","confidence":1.5}`})
		assert.Nil(t, svc.ParseRequest(ctx, "help"))
	})

	t.Run("nil collaborator yields nil", func(t *testing.T) {
		svc := newTestService(nil)
		assert.Nil(t, svc.ParseRequest(ctx, "help"))
	})
}
