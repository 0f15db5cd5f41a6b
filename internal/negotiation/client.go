package negotiation

import "context"

// LLMRequest is a single-turn completion request to the negotiation
// collaborator.
type LLMRequest struct {
	Prompt      string
	Temperature float32
	MaxTokens   int32
	// JSONResponse asks the collaborator to emit raw JSON with no prose.
	JSONResponse bool
}

// LLMResponse is the collaborator's reply.
type LLMResponse struct {
	Text string
}

// LLMClient abstracts the language model behind the negotiation service.
// Implementations may fail in arbitrary ways; the service absorbs every
// failure and never lets one escape to its callers.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
