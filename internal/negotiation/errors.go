package negotiation

import "errors"

var (
	// ErrNoCollaborator marks the degraded mode where no LLM client was
	// configured. It never escapes the service; it only routes internal
	// flow onto the fallback path.
	ErrNoCollaborator = errors.New("no negotiation collaborator configured")

	// ErrMalformedSuggestion marks a collaborator reply that did not
	// contain exactly three time labels.
	ErrMalformedSuggestion = errors.New("malformed slot suggestion")
)
