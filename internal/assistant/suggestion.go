package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// ErrMalformedSuggestion wraps every reason a model reply could not be
// turned into a suggestion.
var ErrMalformedSuggestion = errors.New("assistant: malformed suggestion")

type suggestionPayload struct {
	Category          string `json:"category"`
	Priority          string `json:"priority"`
	Summary           string `json:"summary"`
	SuggestedSolution string `json:"suggestedSolution"`
}

// ParseSuggestion decodes the structured triage reply. Enumerations may
// be given as codes or display labels; a missing summary is an error.
func ParseSuggestion(raw string) (*domain.Suggestion, error) {
	body := stripFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedSuggestion)
	}

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSuggestion, err)
	}

	category, ok := domain.ParseCategory(payload.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrMalformedSuggestion, payload.Category)
	}
	priority, ok := domain.ParsePriority(payload.Priority)
	if !ok {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrMalformedSuggestion, payload.Priority)
	}
	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: missing summary", ErrMalformedSuggestion)
	}

	return &domain.Suggestion{
		Category:          category,
		Priority:          priority,
		Summary:           summary,
		SuggestedSolution: strings.TrimSpace(payload.SuggestedSolution),
	}, nil
}

// stripFence removes a surrounding ``` or ```json code fence.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
