package assistant

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/observability"
)

// Triage turns analyzer failures into an absent suggestion. Errors are
// logged and counted but never returned: ticket creation must not depend
// on the model.
type Triage struct {
	analyzer Analyzer
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewTriage wraps an analyzer.
func NewTriage(analyzer Analyzer, logger *zap.Logger, metrics *observability.Metrics) *Triage {
	if analyzer == nil {
		analyzer = Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Triage{analyzer: analyzer, logger: logger, metrics: metrics}
}

// Suggest returns the model's suggestion, or false when none was produced.
func (t *Triage) Suggest(ctx context.Context, description string) (*domain.Suggestion, bool) {
	suggestion, err := t.analyzer.Analyze(ctx, description)
	if err != nil {
		t.metrics.RecordAI("analyze", ErrorKind(err))
		t.logger.Warn("ticket analysis produced no suggestion",
			zap.String("kind", ErrorKind(err)),
			zap.Int("description_len", len(description)),
			zap.Error(err))
		return nil, false
	}
	if suggestion == nil {
		t.metrics.RecordAI("analyze", "absent")
		return nil, false
	}
	t.metrics.RecordAI("analyze", "ok")
	return suggestion, true
}

// ErrorKind classifies a model error for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDisabled):
		return "disabled"
	case errors.Is(err, ErrMalformedSuggestion):
		return "malformed"
	case errors.Is(err, ErrEmptyReply):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "provider"
	}
}
