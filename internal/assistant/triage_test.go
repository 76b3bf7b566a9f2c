package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/observability"
)

type analyzerFunc func(ctx context.Context, description string) (*domain.Suggestion, error)

func (f analyzerFunc) Analyze(ctx context.Context, description string) (*domain.Suggestion, error) {
	return f(ctx, description)
}

func TestTriageSuggest(t *testing.T) {
	want := &domain.Suggestion{Category: domain.TicketCategorySoftware, Priority: domain.TicketPriorityMedium, Summary: "Outlook travando"}

	t.Run("success", func(t *testing.T) {
		metrics := observability.NewMetrics()
		triage := NewTriage(analyzerFunc(func(context.Context, string) (*domain.Suggestion, error) {
			return want, nil
		}), nil, metrics)

		got, ok := triage.Suggest(context.Background(), "O Outlook trava ao abrir anexos")
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, int64(1), metrics.Snapshot().AIOutcomes["analyze|ok"])
	})

	errs := map[string]error{
		"disabled":  ErrDisabled,
		"malformed": fmt.Errorf("%w: bad", ErrMalformedSuggestion),
		"timeout":   context.DeadlineExceeded,
		"provider":  errors.New("503"),
	}
	for kind, cause := range errs {
		t.Run(kind, func(t *testing.T) {
			metrics := observability.NewMetrics()
			triage := NewTriage(analyzerFunc(func(context.Context, string) (*domain.Suggestion, error) {
				return nil, cause
			}), nil, metrics)

			got, ok := triage.Suggest(context.Background(), "descrição longa o bastante")
			assert.False(t, ok)
			assert.Nil(t, got)
			assert.Equal(t, int64(1), metrics.Snapshot().AIOutcomes["analyze|"+kind])
		})
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Analyze(context.Background(), "qualquer coisa")
	assert.ErrorIs(t, err, ErrDisabled)

	session, err := Disabled{}.NewSession(context.Background())
	require.NoError(t, err)
	_, err = session.SendMessage(context.Background(), "oi")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.NoError(t, session.Close())
}

func TestAnalysisInstructionListsEveryCode(t *testing.T) {
	for _, code := range append(CategoryCodes(), PriorityCodes()...) {
		assert.Contains(t, AnalysisInstruction, code)
	}
}
