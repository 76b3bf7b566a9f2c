package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/config"
	"github.com/bz-technologies/helpdesk/internal/domain"
)

type fakeGemini struct {
	mu      sync.Mutex
	replies []string
	bodies  []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies = append(f.bodies, string(body))
	reply := ""
	if len(f.replies) > 0 {
		reply, f.replies = f.replies[0], f.replies[1:]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
			"finishReason": "STOP",
		}},
	})
}

func newTestClient(t *testing.T, fake *fakeGemini) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), config.AIConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: srv.URL + "/",
	}, srv.Client())
	require.NoError(t, err)
	return client
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Model: "m"}, nil)
	assert.ErrorIs(t, err, assistant.ErrDisabled)
}

func TestAnalyze(t *testing.T) {
	fake := &fakeGemini{replies: []string{`{"category":"ACCESS","priority":"HIGH","summary":"Senha expirada no AD"}`}}
	client := newTestClient(t, fake)

	got, err := client.Analyze(context.Background(), "Não consigo entrar no sistema, senha expirou")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketCategoryAccess, got.Category)
	assert.Equal(t, domain.TicketPriorityHigh, got.Priority)
	assert.Equal(t, "Senha expirada no AD", got.Summary)

	require.Len(t, fake.bodies, 1)
	assert.Contains(t, fake.bodies[0], "senha expirou")
	assert.Contains(t, fake.bodies[0], "application/json")
}

func TestAnalyzeRejectsMalformedReply(t *testing.T) {
	client := newTestClient(t, &fakeGemini{replies: []string{"acho que é rede"}})

	_, err := client.Analyze(context.Background(), "A internet caiu no andar todo")
	assert.ErrorIs(t, err, assistant.ErrMalformedSuggestion)
}

func TestAnalyzeEmptyReply(t *testing.T) {
	client := newTestClient(t, &fakeGemini{})

	_, err := client.Analyze(context.Background(), "A impressora não liga mais")
	assert.ErrorIs(t, err, assistant.ErrEmptyReply)
}

func TestSessionKeepsHistory(t *testing.T) {
	fake := &fakeGemini{replies: []string{"Reinicie o roteador.", "Então verifique o cabo."}}
	client := newTestClient(t, fake)

	session, err := client.NewSession(context.Background())
	require.NoError(t, err)

	reply, err := session.SendMessage(context.Background(), "minha internet caiu")
	require.NoError(t, err)
	assert.Equal(t, "Reinicie o roteador.", reply)

	reply, err = session.SendMessage(context.Background(), "já reiniciei")
	require.NoError(t, err)
	assert.Equal(t, "Então verifique o cabo.", reply)

	require.Len(t, fake.bodies, 2)
	assert.True(t, strings.Contains(fake.bodies[1], "minha internet caiu"), "second turn must carry the first")
	assert.Contains(t, fake.bodies[1], "Reinicie o roteador.")

	require.NoError(t, session.Close())
	_, err = session.SendMessage(context.Background(), "oi")
	assert.Error(t, err)
}

func TestSessionCloseDuringSend(t *testing.T) {
	fake := &fakeGemini{replies: []string{"um", "dois", "três", "quatro"}}
	client := newTestClient(t, fake)

	session, err := client.NewSession(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = session.SendMessage(context.Background(), "a impressora travou")
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, session.Close())
	}()
	wg.Wait()

	_, err = session.SendMessage(context.Background(), "ainda aí?")
	assert.ErrorIs(t, err, errSessionClosed)
}
