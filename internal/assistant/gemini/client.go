// Package gemini adapts the Google Gen AI SDK to the assistant contracts.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/config"
	"github.com/bz-technologies/helpdesk/internal/domain"
)

var errSessionClosed = errors.New("gemini: chat session closed")

// Client talks to the Gemini API. It implements assistant.Analyzer and
// assistant.SessionFactory.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

// New builds a client from configuration. httpClient may be nil.
func New(ctx context.Context, cfg config.AIConfig, httpClient *http.Client) (*Client, error) {
	if !cfg.Enabled() {
		return nil, assistant.ErrDisabled
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Client{genai: gc, model: cfg.Model, timeout: cfg.RequestTimeout()}, nil
}

// Analyze asks the model for a structured triage of description.
func (c *Client) Analyze(ctx context.Context, description string) (*domain.Suggestion, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(description), analysisConfig())
	if err != nil {
		return nil, fmt.Errorf("gemini: analyze: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, assistant.ErrEmptyReply
	}
	return assistant.ParseSuggestion(text)
}

// NewSession opens a chat with the support persona.
func (c *Client) NewSession(ctx context.Context) (assistant.ChatSession, error) {
	chat, err := c.genai.Chats.Create(ctx, c.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistant.ChatInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.4),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: open chat: %w", err)
	}
	return &session{client: c, chat: chat}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func analysisConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistant.AnalysisInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category":          {Type: genai.TypeString, Enum: assistant.CategoryCodes()},
				"priority":          {Type: genai.TypeString, Enum: assistant.PriorityCodes()},
				"summary":           {Type: genai.TypeString, Description: "Resumo técnico em uma frase."},
				"suggestedSolution": {Type: genai.TypeString, Description: "Ação simples que o usuário pode tentar."},
			},
			Required:         []string{"category", "priority", "summary"},
			PropertyOrdering: []string{"category", "priority", "summary", "suggestedSolution"},
		},
	}
}

type session struct {
	client *Client

	mu   sync.Mutex
	chat *genai.Chat
}

func (s *session) SendMessage(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()
	if chat == nil {
		return "", errSessionClosed
	}
	ctx, cancel := s.client.withTimeout(ctx)
	defer cancel()

	resp, err := chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("gemini: send message: %w", err)
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", assistant.ErrEmptyReply
	}
	return reply, nil
}

// Close drops the local history; the API keeps no server-side state.
// A send already in flight finishes against the old history.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
	return nil
}
