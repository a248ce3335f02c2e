package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garnizeh/offerdesk/internal/config"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/ollama"
)

// CannedFallbackReply is shown when the chat collaborator is unreachable so
// the conversation never dead-ends.
const CannedFallbackReply = "I couldn't reach the assistant service just now. You can still manage offers and applicants from the dashboard, or ask me again in a moment."

const defaultFallbackPrompt = `You are OfferDesk, an assistant for recruiters. Answer the recruiter's
question briefly and concretely using the context below. Do not invent data.

Current page: {{.Context.Page}}
Offers: {{.Context.OfferCount}} | Applicants: {{.Context.ApplicantCount}}
{{if .Context.Draft}}Offer draft in progress: {{.Context.Draft}}{{end}}
{{if .Context.Offers}}Recent offers: {{range .Context.Offers}}[{{.ID}}] {{.Name}} ({{.Location}}) {{end}}{{end}}

Question: {{.Question}}`

const summarizePrompt = `Write a short, appealing one-paragraph summary for this job offer.
Plain text only, no markdown.

Title: {{.Name}}
Role: {{.Role}}
Salary: {{.Salary}}
Availability: {{.Availability}}
Location: {{.Location}}
Description: {{.Description}}`

// TurnContext carries the session surroundings sent along with a
// general-purpose chat turn.
type TurnContext struct {
	Page           string             `json:"page,omitempty"`
	OfferCount     int64              `json:"offer_count"`
	ApplicantCount int64              `json:"applicant_count"`
	Draft          *Draft             `json:"draft,omitempty"`
	Offers         []models.WorkOffer `json:"offers,omitempty"`
	Applicants     []models.Applicant `json:"applicants,omitempty"`
}

// Answerer is the chat-completion collaborator used for turns that are not
// part of offer collection.
type Answerer interface {
	Answer(ctx context.Context, question string, tc TurnContext) (string, error)
}

// Engine answers general-purpose questions and summarizes offers via Ollama.
type Engine struct {
	client *ollama.Client
	cfg    config.AssistantConfig
}

func NewEngine(client *ollama.Client, cfg config.AssistantConfig) *Engine {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.FallbackPrompt == "" {
		cfg.FallbackPrompt = defaultFallbackPrompt
	}
	return &Engine{client: client, cfg: cfg}
}

// Answer renders the fallback prompt with the turn context and asks the model.
func (e *Engine) Answer(ctx context.Context, question string, tc TurnContext) (string, error) {
	data := map[string]any{"Question": question, "Context": tc}
	prompt, err := ollama.RenderTemplate(e.cfg.FallbackPrompt, data)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	ctxReq, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	out, err := e.client.Generate(ctxReq, e.cfg.Model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// Summarize produces a one-paragraph AI summary for a stored offer.
func (e *Engine) Summarize(ctx context.Context, offer models.WorkOffer) (string, error) {
	prompt, err := ollama.RenderTemplate(summarizePrompt, offer)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	ctxReq, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	out, err := e.client.Generate(ctxReq, e.cfg.Model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}
