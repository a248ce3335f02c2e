package assistant_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/internal/config"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/ollama"
)

// fakeModelServer answers every generate call with a single streamed chunk and
// records the prompts it received.
func fakeModelServer(t *testing.T, reply string) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.Unmarshal(body, &req)
		prompts = append(prompts, req.Prompt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"response": reply, "done": true})
	}))
	return srv, &prompts
}

func newTestEngine(t *testing.T, srv *httptest.Server) *assistant.Engine {
	t.Helper()
	client, err := ollama.NewClient(config.OllamaConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return assistant.NewEngine(client, config.AssistantConfig{Model: "test-model"})
}

func TestEngineAnswer(t *testing.T) {
	srv, prompts := fakeModelServer(t, "  You have 2 offers open.  ")
	defer srv.Close()

	eng := newTestEngine(t, srv)
	tc := assistant.TurnContext{
		Page:       "dashboard",
		OfferCount: 2,
		Offers:     []models.WorkOffer{{ID: 7, Name: "QA Engineer", Location: "Porto"}},
	}
	out, err := eng.Answer(context.Background(), "how many offers do I have?", tc)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if out != "You have 2 offers open." {
		t.Fatalf("expected trimmed reply, got %q", out)
	}

	if len(*prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(*prompts))
	}
	p := (*prompts)[0]
	// the rendered prompt carries the question and the turn context
	for _, want := range []string{"how many offers do I have?", "dashboard", "QA Engineer", "Porto"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q: %s", want, p)
		}
	}
}

func TestEngineAnswer_EmptyReply_Fails(t *testing.T) {
	srv, _ := fakeModelServer(t, "   ")
	defer srv.Close()

	eng := newTestEngine(t, srv)
	if _, err := eng.Answer(context.Background(), "hello?", assistant.TurnContext{}); err == nil {
		t.Fatalf("expected error for empty model response")
	}
}

func TestEngineSummarize(t *testing.T) {
	srv, prompts := fakeModelServer(t, "A great role in Lisbon.")
	defer srv.Close()

	eng := newTestEngine(t, srv)
	offer := models.WorkOffer{
		Name:         "Backend Engineer",
		Role:         "employee",
		Salary:       85000,
		Description:  "Build the payments platform",
		Availability: "remote",
		Location:     "Lisbon",
	}
	out, err := eng.Summarize(context.Background(), offer)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if out != "A great role in Lisbon." {
		t.Fatalf("unexpected summary: %q", out)
	}
	if len(*prompts) != 1 || !strings.Contains((*prompts)[0], "Backend Engineer") {
		t.Fatalf("prompt missing offer fields: %v", *prompts)
	}
}
