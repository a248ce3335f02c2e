package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/garnizeh/offerdesk/api"
	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository/mock"
	"github.com/gorilla/mux"
	"net/http/httptest"
)

type fakeAnswerer struct {
	reply string
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string, tc assistant.TurnContext) (string, error) {
	return f.reply, nil
}

type fakeApplicantRepo struct{}

func (f *fakeApplicantRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	return 1, nil
}
func (f *fakeApplicantRepo) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	return nil, nil
}
func (f *fakeApplicantRepo) ListByOffer(ctx context.Context, offerID int64, limit, offset int) ([]models.Applicant, error) {
	return nil, nil
}
func (f *fakeApplicantRepo) CountByOffer(ctx context.Context, offerID int64) (int64, error) {
	return 0, nil
}
func (f *fakeApplicantRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return nil
}

func setupChatServer(t *testing.T) (*httptest.Server, *mock.OfferRepo, func()) {
	t.Helper()
	offers := &mock.OfferRepo{}
	mgr := assistant.NewManager(offers, &fakeAnswerer{reply: "happy to help"}, nil)
	ch := api.NewChatHandler(mgr, offers, &fakeApplicantRepo{})

	r := mux.NewRouter()
	r.Use(withRecruiter)
	r.HandleFunc("/v1/assistant/chat", ch.Chat).Methods("POST")
	r.HandleFunc("/v1/assistant/session", ch.ResetSession).Methods("DELETE")

	srv := httptest.NewServer(r)
	return srv, offers, func() { srv.Close() }
}

func TestChatTurn(t *testing.T) {
	srv, _, cleanup := setupChatServer(t)
	defer cleanup()

	// a plain question is routed to the chat collaborator
	res := postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "how does this work?"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if body["message"] != "happy to help" || body["state"] != "idle" {
		t.Fatalf("unexpected reply: %v", body)
	}

	// empty message is rejected
	res = postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "   "})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

func TestChatSlotFillingOverHTTP(t *testing.T) {
	srv, offers, cleanup := setupChatServer(t)
	defer cleanup()

	res := postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "create a work offer for Backend Engineer"})
	body := decodeBody(t, res)
	if body["state"] != "collecting" {
		t.Fatalf("expected collecting got %v", body["state"])
	}
	missing := body["missing_fields"].([]any)
	if len(missing) != 5 {
		t.Fatalf("expected 5 missing fields got %v", missing)
	}

	res = postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "role: contractor, salary: 80000, location: Lisbon"})
	body = decodeBody(t, res)
	if body["state"] != "collecting" {
		t.Fatalf("expected collecting got %v", body["state"])
	}

	res = postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "availability: remote, description: extend our public API platform"})
	body = decodeBody(t, res)
	if body["state"] != "idle" {
		t.Fatalf("expected idle after submission got %v", body)
	}
	offerID := int64(body["offer_id"].(float64))
	if offerID == 0 {
		t.Fatalf("expected offer id in reply")
	}

	stored, err := offers.GetOffer(context.Background(), offerID)
	if err != nil || stored == nil {
		t.Fatalf("offer not stored: %v", err)
	}
	if stored.RecruiterID != 1 || stored.Name != "Backend Engineer" {
		t.Fatalf("unexpected stored offer: %#v", stored)
	}
}

func TestResetSession(t *testing.T) {
	srv, _, cleanup := setupChatServer(t)
	defer cleanup()

	res := postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "create a work offer for Backend Engineer"})
	body := decodeBody(t, res)
	if body["state"] != "collecting" {
		t.Fatalf("expected collecting got %v", body["state"])
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/assistant/session", nil)
	resDel, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("reset session: %v", err)
	}
	resDel.Body.Close()
	if resDel.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resDel.StatusCode)
	}

	// fresh session: back to general chat
	res = postJSON(t, srv.URL+"/v1/assistant/chat", map[string]string{"message": "anything new?"})
	body = decodeBody(t, res)
	if body["state"] != "idle" || body["message"] != "happy to help" {
		t.Fatalf("expected fresh idle session got %v", body)
	}
}
