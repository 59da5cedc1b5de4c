package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkalenko/medfact/internal/model"
)

func TestAdminCRUDRoutes(t *testing.T) {
	var lastMethod, lastPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastMethod, lastPath = r.Method, r.URL.Path
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case lastPath == "/admin/sources/" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 1, "title": "Study X"}]`))
		default:
			_, _ = w.Write([]byte(`{"id": 1}`))
		}
	}))
	defer server.Close()

	client := testClient(server.URL, WithTokenSource(staticToken("tok")))
	ctx := context.Background()

	sources, err := client.ListSources(ctx)
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	if len(sources) != 1 || sources[0].Title != "Study X" {
		t.Errorf("unexpected sources %+v", sources)
	}
	if lastMethod != http.MethodGet || lastPath != "/admin/sources/" {
		t.Errorf("unexpected route %s %s", lastMethod, lastPath)
	}

	if _, err := client.CreateJournal(ctx, model.Journal{Name: "The Lancet"}); err != nil {
		t.Fatalf("CreateJournal: %v", err)
	}
	if lastMethod != http.MethodPost || lastPath != "/admin/journals/" {
		t.Errorf("unexpected route %s %s", lastMethod, lastPath)
	}

	if err := client.DeleteClaim(ctx, 9); err != nil {
		t.Fatalf("DeleteClaim: %v", err)
	}
	if lastMethod != http.MethodDelete || lastPath != "/claims/9/" {
		t.Errorf("unexpected route %s %s", lastMethod, lastPath)
	}
}

func TestResolveDispute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/disputes/3/" {
			t.Errorf("unexpected route %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Status model.DisputeStatus `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Status != model.DisputeAccepted {
			t.Errorf("unexpected status %q", body.Status)
		}
		_, _ = w.Write([]byte(`{"id": 3, "reason": "x", "status": "accepted"}`))
	}))
	defer server.Close()

	client := testClient(server.URL, WithTokenSource(staticToken("tok")))
	updated, err := client.ResolveDispute(context.Background(), 3, model.DisputeAccepted)
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if updated.Status != model.DisputeAccepted {
		t.Errorf("unexpected dispute %+v", updated)
	}
}
