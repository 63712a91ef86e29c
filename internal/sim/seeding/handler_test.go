package seeding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/revcycle/revcycle/internal/sim/lifecycle"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

func newTestHandler() (*Handler, *memStore) {
	store := &memStore{}
	seeder := newSeeder(store, &dropDeferrer{}, 10)
	repos := memRepos(store)
	engine := lifecycle.New(lifecycle.Repos{
		Claims:      repos.Claims,
		LineItems:   repos.LineItems,
		Denials:     repos.Denials,
		Appeals:     repos.Appeals,
		Payments:    repos.Payments,
		Adjustments: repos.Adjustments,
		Tasks:       repos.Tasks,
	}, sampling.NewSource(2), zerolog.Nop())
	return NewHandler(seeder, engine, 100), store
}

func doRequest(h *Handler, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e.Group("/sim"))
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleSeed(t *testing.T) {
	h, store := newTestHandler()

	rec := doRequest(h, http.MethodPost, "/sim/seed")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first seed status = %d, want 202", rec.Code)
	}
	if len(store.orgs) == 0 {
		t.Fatal("seed created no organizations")
	}

	rec = doRequest(h, http.MethodPost, "/sim/seed")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second seed status = %d, want 409", rec.Code)
	}
}

func TestHandleProgress(t *testing.T) {
	h, _ := newTestHandler()
	doRequest(h, http.MethodPost, "/sim/seed")

	rec := doRequest(h, http.MethodGet, "/sim/seed/progress")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status = %d, want 200", rec.Code)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("progress body: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("progress returned no records")
	}
	if _, ok := records[0]["phase"]; !ok {
		t.Fatal("progress record missing phase")
	}
}

func TestHandleReset_RequiresConfirm(t *testing.T) {
	h, store := newTestHandler()
	doRequest(h, http.MethodPost, "/sim/seed")
	orgsBefore := len(store.orgs)

	rec := doRequest(h, http.MethodPost, "/sim/seed/reset")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed reset status = %d, want 400", rec.Code)
	}
	if len(store.orgs) != orgsBefore {
		t.Fatal("unconfirmed reset modified the dataset")
	}

	rec = doRequest(h, http.MethodPost, "/sim/seed/reset?confirm=true")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("confirmed reset status = %d, want 202", rec.Code)
	}
}

func TestHandleDaily(t *testing.T) {
	h, store := newTestHandler()
	doRequest(h, http.MethodPost, "/sim/seed")
	// Run one patient batch per org so daily claims have linkage targets.
	for _, org := range store.orgs {
		if err := h.seeder.Continue(context.Background(), org.ID); err != nil {
			t.Fatalf("Continue: %v", err)
		}
	}

	rec := doRequest(h, http.MethodPost, "/sim/claims/daily")
	if rec.Code != http.StatusOK {
		t.Fatalf("daily status = %d, want 200", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("daily body: %v", err)
	}
	if body["claims_created"] == 0 {
		t.Fatal("daily generation reported zero claims")
	}
}

func TestHandleSubmitReady(t *testing.T) {
	h, _ := newTestHandler()

	rec := doRequest(h, http.MethodPost, "/sim/claims/submit")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("submit without org status = %d, want 400", rec.Code)
	}

	rec = doRequest(h, http.MethodPost, "/sim/claims/submit?org=NOSUCH")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("submit with unknown org status = %d, want 404", rec.Code)
	}

	doRequest(h, http.MethodPost, "/sim/seed")
	rec = doRequest(h, http.MethodPost, "/sim/claims/submit?org=SUMMIT")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, want 200", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("submit body: %v", err)
	}
	if _, ok := body["submitted"]; !ok {
		t.Fatal("submit result missing submitted count")
	}
}

func TestHandleSweep(t *testing.T) {
	h, _ := newTestHandler()

	rec := doRequest(h, http.MethodPost, "/sim/lifecycle/sweep")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("sweep without org status = %d, want 400", rec.Code)
	}

	rec = doRequest(h, http.MethodPost, "/sim/lifecycle/sweep?org=NOSUCH")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("sweep with unknown org status = %d, want 404", rec.Code)
	}

	doRequest(h, http.MethodPost, "/sim/seed")
	rec = doRequest(h, http.MethodPost, "/sim/lifecycle/sweep?org=SUMMIT")
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep status = %d, want 200", rec.Code)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("sweep body: %v", err)
	}
	if _, ok := result["examined"]; !ok {
		t.Fatal("sweep result missing examined count")
	}
}
