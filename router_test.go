package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourorg/listings-web/backend"
	httpapi "github.com/yourorg/listings-web/http"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/events"
	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/session"
)

type emptyFetcher struct{}

func (emptyFetcher) FetchListings(context.Context, string) (*backend.Result, int, error) {
	return &backend.Result{Kind: backend.KindList}, 0, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	views, err := httpapi.NewViews()
	if err != nil {
		t.Fatal(err)
	}
	api := backend.NewClient(backend.Options{BaseURL: "http://127.0.0.1:1", Logger: logger.Discard()})
	m := session.NewManager(api, session.NewMemoryStore(), events.NewInMemory(1), session.Options{Logger: logger.Discard()})
	t.Cleanup(m.Close)
	return BuildRouter(RouterDeps{
		Logger:          logger.Discard(),
		Builder:         apiquery.New("http://api.test", logger.Discard()),
		Fetcher:         emptyFetcher{},
		Validator:       backend.NewValidator(""),
		Sessions:        m,
		Views:           views,
		RateLimitPerMin: 100,
		CORSOrigins:     []string{"http://localhost:3000"},
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestPagesAreNotCached(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("no Cache-Control on page")
	}
	if rec.Header().Get(logger.TraceHeader) == "" {
		t.Error("no trace id header")
	}
}

func TestV1CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/listings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q (status %d)", got, rec.Code)
	}
}
