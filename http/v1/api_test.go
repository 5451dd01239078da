package v1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/session"
)

type fetcher struct {
	res *backend.Result
	bad int
	err error
}

func (f fetcher) FetchListings(context.Context, string) (*backend.Result, int, error) {
	return f.res, f.bad, f.err
}

func newAPI(f backend.ListingFetcher) http.Handler {
	r := chi.NewRouter()
	RegisterAPI(r, APIDeps{
		Builder:   apiquery.New("http://api.test", slog.New(slog.NewTextHandler(io.Discard, nil))),
		Fetcher:   f,
		Validator: backend.NewValidator(""),
	})
	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListingsJSON(t *testing.T) {
	good := backend.Listing{
		Zpid: "1", Address: "a", AddressStreet: "s", AddressCity: "Oviedo", AddressState: "FL",
		AddressZipcode: "32765", ImgSrc: "https://photos.zillowstatic.com/1.jpg", Price: "$1,400/mo",
	}
	bad := good
	bad.ImgSrc = "https://evil.example.com/x.jpg"
	meta := &backend.PageMeta{TotalPages: 4, TotalElements: 80}

	rec := do(newAPI(fetcher{res: &backend.Result{Kind: backend.KindPage, Listings: []backend.Listing{good, bad}, Page: meta}, bad: 1}),
		httptest.NewRequest(http.MethodGet, "/v1/listings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got ListingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.OK || got.Count != 1 || got.Dropped != 2 || got.Shape != "page" || got.Page == nil || got.Page.TotalPages != 4 {
		t.Fatalf("response = %+v", got)
	}
}

func TestListingsUpstreamError(t *testing.T) {
	rec := do(newAPI(fetcher{err: errors.New("down")}), httptest.NewRequest(http.MethodGet, "/v1/listings", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "upstream_error" {
		t.Fatalf("body = %v", body)
	}
}

func TestFiltersEncode(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/filters/encode?cities=oviedo&cities=Orlando&beds=any&minPrice=abc&zipCodes=32817-1234&page=3", nil)
	rec := do(newAPI(fetcher{}), req)

	var got FiltersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Query != "cities=Orlando&cities=Oviedo&zipCodes=32817" {
		t.Errorf("query = %q", got.Query)
	}
	if got.Filters.PriceRange != [2]int{600, 15000} || got.Filters.Bedrooms != "any" || got.Filters.AvailableBy != nil {
		t.Errorf("filters = %+v", got.Filters)
	}
	if got.Active != 2 {
		t.Errorf("active = %d", got.Active)
	}
}

func TestSessionEndpoint(t *testing.T) {
	h := newAPI(fetcher{})
	if rec := do(h, httptest.NewRequest(http.MethodGet, "/v1/session", nil)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req = req.WithContext(session.WithSession(req.Context(), &session.Session{ID: "s", User: &backend.User{ID: 4, Username: "bo"}}))
	rec := do(h, req)
	var u backend.User
	json.Unmarshal(rec.Body.Bytes(), &u)
	if rec.Code != http.StatusOK || u.Username != "bo" {
		t.Fatalf("got %d %+v", rec.Code, u)
	}
}
