package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/filter"
	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/session"
)

type APIDeps struct {
	Builder   *apiquery.Builder
	Fetcher   backend.ListingFetcher
	Validator backend.Validator
	// Middlewares wrap the whole /v1 subrouter, preflight requests included.
	Middlewares []func(http.Handler) http.Handler
}

type ListingsResponse struct {
	OK       bool              `json:"ok"`
	Shape    string            `json:"shape"`
	Count    int               `json:"count"`
	Dropped  int               `json:"dropped"`
	Listings []backend.Listing `json:"listings"`
	Page     *backend.PageMeta `json:"page,omitempty"`
}

type FiltersResponse struct {
	Query   string      `json:"query"`
	Active  int         `json:"active"`
	Filters FilterState `json:"filters"`
}

// FilterState is the JSON form of filter.State.
type FilterState struct {
	PriceRange    [2]int   `json:"priceRange"`
	AreaRange     [2]int   `json:"areaRange"`
	Cities        []string `json:"cities"`
	ZipCodes      []string `json:"zipCodes"`
	Bedrooms      string   `json:"bedrooms"`
	Bathrooms     string   `json:"bathrooms"`
	PropertyTypes []string `json:"propertyTypes"`
	AvailableBy   *string  `json:"availabilityDate"`
}

func fromState(s filter.State) FilterState {
	out := FilterState{
		PriceRange:    s.PriceRange,
		AreaRange:     s.AreaRange,
		Cities:        s.Cities.Sorted(),
		ZipCodes:      s.ZipCodes.Sorted(),
		Bedrooms:      s.Bedrooms,
		Bathrooms:     s.Bathrooms,
		PropertyTypes: s.PropertyTypes.Sorted(),
	}
	if s.HasDate() {
		d := s.AvailabilityDate.Format(filter.DateLayout)
		out.AvailableBy = &d
	}
	return out
}

func RegisterAPI(r chi.Router, d APIDeps) {
	r.Route("/v1", func(r chi.Router) {
		r.Use(d.Middlewares...)
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/listings", func(w http.ResponseWriter, req *http.Request) {
			out := backend.Search(req.Context(), d.Fetcher, d.Validator, d.Builder.Build(req.URL.Query()), logger.From(req.Context()))
			if !out.OK {
				writeError(w, req, http.StatusBadGateway, "upstream_error", "listing backend unavailable")
				return
			}
			render.JSON(w, req, ListingsResponse{
				OK:       true,
				Shape:    out.Kind.String(),
				Count:    len(out.Listings),
				Dropped:  out.Dropped,
				Listings: out.Listings,
				Page:     out.Page,
			})
		})

		r.Get("/filters/encode", func(w http.ResponseWriter, req *http.Request) {
			s := filter.Decode(req.URL.Query())
			render.JSON(w, req, FiltersResponse{
				Query:   filter.Encode(s),
				Active:  s.ActiveCount(),
				Filters: fromState(s),
			})
		})

		r.Get("/session", func(w http.ResponseWriter, req *http.Request) {
			s := session.FromContext(req.Context())
			if !s.Authenticated() {
				writeError(w, req, http.StatusUnauthorized, "unauthenticated", "no active session")
				return
			}
			render.JSON(w, req, s.User)
		})
	})
}

func writeError(w http.ResponseWriter, req *http.Request, status int, code, detail string) {
	render.Status(req, status)
	render.JSON(w, req, map[string]any{"error": code, "detail": detail})
}
