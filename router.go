package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/yourorg/listings-web/backend"
	httpapi "github.com/yourorg/listings-web/http"
	httpv1 "github.com/yourorg/listings-web/http/v1"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/session"
)

type RouterDeps struct {
	Logger          *slog.Logger
	Builder         *apiquery.Builder
	Fetcher         backend.ListingFetcher
	Validator       backend.Validator
	Sessions        *session.Manager
	Views           *httpapi.Views
	RateLimitPerMin int
	CORSOrigins     []string
	CookieSecure    bool
}

func BuildRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, logger.Middleware(d.Logger), middleware.Recoverer)
	if d.RateLimitPerMin > 0 {
		r.Use(httprate.LimitByIP(d.RateLimitPerMin, 1*time.Minute)) // protect the backend
	}
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.Middleware)

		// Pages always reflect current backend state.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoCache)
			httpapi.RegisterListings(r, httpapi.ListingsDeps{
				Builder:   d.Builder,
				Fetcher:   d.Fetcher,
				Validator: d.Validator,
				Views:     d.Views,
			})
			httpapi.RegisterAuth(r, httpapi.AuthDeps{
				Sessions:     d.Sessions,
				Views:        d.Views,
				CookieSecure: d.CookieSecure,
			})
		})

		httpv1.RegisterAPI(r, httpv1.APIDeps{
			Builder:   d.Builder,
			Fetcher:   d.Fetcher,
			Validator: d.Validator,
			Middlewares: []func(http.Handler) http.Handler{cors.Handler(cors.Options{
				AllowedOrigins:   d.CORSOrigins,
				AllowedMethods:   []string{"GET", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type", logger.TraceHeader},
				ExposedHeaders:   []string{logger.TraceHeader},
				AllowCredentials: true,
				MaxAge:           300,
			})},
		})
	})

	return r
}
