// Command listingsq runs the listings page pipeline from the terminal: it
// decodes a page query, builds the backend URL, fetches, validates and
// prints the cards.
//
//	listingsq 'cities=Orlando&beds=2&availableBy=2025-08-01'
//
// LISTINGSQ_WATCH repeats the query at that interval until interrupted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/config"
	"github.com/yourorg/listings-web/internal/env"
	"github.com/yourorg/listings-web/internal/filter"
	"github.com/yourorg/listings-web/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, closer, err := logger.New(cfg.Log, "listingsq", os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closer.Close()

	raw := ""
	if len(os.Args) > 1 {
		raw = strings.Join(os.Args[1:], "&")
	}
	watch := env.GetDuration("LISTINGSQ_WATCH", 0)
	asJSON := env.GetBool("LISTINGSQ_JSON", false)

	state := filter.ParseQuery(raw)
	q := filter.Values(state)
	// Paging and sorting are not filter state; carry them over as given.
	if orig, err := url.ParseQuery(strings.TrimPrefix(raw, "?")); err == nil {
		for _, k := range []string{filter.ParamPage, filter.ParamSize, filter.ParamSortBy, filter.ParamSortDir} {
			if v := orig.Get(k); v != "" {
				q.Set(k, v)
			}
		}
	}

	client := backend.NewClient(backend.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.BackendTimeout,
		RPS:     cfg.BackendRPS,
		Burst:   cfg.BackendBurst,
		Logger:  lg,
	})
	target := apiquery.New(cfg.APIBaseURL, lg).Build(q)
	validator := backend.NewValidator(cfg.TrustedImageHost)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("listingsq", "filters", state.ActiveCount(), "url", target, "watch", watch.String())
	for {
		out := backend.Search(ctx, client, validator, target, lg)
		if asJSON {
			printJSON(os.Stdout, out)
		} else {
			printTable(os.Stdout, out)
		}
		if watch <= 0 {
			if !out.OK {
				return 1
			}
			return 0
		}
		select {
		case <-ctx.Done():
			return 0
		case <-time.After(watch):
		}
	}
}

func printTable(w io.Writer, out backend.Outcome) {
	if !out.OK {
		fmt.Fprintln(w, "Error loading listings")
		return
	}
	if len(out.Listings) == 0 {
		fmt.Fprintln(w, "No valid listings found matching your criteria")
		return
	}
	if out.Page != nil {
		fmt.Fprintf(w, "%d total results found, page %d of %d\n", out.Page.TotalElements, out.Page.Number+1, out.Page.TotalPages)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZPID\tPRICE\tBEDS\tBATHS\tAREA\tADDRESS")
	for _, c := range backend.Cards(out.Listings) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s, %s\n", c.Zpid, c.Price, c.Beds, c.Baths, c.Area, c.Street, c.Locality)
	}
	tw.Flush()
	if out.Dropped > 0 {
		fmt.Fprintf(w, "(%d invalid listings hidden)\n", out.Dropped)
	}
}

func printJSON(w io.Writer, out backend.Outcome) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]any{
		"ok":       out.OK,
		"shape":    out.Kind.String(),
		"dropped":  out.Dropped,
		"listings": out.Listings,
		"page":     out.Page,
	})
}
