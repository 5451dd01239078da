package backend

import (
	"context"
	"log/slog"
)

type ListingFetcher interface {
	FetchListings(ctx context.Context, listingsURL string) (*Result, int, error)
}

// Outcome is what a page render gets back. OK false means "no data"; the
// caller shows an error state.
type Outcome struct {
	OK       bool
	Kind     Kind
	Listings []Listing
	Page     *PageMeta
	Dropped  int
}

// Search fetches and validates one page of listings. It never returns an
// error: failures are logged and reported as an Outcome with OK unset.
func Search(ctx context.Context, f ListingFetcher, v Validator, listingsURL string, logger *slog.Logger) Outcome {
	if logger == nil {
		logger = slog.Default()
	}

	res, undecodable, err := f.FetchListings(ctx, listingsURL)
	if err != nil {
		logger.Error("fetch listings failed", "url", listingsURL, "err", err)
		return Outcome{}
	}

	valid, invalid := v.Filter(res.Listings)
	out := Outcome{
		OK:       true,
		Kind:     res.Kind,
		Listings: valid,
		Page:     res.Page,
		Dropped:  undecodable + invalid,
	}
	if out.Dropped > 0 {
		logger.Warn("dropped invalid listings",
			"dropped", out.Dropped,
			"undecodable", undecodable,
			"kept", len(valid),
			"shape", res.Kind.String(),
		)
	}
	logger.Debug("listings fetched", "count", len(valid), "shape", res.Kind.String())
	return out
}
