// Package apiquery turns a page query into a backend listing-search URL.
package apiquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/yourorg/listings-web/internal/filter"
)

const (
	DefaultBaseURL = "http://localhost:4000"
	ListingsPath   = "/listings"

	DefaultPage = "0"
	DefaultSize = "21"
)

// ISOInstant matches the millisecond UTC form the backend expects.
const ISOInstant = "2006-01-02T15:04:05.000Z"

// Builder holds the backend base address.
type Builder struct {
	base   *url.URL
	logger *slog.Logger
}

// New parses base once. A malformed or relative base falls back to
// DefaultBaseURL so that Build stays total.
func New(base string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{base: parseBase(base), logger: logger}
}

// Build returns the backend URL for the page parameters in q.
func (b *Builder) Build(q url.Values) string {
	return build(b.base, q, b.logger)
}

// BuildListingsURL is Build without a long-lived Builder.
func BuildListingsURL(base string, q url.Values) string {
	return build(parseBase(base), q, slog.Default())
}

func parseBase(base string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Scheme == "" || u.Host == "" {
		u, _ = url.Parse(DefaultBaseURL)
	}
	return u
}

func build(base *url.URL, q url.Values, logger *slog.Logger) string {
	out := url.Values{}

	for _, k := range []string{filter.ParamMinPrice, filter.ParamMaxPrice, filter.ParamMinArea, filter.ParamMaxArea} {
		if v, ok := first(q, k); ok {
			out.Set(k, v)
		}
	}

	for _, k := range []string{filter.ParamCities, filter.ParamZipCodes} {
		for _, v := range q[k] {
			if v = strings.TrimSpace(v); v != "" {
				out.Add(k, v)
			}
		}
	}

	for _, k := range []string{filter.ParamBeds, filter.ParamBaths} {
		if v, ok := first(q, k); ok && !strings.EqualFold(strings.TrimSpace(v), filter.Any) {
			out.Set(k, v)
		}
	}

	if v, ok := first(q, filter.ParamAvailableBy); ok {
		if t, ok := filter.ParseDate(v); ok {
			out.Set(filter.ParamAvailableBy, t.UTC().Format(ISOInstant))
		} else {
			logger.Warn("dropping unparseable availableBy", "value", v)
		}
	}

	out.Set(filter.ParamPage, firstOr(q, filter.ParamPage, DefaultPage))
	out.Set(filter.ParamSize, firstOr(q, filter.ParamSize, DefaultSize))

	for _, k := range []string{filter.ParamSortBy, filter.ParamSortDir} {
		if v, ok := first(q, k); ok {
			out.Set(k, v)
		}
	}

	u := base.ResolveReference(&url.URL{Path: ListingsPath})
	u.RawQuery = out.Encode()
	return u.String()
}

// first returns the first value of k, unmodified, when it is non-blank.
func first(q url.Values, k string) (string, bool) {
	vs := q[k]
	if len(vs) == 0 || strings.TrimSpace(vs[0]) == "" {
		return "", false
	}
	return vs[0], true
}

func firstOr(q url.Values, k, def string) string {
	if v, ok := first(q, k); ok {
		return v
	}
	return def
}
