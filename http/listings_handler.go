package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/filter"
	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/pagination"
)

type ListingsDeps struct {
	Builder   *apiquery.Builder
	Fetcher   backend.ListingFetcher
	Validator backend.Validator
	Views     *Views
}

type bounds struct{ Min, Max int }

type choice struct {
	Value   string
	Label   string
	Checked bool
}

type filterView struct {
	MinPrice, MaxPrice int
	MinArea, MaxArea   int
	PriceBounds        bounds
	AreaBounds         bounds
	Cities             []choice
	ZipCodes           []choice
	PropertyTypes      []choice
	Bedrooms           []choice
	Bathrooms          []choice
	AvailableBy        string
	Active             int
}

type listingsView struct {
	Filter     filterView
	SortBy     string
	SortDir    string
	OK         bool
	Cards      []backend.Card
	Meta       *backend.PageMeta
	PageNumber int
	Pager      *pagination.Pager
	Dropped    int
}

func RegisterListings(r chi.Router, d ListingsDeps) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		log := logger.From(req.Context())

		target := d.Builder.Build(q)
		log.Debug("fetching listings", "url", target)
		out := backend.Search(req.Context(), d.Fetcher, d.Validator, target, log)

		view := listingsView{
			Filter:  newFilterView(filter.Decode(q)),
			SortBy:  q.Get(filter.ParamSortBy),
			SortDir: q.Get(filter.ParamSortDir),
			OK:      out.OK,
			Cards:   backend.Cards(out.Listings),
			Meta:    out.Page,
			Dropped: out.Dropped,
		}
		if out.Page != nil {
			view.PageNumber = out.Page.Number + 1
			view.Pager = pagination.New(out.Page, q)
		}
		d.Views.Render(w, req, http.StatusOK, "listings.html", pageData{Body: view})
	})

	// Apply is the navigation step: the draft from the form becomes the page
	// query of the next GET /.
	r.Post("/filters", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Redirect(w, req, "/", http.StatusSeeOther)
			return
		}
		q := filter.Values(filter.Decode(req.PostForm))
		for _, k := range []string{filter.ParamSortBy, filter.ParamSortDir} {
			if v := req.PostForm.Get(k); v != "" {
				q.Set(k, v)
			}
		}
		http.Redirect(w, req, pageURL(q.Encode()), http.StatusSeeOther)
	})

	r.Post("/filters/reset", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusSeeOther)
	})
}

func pageURL(query string) string {
	if query == "" {
		return "/"
	}
	return "/?" + query
}

func newFilterView(s filter.State) filterView {
	v := filterView{
		MinPrice:    s.PriceRange[0],
		MaxPrice:    s.PriceRange[1],
		MinArea:     s.AreaRange[0],
		MaxArea:     s.AreaRange[1],
		PriceBounds: bounds{filter.MinPrice, filter.MaxPrice},
		AreaBounds:  bounds{filter.MinArea, filter.MaxArea},
		Active:      s.ActiveCount(),
	}
	for _, o := range filter.Cities {
		v.Cities = append(v.Cities, choice{o.Value, o.Label, s.Cities.Has(o.Value)})
	}
	for _, z := range filter.ZipCodes {
		v.ZipCodes = append(v.ZipCodes, choice{z, z, s.ZipCodes.Has(z)})
	}
	for _, o := range filter.PropertyTypes {
		v.PropertyTypes = append(v.PropertyTypes, choice{o.Value, o.Label, s.PropertyTypes.Has(o.Value)})
	}
	for _, o := range filter.BedroomOptions {
		v.Bedrooms = append(v.Bedrooms, choice{o.Value, o.Label, s.Bedrooms == o.Value})
	}
	for _, o := range filter.BathroomOptions {
		v.Bathrooms = append(v.Bathrooms, choice{o.Value, o.Label, s.Bathrooms == o.Value})
	}
	if s.HasDate() {
		v.AvailableBy = s.AvailabilityDate.Format(filter.DateLayout)
	}
	return v
}
