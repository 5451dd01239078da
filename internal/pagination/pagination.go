// Package pagination computes the page controls shown under the listing grid.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/yourorg/listings-web/backend"
)

const (
	maxVisible  = 7
	DefaultSize = "21"
)

// Item is one control: a page number or, when Gap is set, an ellipsis.
type Item struct {
	Page    int
	URL     string
	Current bool
	Gap     bool
}

type Pager struct {
	Current    int // 1-based
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	Items      []Item
	Summary    string
}

// New returns nil when there is nothing to paginate.
func New(meta *backend.PageMeta, query url.Values) *Pager {
	if meta == nil || meta.TotalPages <= 1 {
		return nil
	}
	cur := meta.Number + 1
	p := &Pager{
		Current:    cur,
		TotalPages: meta.TotalPages,
		HasPrev:    !meta.First,
		HasNext:    !meta.Last,
		Summary:    fmt.Sprintf("Showing %d of %d results", meta.NumberOfElements, meta.TotalElements),
	}
	if p.HasPrev {
		p.PrevURL = PageURL(query, cur-1)
	}
	if p.HasNext {
		p.NextURL = PageURL(query, cur+1)
	}
	for _, n := range Window(cur, meta.TotalPages) {
		if n == 0 {
			p.Items = append(p.Items, Item{Gap: true})
			continue
		}
		p.Items = append(p.Items, Item{Page: n, URL: PageURL(query, n), Current: n == cur})
	}
	return p
}

// Window lists the 1-based page numbers to show, with 0 marking a gap.
func Window(current, total int) []int {
	var pages []int
	switch {
	case total <= maxVisible:
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	case current <= 4:
		pages = append(pages, 1, 2, 3, 4, 5, 0, total)
	case current >= total-3:
		pages = append(pages, 1, 0)
		for i := total - 4; i <= total; i++ {
			pages = append(pages, i)
		}
	default:
		pages = append(pages, 1, 0, current-1, current, current+1, 0, total)
	}
	return pages
}

// PageURL links to 1-based page on the listings page, keeping the rest of
// the query. The page parameter itself is zero-indexed.
func PageURL(query url.Values, page int) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page-1))
	}
	if !q.Has("size") {
		q.Set("size", DefaultSize)
	}
	if s := q.Encode(); s != "" {
		return "/?" + s
	}
	return "/"
}
