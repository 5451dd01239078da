package pagination

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/yourorg/listings-web/backend"
)

func TestNewSinglePageRendersNothing(t *testing.T) {
	if p := New(&backend.PageMeta{TotalPages: 1, First: true, Last: true}, nil); p != nil {
		t.Fatalf("pager for one page: %+v", p)
	}
	if p := New(nil, nil); p != nil {
		t.Fatalf("pager for a bare list: %+v", p)
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		cur, total int
		want       []int
	}{
		{1, 3, []int{1, 2, 3}},
		{4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{2, 20, []int{1, 2, 3, 4, 5, 0, 20}},
		{4, 20, []int{1, 2, 3, 4, 5, 0, 20}},
		{17, 20, []int{1, 0, 16, 17, 18, 19, 20}},
		{20, 20, []int{1, 0, 16, 17, 18, 19, 20}},
		{10, 20, []int{1, 0, 9, 10, 11, 0, 20}},
	}
	for _, c := range cases {
		if got := Window(c.cur, c.total); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Window(%d, %d) = %v, want %v", c.cur, c.total, got, c.want)
		}
	}
}

func TestPageURL(t *testing.T) {
	q := url.Values{"cities": {"Orlando"}, "page": {"3"}}
	if got := PageURL(q, 1); got != "/?cities=Orlando&size=21" {
		t.Errorf("page 1 = %s", got)
	}
	if got := PageURL(q, 5); got != "/?cities=Orlando&page=4&size=21" {
		t.Errorf("page 5 = %s", got)
	}
	if q.Get("page") != "3" {
		t.Errorf("input query mutated: %v", q)
	}
	if got := PageURL(url.Values{"size": {"9"}}, 2); got != "/?page=1&size=9" {
		t.Errorf("explicit size = %s", got)
	}
}

func TestNewPager(t *testing.T) {
	meta := &backend.PageMeta{Number: 0, TotalPages: 3, TotalElements: 50, NumberOfElements: 21, First: true}
	p := New(meta, url.Values{})
	if p == nil {
		t.Fatal("expected pager")
	}
	if p.Current != 1 || p.HasPrev || !p.HasNext || p.PrevURL != "" {
		t.Errorf("pager = %+v", p)
	}
	if p.NextURL != "/?page=1&size=21" {
		t.Errorf("next = %s", p.NextURL)
	}
	if p.Summary != "Showing 21 of 50 results" {
		t.Errorf("summary = %q", p.Summary)
	}
	if len(p.Items) != 3 || !p.Items[0].Current || p.Items[0].URL != "/?size=21" {
		t.Errorf("items = %+v", p.Items)
	}
}
