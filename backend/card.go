package backend

import (
	"strconv"
	"strings"

	"github.com/yourorg/listings-web/internal/canon"
)

// Card is the display form of a listing.
type Card struct {
	Zpid      string
	ImgSrc    string
	DetailURL string
	Price     string
	Zestimate string
	Street    string
	Locality  string
	Beds      string
	Baths     string
	Area      string
	Available string
}

func NewCard(l Listing) Card {
	c := Card{
		Zpid:      l.Zpid,
		ImgSrc:    l.ImgSrc,
		DetailURL: l.DetailURL,
		Price:     strings.TrimSpace(strings.Replace(l.Price.String(), "/mo", "", 1)),
		Street:    orNA(l.AddressStreet),
		Locality:  canon.Locality(l.AddressCity, l.AddressState, l.AddressZipcode),
		Beds:      countLabel(deref(l.Beds), "bed"),
		Baths:     countLabel(deref(l.Baths), "bath"),
	}
	if z := deref(l.Zestimate); z > 0 {
		c.Zestimate = "Est. $" + thousands(z)
	}
	if a := deref(l.Area); a > 0 {
		c.Area = thousands(a) + " sqft"
	}
	if !l.AvailabilityDate.IsZero() {
		c.Available = "Available " + l.AvailabilityDate.Format("Jan 2, 2006")
	}
	return c
}

func Cards(ls []Listing) []Card {
	out := make([]Card, len(ls))
	for i, l := range ls {
		out[i] = NewCard(l)
	}
	return out
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func countLabel(n float64, noun string) string {
	s := strconv.FormatFloat(n, 'f', -1, 64) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// thousands renders n with comma grouping, keeping up to two decimals.
func thousands(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
