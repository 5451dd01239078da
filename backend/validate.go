package backend

import "strings"

const DefaultImageHost = "photos.zillowstatic.com"

// Validator decides which listings are complete enough to show.
type Validator struct {
	// ImageHost is the only host imgSrc may point at.
	ImageHost string
}

func NewValidator(imageHost string) Validator {
	if strings.TrimSpace(imageHost) == "" {
		imageHost = DefaultImageHost
	}
	return Validator{ImageHost: imageHost}
}

// Valid reports whether l has identity, a real price, a full address and a
// trusted image. Beds and baths may be 0; a known area must be positive.
// The area rule is stricter than beds/baths on purpose: a 0 sq ft listing is
// bad data, a studio with 0 bedrooms is not.
func (v Validator) Valid(l Listing) bool {
	if l.Zpid == "" || l.Address == "" || l.AddressStreet == "" {
		return false
	}
	price := strings.TrimSpace(l.Price.String())
	if price == "" || price == "0" || price == "$0" {
		return false
	}
	if l.AddressCity == "" || l.AddressState == "" || l.AddressZipcode == "" {
		return false
	}
	if strings.TrimSpace(l.ImgSrc) == "" || !strings.Contains(l.ImgSrc, v.host()) {
		return false
	}
	if l.Beds != nil && *l.Beds < 0 {
		return false
	}
	if l.Baths != nil && *l.Baths < 0 {
		return false
	}
	if l.Area != nil && *l.Area <= 0 {
		return false
	}
	return true
}

// Filter keeps the valid listings in order and returns how many were dropped.
func (v Validator) Filter(listings []Listing) ([]Listing, int) {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if v.Valid(l) {
			out = append(out, l)
		}
	}
	return out, len(listings) - len(out)
}

func (v Validator) host() string {
	if v.ImageHost == "" {
		return DefaultImageHost
	}
	return v.ImageHost
}
