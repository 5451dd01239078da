package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Page query parameter names.
const (
	ParamMinPrice      = "minPrice"
	ParamMaxPrice      = "maxPrice"
	ParamMinArea       = "minArea"
	ParamMaxArea       = "maxArea"
	ParamCities        = "cities"
	ParamZipCodes      = "zipCodes"
	ParamPropertyTypes = "propertyTypes"
	ParamBeds          = "beds"
	ParamBaths         = "baths"
	ParamAvailableBy   = "availableBy"
	ParamPage          = "page"
	ParamSize          = "size"
	ParamSortBy        = "sortBy"
	ParamSortDir       = "sortDir"
)

// DateLayout is the calendar-day form used in page URLs.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate accepts a calendar day or an ISO-8601 date-time. Values without a
// zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Values returns the query parameters for s, omitting every field that equals
// its default. Set members are emitted in sorted order.
func Values(s State) url.Values {
	q := url.Values{}
	if s.PriceRange[0] != MinPrice {
		q.Set(ParamMinPrice, strconv.Itoa(s.PriceRange[0]))
	}
	if s.PriceRange[1] != MaxPrice {
		q.Set(ParamMaxPrice, strconv.Itoa(s.PriceRange[1]))
	}
	if s.AreaRange[0] != MinArea {
		q.Set(ParamMinArea, strconv.Itoa(s.AreaRange[0]))
	}
	if s.AreaRange[1] != MaxArea {
		q.Set(ParamMaxArea, strconv.Itoa(s.AreaRange[1]))
	}
	for _, v := range s.Cities.Sorted() {
		q.Add(ParamCities, v)
	}
	for _, v := range s.ZipCodes.Sorted() {
		q.Add(ParamZipCodes, v)
	}
	for _, v := range s.PropertyTypes.Sorted() {
		q.Add(ParamPropertyTypes, v)
	}
	if v := normChoice(s.Bedrooms); v != Any {
		q.Set(ParamBeds, v)
	}
	if v := normChoice(s.Bathrooms); v != Any {
		q.Set(ParamBaths, v)
	}
	if s.HasDate() {
		q.Set(ParamAvailableBy, s.AvailabilityDate.Format(DateLayout))
	}
	return q
}

// Encode returns the query string for s; the default state encodes to "".
func Encode(s State) string {
	return Values(s).Encode()
}

// Decode reads a page query (or the filter form) into a State. It never
// fails: malformed or unknown values fall back to the defaults and
// unrecognized parameters are ignored.
func Decode(q url.Values) State {
	s := Default()

	s.PriceRange = decodeRange(q, ParamMinPrice, ParamMaxPrice, MinPrice, MaxPrice)
	s.AreaRange = decodeRange(q, ParamMinArea, ParamMaxArea, MinArea, MaxArea)

	for _, v := range q[ParamCities] {
		if c, ok := CanonicalCity(v); ok {
			s.Cities.Add(c)
		}
	}
	for _, v := range q[ParamZipCodes] {
		if z, ok := CanonicalZip(v); ok {
			s.ZipCodes.Add(z)
		}
	}
	for _, v := range q[ParamPropertyTypes] {
		if pt, ok := CanonicalPropertyType(v); ok {
			s.PropertyTypes.Add(pt)
		}
	}

	if v := strings.TrimSpace(q.Get(ParamBeds)); bedValues.Has(v) {
		s.Bedrooms = v
	}
	if v := strings.TrimSpace(q.Get(ParamBaths)); bathValues.Has(v) {
		s.Bathrooms = v
	}

	if t, ok := ParseDate(q.Get(ParamAvailableBy)); ok {
		s.SetAvailabilityDate(t)
	}
	return s
}

// ParseQuery decodes a raw query string; a malformed string yields Default().
func ParseQuery(raw string) State {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Default()
	}
	return Decode(q)
}

func decodeRange(q url.Values, minKey, maxKey string, lo, hi int) [2]int {
	a := clamp(parseIntOr(q.Get(minKey), lo), lo, hi)
	b := clamp(parseIntOr(q.Get(maxKey), hi), lo, hi)
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// parseIntOr accepts integers and truncates decimals ("1200.5" -> 1200).
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
