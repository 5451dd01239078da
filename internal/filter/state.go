// Package filter models the listing filter selection and its query-string form.
package filter

import "time"

// Any is the "no constraint" value for bedrooms and bathrooms.
const Any = "any"

const (
	MinPrice = 600
	MaxPrice = 15000
	MinArea  = 150
	MaxArea  = 5100
)

// State is a draft filter selection. Unset fields behave like Default().
type State struct {
	PriceRange       [2]int
	AreaRange        [2]int
	Cities           Set
	ZipCodes         Set
	Bedrooms         string
	Bathrooms        string
	PropertyTypes    Set
	AvailabilityDate time.Time // day granularity, zero means unset
}

func Default() State {
	return State{
		PriceRange:    [2]int{MinPrice, MaxPrice},
		AreaRange:     [2]int{MinArea, MaxArea},
		Cities:        Set{},
		ZipCodes:      Set{},
		Bedrooms:      Any,
		Bathrooms:     Any,
		PropertyTypes: Set{},
	}
}

func (s State) HasDate() bool { return !s.AvailabilityDate.IsZero() }

// SetAvailabilityDate truncates t to its calendar day in UTC.
func (s *State) SetAvailabilityDate(t time.Time) {
	if t.IsZero() {
		s.AvailabilityDate = time.Time{}
		return
	}
	y, m, d := t.Date()
	s.AvailabilityDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *State) ToggleCity(v string) bool {
	if s.Cities == nil {
		s.Cities = Set{}
	}
	return s.Cities.Toggle(v)
}

func (s *State) ToggleZipCode(v string) bool {
	if s.ZipCodes == nil {
		s.ZipCodes = Set{}
	}
	return s.ZipCodes.Toggle(v)
}

func (s *State) TogglePropertyType(v string) bool {
	if s.PropertyTypes == nil {
		s.PropertyTypes = Set{}
	}
	return s.PropertyTypes.Toggle(v)
}

// ActiveCount is the number of filter groups that differ from the defaults.
func (s State) ActiveCount() int {
	n := 0
	if s.PriceRange != [2]int{MinPrice, MaxPrice} {
		n++
	}
	if s.AreaRange != [2]int{MinArea, MaxArea} {
		n++
	}
	for _, set := range []Set{s.Cities, s.ZipCodes, s.PropertyTypes} {
		if set.Len() > 0 {
			n++
		}
	}
	if s.Bedrooms != "" && s.Bedrooms != Any {
		n++
	}
	if s.Bathrooms != "" && s.Bathrooms != Any {
		n++
	}
	if s.HasDate() {
		n++
	}
	return n
}

// Equal compares two states field by field; nil and empty sets are equal.
func (s State) Equal(o State) bool {
	return s.PriceRange == o.PriceRange &&
		s.AreaRange == o.AreaRange &&
		s.Cities.Equal(o.Cities) &&
		s.ZipCodes.Equal(o.ZipCodes) &&
		s.PropertyTypes.Equal(o.PropertyTypes) &&
		normChoice(s.Bedrooms) == normChoice(o.Bedrooms) &&
		normChoice(s.Bathrooms) == normChoice(o.Bathrooms) &&
		s.AvailabilityDate.Equal(o.AvailabilityDate)
}

func normChoice(v string) string {
	if v == "" {
		return Any
	}
	return v
}
