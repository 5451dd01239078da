package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestSetToggle(t *testing.T) {
	s := NewSet("a")
	if s.Toggle("a") {
		t.Error("toggling a member should remove it")
	}
	if !s.Toggle("b") || !s.Has("b") {
		t.Error("toggling a non-member should add it")
	}
	s.Add("a")
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Sorted = %v", got)
	}
	c := s.Clone()
	c.Remove("a")
	if !s.Has("a") {
		t.Error("Clone shares storage")
	}
}

func TestToggleOnZeroState(t *testing.T) {
	var s State
	if !s.ToggleCity("Orlando") || !s.ToggleZipCode("32817") || !s.TogglePropertyType("condo") {
		t.Fatal("toggle on nil sets should add")
	}
}

func TestActiveCount(t *testing.T) {
	s := Default()
	if n := s.ActiveCount(); n != 0 {
		t.Fatalf("default ActiveCount = %d", n)
	}
	s.PriceRange[0] = 700
	s.PriceRange[1] = 900
	s.ToggleZipCode("32817")
	s.ToggleZipCode("32820")
	s.Bedrooms = "2"
	s.SetAvailabilityDate(time.Now())
	if n := s.ActiveCount(); n != 4 {
		t.Fatalf("ActiveCount = %d, want 4", n)
	}
}

func TestSetAvailabilityDateTruncates(t *testing.T) {
	var s State
	loc := time.FixedZone("EST", -5*3600)
	s.SetAvailabilityDate(time.Date(2025, 6, 9, 23, 59, 0, 0, loc))
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !s.AvailabilityDate.Equal(want) {
		t.Fatalf("got %v, want %v", s.AvailabilityDate, want)
	}
	s.SetAvailabilityDate(time.Time{})
	if s.HasDate() {
		t.Fatal("zero time should clear the date")
	}
}

func TestCanonicalZipRejectsUnknown(t *testing.T) {
	if _, ok := CanonicalZip("10001"); ok {
		t.Error("zip outside the list accepted")
	}
	if z, ok := CanonicalZip(" 32833 "); !ok || z != "32833" {
		t.Errorf("CanonicalZip = %q, %v", z, ok)
	}
}
