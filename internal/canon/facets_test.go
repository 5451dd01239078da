package canon

import "testing"

func TestLookupCanonical(t *testing.T) {
	l := NewLookup("Orlando", "Winter Park")
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Winter Park", "Winter Park", true},
		{"winter-park", "Winter Park", true},
		{"  WINTER_PARK ", "Winter Park", true},
		{"orlando", "Orlando", true},
		{"Tampa", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := l.Canonical(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Canonical(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestZip(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"32817", "32817", true},
		{" 32817 ", "32817", true},
		{"32817-1234", "32817", true},
		{"3281", "3281", false},
		{"3281a", "3281a", false},
	}
	for _, c := range cases {
		got, ok := Zip(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Zip(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestLocality(t *testing.T) {
	cases := []struct {
		city, state, zip string
		want             string
	}{
		{"Orlando", "FL", "32801", "Orlando, FL 32801"},
		{" Winter  Park ", "florida", "32789-1234", "Winter Park, FL 32789"},
		{"", "", "", "N/A, N/A N/A"},
	}
	for _, c := range cases {
		if got := Locality(c.city, c.state, c.zip); got != c.want {
			t.Errorf("Locality(%q, %q, %q) = %q, want %q", c.city, c.state, c.zip, got, c.want)
		}
	}
}
