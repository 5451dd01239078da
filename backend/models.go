package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Listing is one record of GET /listings. Numeric facts are nil when the
// backend does not know them.
type Listing struct {
	Zpid             string        `json:"zpid"`
	Address          string        `json:"address"`
	AddressStreet    string        `json:"addressStreet"`
	AddressCity      string        `json:"addressCity"`
	AddressState     string        `json:"addressState"`
	AddressZipcode   string        `json:"addressZipcode"`
	Latitude         *float64      `json:"latitude"`
	Longitude        *float64      `json:"longitude"`
	ImgSrc           string        `json:"imgSrc"`
	DetailURL        string        `json:"detailUrl"`
	StatusText       string        `json:"statusText"`
	Price            StringNumber  `json:"price"`
	Beds             *float64      `json:"beds"`
	Baths            *float64      `json:"baths"`
	Area             *float64      `json:"area"`
	HasVideo         bool          `json:"hasVideo"`
	Zestimate        *float64      `json:"zestimate"`
	AvailabilityDate LocalDateTime `json:"availabilityDate"`
	CreatedAt        LocalDateTime `json:"createdAt"`
	UpdatedAt        LocalDateTime `json:"updatedAt"`
}

// PageMeta is the pagination part of the envelope; Number is zero-indexed.
type PageMeta struct {
	Number           int  `json:"number"`
	Size             int  `json:"size"`
	TotalPages       int  `json:"totalPages"`
	TotalElements    int  `json:"totalElements"`
	NumberOfElements int  `json:"numberOfElements"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	Empty            bool `json:"empty"`
}

// Kind tells which shape the backend answered with.
type Kind int

const (
	KindList Kind = iota // bare JSON array
	KindPage             // envelope with a "content" field
)

func (k Kind) String() string {
	if k == KindPage {
		return "page"
	}
	return "list"
}

// Result is either a bare list (Page == nil) or a paginated envelope.
type Result struct {
	Kind     Kind
	Listings []Listing
	Page     *PageMeta
}

// StringNumber accepts a JSON string or number and keeps the textual form.
type StringNumber string

func (s *StringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = StringNumber(num.String())
	return nil
}

func (s StringNumber) String() string { return string(s) }

// LocalDateTime is a zone-less timestamp. It accepts an ISO string or the
// [y, m, d, h, min, s, nanos] array form and keeps the day-level value.
type LocalDateTime struct {
	time.Time
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	if b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		if len(parts) < 3 {
			return fmt.Errorf("date array needs at least 3 parts, got %d", len(parts))
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.UTC)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range localLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}
