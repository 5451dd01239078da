package backend

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeResultList(t *testing.T) {
	raw := `[{"zpid":"1","price":1850,"beds":2,"area":null},{"zpid":"2","price":"$2,000/mo"}]`
	res, bad, err := DecodeResult([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != KindList || res.Page != nil || bad != 0 {
		t.Fatalf("unexpected result %+v bad=%d", res, bad)
	}
	if len(res.Listings) != 2 {
		t.Fatalf("got %d listings", len(res.Listings))
	}
	if res.Listings[0].Price != "1850" || res.Listings[1].Price != "$2,000/mo" {
		t.Errorf("prices = %q, %q", res.Listings[0].Price, res.Listings[1].Price)
	}
	if res.Listings[0].Area != nil {
		t.Errorf("null area decoded as %v", *res.Listings[0].Area)
	}
}

func TestDecodeResultEnvelope(t *testing.T) {
	raw := `{"content":[{"zpid":"1","availabilityDate":[2025,8,1,0,0]}],
		"number":2,"size":21,"totalPages":5,"totalElements":99,"numberOfElements":1,"first":false,"last":false}`
	res, _, err := DecodeResult([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != KindPage || res.Page == nil {
		t.Fatalf("expected envelope, got %+v", res)
	}
	if res.Page.Number != 2 || res.Page.TotalPages != 5 || res.Page.TotalElements != 99 {
		t.Errorf("meta = %+v", *res.Page)
	}
	want := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if got := res.Listings[0].AvailabilityDate.Time; !got.Equal(want) {
		t.Errorf("availabilityDate = %v", got)
	}
}

func TestDecodeResultCountsBadRecords(t *testing.T) {
	raw := `[{"zpid":"1"},{"zpid":"2","beds":"lots"},{"zpid":"3","availabilityDate":"soon"}]`
	res, bad, err := DecodeResult([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Listings) != 1 || bad != 2 {
		t.Fatalf("got %d listings, %d bad", len(res.Listings), bad)
	}
}

func TestDecodeResultRejectsOtherShapes(t *testing.T) {
	for _, raw := range []string{``, `"x"`, `{"items":[]}`, `{"content":null}`, `42`} {
		if _, _, err := DecodeResult([]byte(raw)); !errors.Is(err, ErrUnknownShape) {
			t.Errorf("%q: err = %v", raw, err)
		}
	}
}
