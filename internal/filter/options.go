package filter

import "github.com/yourorg/listings-web/internal/canon"

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

var Cities = []Option{
	{"Orlando", "Orlando"},
	{"Oviedo", "Oviedo"},
	{"Winter Park", "Winter Park"},
	{"Winter Springs", "Winter Springs"},
}

var ZipCodes = []string{
	"32708", "32765", "32766", "32792", "32817", "32820", "32824",
	"32825", "32826", "32827", "32828", "32829", "32833",
}

var PropertyTypes = []Option{
	{"apartment", "Apartment"},
	{"condo", "Condo"},
	{"townhouse", "Townhouse"},
	{"house", "House"},
}

var BedroomOptions = []Option{
	{Any, "Any"},
	{"0", "Studio"},
	{"1", "1 bed"},
	{"2", "2 beds"},
	{"3", "3 beds"},
	{"4", "4 beds"},
	{"5", "5 beds"},
	{"6", "6 beds"},
	{"7", "7 beds"},
	{"8", "8+ beds"},
}

var BathroomOptions = []Option{
	{Any, "Any"},
	{"1", "1 bath"},
	{"2", "2 baths"},
	{"3", "3 baths"},
	{"4", "4 baths"},
	{"5", "5 baths"},
	{"6", "6+ baths"},
}

var (
	cityLookup = canon.NewLookup(optionValues(Cities)...)
	typeLookup = canon.NewLookup(optionValues(PropertyTypes)...)
	knownZips  = NewSet(ZipCodes...)
	bedValues  = NewSet(optionValues(BedroomOptions)...)
	bathValues = NewSet(optionValues(BathroomOptions)...)
)

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// CanonicalCity accepts labels or slugs ("winter-park") of known cities.
func CanonicalCity(s string) (string, bool) { return cityLookup.Canonical(s) }

func CanonicalPropertyType(s string) (string, bool) { return typeLookup.Canonical(s) }

func CanonicalZip(s string) (string, bool) {
	z, ok := canon.Zip(s)
	if !ok || !knownZips.Has(z) {
		return "", false
	}
	return z, true
}
