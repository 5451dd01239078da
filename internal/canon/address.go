package canon

import "strings"

var stateCodes = map[string]string{
	"ALABAMA": "AL", "ALASKA": "AK", "ARIZONA": "AZ", "ARKANSAS": "AR", "CALIFORNIA": "CA",
	"COLORADO": "CO", "CONNECTICUT": "CT", "DELAWARE": "DE", "FLORIDA": "FL", "GEORGIA": "GA",
	"HAWAII": "HI", "IDAHO": "ID", "ILLINOIS": "IL", "INDIANA": "IN", "IOWA": "IA",
	"KANSAS": "KS", "KENTUCKY": "KY", "LOUISIANA": "LA", "MAINE": "ME", "MARYLAND": "MD",
	"MASSACHUSETTS": "MA", "MICHIGAN": "MI", "MINNESOTA": "MN", "MISSISSIPPI": "MS", "MISSOURI": "MO",
	"MONTANA": "MT", "NEBRASKA": "NE", "NEVADA": "NV", "NEW HAMPSHIRE": "NH", "NEW JERSEY": "NJ",
	"NEW MEXICO": "NM", "NEW YORK": "NY", "NORTH CAROLINA": "NC", "NORTH DAKOTA": "ND", "OHIO": "OH",
	"OKLAHOMA": "OK", "OREGON": "OR", "PENNSYLVANIA": "PA", "RHODE ISLAND": "RI", "SOUTH CAROLINA": "SC",
	"SOUTH DAKOTA": "SD", "TENNESSEE": "TN", "TEXAS": "TX", "UTAH": "UT", "VERMONT": "VT",
	"VIRGINIA": "VA", "WASHINGTON": "WA", "WEST VIRGINIA": "WV", "WISCONSIN": "WI", "WYOMING": "WY",
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// State returns the two-letter code for a full state name; anything else is
// returned trimmed and upper-cased.
func State(s string) string {
	st := strings.ToUpper(collapseSpaces(s))
	if code, ok := stateCodes[st]; ok {
		return code
	}
	return st
}

// Locality formats "City, ST 12345". Empty parts are rendered as "N/A".
func Locality(city, state, zip string) string {
	c := collapseSpaces(city)
	st := State(state)
	z, _ := Zip(zip)
	return orNA(c) + ", " + orNA(st) + " " + orNA(z)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
