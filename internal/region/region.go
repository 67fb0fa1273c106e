// Package region maps player countries onto the three standings regions.
package region

// Region is one of the three buckets standings are computed for.
type Region int

const (
	Europe Region = iota
	Americas
	RestOfWorld

	// Count is the number of regions; regional rank arrays are indexed by
	// Region up to Count.
	Count = 3
)

func (r Region) String() string {
	switch r {
	case Europe:
		return "Europe"
	case Americas:
		return "Americas"
	case RestOfWorld:
		return "Asia"
	}
	return "Unknown"
}

// FromName resolves a region display name back to its index. The second
// return is false for unknown names.
func FromName(name string) (Region, bool) {
	switch name {
	case "Europe":
		return Europe, true
	case "Americas":
		return Americas, true
	case "Asia":
		return RestOfWorld, true
	}
	return 0, false
}

var americas = map[string]bool{
	"AR": true, "BO": true, "BR": true, "CA": true, "CL": true, "CO": true,
	"CR": true, "CU": true, "DO": true, "EC": true, "GT": true, "HN": true,
	"JM": true, "MX": true, "NI": true, "PA": true, "PE": true, "PR": true,
	"PY": true, "SV": true, "TT": true, "US": true, "UY": true, "VE": true,
}

// Europe here includes the CIS countries, which compete in the European
// circuit.
var europe = map[string]bool{
	"AD": true, "AL": true, "AM": true, "AT": true, "AZ": true, "BA": true,
	"BE": true, "BG": true, "BY": true, "CH": true, "CY": true, "CZ": true,
	"DE": true, "DK": true, "EE": true, "ES": true, "FI": true, "FO": true,
	"FR": true, "GB": true, "GE": true, "GR": true, "HR": true, "HU": true,
	"IE": true, "IS": true, "IT": true, "KZ": true, "KG": true, "LT": true,
	"LU": true, "LV": true, "MC": true, "MD": true, "ME": true, "MK": true,
	"MT": true, "NL": true, "NO": true, "PL": true, "PT": true, "RO": true,
	"RS": true, "RU": true, "SE": true, "SI": true, "SK": true, "SM": true,
	"TR": true, "UA": true, "UZ": true, "XK": true,
}

// Of buckets an ISO 3166-1 alpha-2 country code into a region. Countries in
// neither the Americas nor the European/CIS circuit fall into the
// rest-of-world bucket.
func Of(countryISO string) Region {
	switch {
	case europe[countryISO]:
		return Europe
	case americas[countryISO]:
		return Americas
	default:
		return RestOfWorld
	}
}
