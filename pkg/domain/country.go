package domain

import "strings"

// countryDDI maps country display names to their international dialing code.
// Names match what operators pick in the mapping editor; lookups are exact.
var countryDDI = map[string]string{
	"Brasil":         "55",
	"Portugal":       "351",
	"Estados Unidos": "1",
	"Canadá":         "1",
	"Argentina":      "54",
	"México":         "52",
	"Chile":          "56",
	"Colômbia":       "57",
	"Peru":           "51",
	"Paraguai":       "595",
	"Uruguai":        "598",
	"Bolívia":        "591",
	"Equador":        "593",
	"Venezuela":      "58",
	"Espanha":        "34",
	"França":         "33",
	"Itália":         "39",
	"Alemanha":       "49",
	"Reino Unido":    "44",
	"Angola":         "244",
	"Moçambique":     "258",
	"Japão":          "81",
	"Austrália":      "61",
}

// CountryDDI returns the dialing code for a literal country name.
func CountryDDI(name string) (string, bool) {
	ddi, ok := countryDDI[name]
	return ddi, ok
}

// IsCountryLiteral reports whether the configured country value is a literal
// country name rather than a path expression. The rule is structural, not a
// heuristic: a value containing "." or absent from the country table is a
// path spec. Mappings persisted under this rule must keep resolving
// identically.
func IsCountryLiteral(spec PathSpec) bool {
	s := string(spec)
	if strings.Contains(s, ".") {
		return false
	}
	_, ok := countryDDI[s]
	return ok
}
