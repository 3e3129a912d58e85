package mapping

import (
	"strings"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// ResolveSpec evaluates a path spec with fallback alternatives against the
// payload. Candidates are tried in declared order; the first that resolves
// to a non-empty value wins and is returned together with the candidate path
// that matched. Empty candidates (after trimming) are skipped, not fatal.
func ResolveSpec(payload any, spec domain.PathSpec) (domain.Extraction, bool) {
	for _, candidate := range strings.Split(string(spec), domain.FallbackSeparator) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		value, ok := Resolve(payload, candidate)
		if !ok {
			continue
		}
		s, ok := Stringify(value)
		if !ok || s == "" {
			continue
		}
		return domain.Extraction{Value: s, MatchedPath: candidate}, true
	}
	return domain.Extraction{}, false
}

// ResolveCountry evaluates the country/DDI field. A literal country name
// from the known table bypasses path resolution and yields its static
// dialing code; anything containing "." or outside the table is a path spec.
func ResolveCountry(payload any, spec domain.PathSpec) (domain.Extraction, bool) {
	if spec == "" {
		return domain.Extraction{}, false
	}
	if domain.IsCountryLiteral(spec) {
		ddi, _ := domain.CountryDDI(string(spec))
		return domain.Extraction{Value: ddi, MatchedPath: string(spec)}, true
	}
	return ResolveSpec(payload, spec)
}
