package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// Map runs the full extraction for one payload: phone, name, country/DDI,
// custom variables (with translation) and the routing decision. Each field
// is computed independently; a failed extraction degrades to "field not
// found" and never aborts mapping of the remaining fields. The engine does
// not mutate the mapping.
func Map(payload any, m *domain.WebhookMapping) domain.ExtractionResult {
	result := domain.ExtractionResult{}

	if phone, ok := ResolveSpec(payload, m.PhoneField); ok {
		result.Phone = &phone
	}
	if m.NameField != "" {
		if name, ok := ResolveSpec(payload, m.NameField); ok {
			result.Name = &name
		}
	}
	if country, ok := ResolveCountry(payload, m.CountrySpec); ok {
		result.Country = &country
	}

	if len(m.CustomVariables) > 0 {
		result.CustomVars = make(map[string]*domain.Extraction, len(m.CustomVariables))
		for _, cv := range m.CustomVariables {
			extracted, ok := ResolveSpec(payload, cv.Path)
			if !ok {
				result.CustomVars[cv.Key] = nil
				continue
			}
			extracted.Value = Translate(extracted.Value, m.Translations[cv.Key])
			result.CustomVars[cv.Key] = &extracted
		}
	}

	result.Routing = Route(payload, m)
	return result
}

// MapJSON decodes a raw JSON payload and runs Map. The decode error is the
// only hard failure: a payload that is not valid JSON cannot be mapped at
// all.
func MapJSON(raw []byte, m *domain.WebhookMapping) (domain.ExtractionResult, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("invalid webhook payload: %w", err)
	}
	return Map(payload, m), nil
}
