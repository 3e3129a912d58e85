package domain

import "strings"

// FunnelID is an opaque funnel identifier.
type FunnelID string

// FunnelDefinition is a stored, named flow graph plus trigger/restriction
// metadata.
type FunnelDefinition struct {
	ID   FunnelID `json:"id"`
	Name string   `json:"name"`

	// TriggerPhrases is stored comma-separated and matched case-sensitively
	// against inbound button/text payloads.
	TriggerPhrases string `json:"trigger_phrases,omitempty"`

	// AllowedPhones, when non-empty, restricts execution to contacts whose
	// phone is in the set. Stored comma-separated like TriggerPhrases.
	AllowedPhones string `json:"allowed_phones,omitempty"`

	Graph FlowGraph `json:"graph"`
}

// splitCSV splits a comma-separated storage field, trimming whitespace and
// dropping empty entries.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Triggers returns the parsed trigger phrase set.
func (f *FunnelDefinition) Triggers() []string {
	return splitCSV(f.TriggerPhrases)
}

// MatchesTrigger reports whether the inbound text equals one of the funnel's
// trigger phrases. Matching is exact and case-sensitive.
func (f *FunnelDefinition) MatchesTrigger(text string) bool {
	for _, t := range f.Triggers() {
		if t == text {
			return true
		}
	}
	return false
}

// AllowsPhone reports whether the funnel may execute for the given contact.
// An empty allow-list permits every contact.
func (f *FunnelDefinition) AllowsPhone(phone string) bool {
	allowed := splitCSV(f.AllowedPhones)
	if len(allowed) == 0 {
		return true
	}
	for _, p := range allowed {
		if p == phone {
			return true
		}
	}
	return false
}
