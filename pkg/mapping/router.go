package mapping

import "github.com/aryarajalves/zapflow/pkg/domain"

// Route picks the target funnel for a payload. Without conditional routing,
// or when the routing field is absent, the mapping's default funnel wins.
// Otherwise rules are scanned in declared order and the first whose match
// value equals the resolved field value (exact string match) overrides the
// default. First-match, not best-match: duplicate match values resolve to
// the earliest rule.
func Route(payload any, m *domain.WebhookMapping) domain.RouteResult {
	result := domain.RouteResult{FunnelID: m.DefaultFunnel}
	if m.Routing == nil {
		return result
	}

	field, ok := ResolveSpec(payload, m.Routing.FieldPath)
	if !ok {
		return result
	}
	result.FieldValue = &field.Value

	for _, rule := range m.Routing.Rules {
		if rule.MatchValue == field.Value {
			matched := rule.MatchValue
			result.FunnelID = rule.TargetFunnel
			result.MatchedRule = &matched
			return result
		}
	}
	return result
}
