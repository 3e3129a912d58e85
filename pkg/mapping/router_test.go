package mapping

import (
	"testing"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

func TestRoute_NoRouting(t *testing.T) {
	m := &domain.WebhookMapping{DefaultFunnel: "7"}
	got := Route(map[string]any{}, m)

	if got.FunnelID != "7" {
		t.Errorf("FunnelID = %q, want the default funnel", got.FunnelID)
	}
	if got.MatchedRule != nil || got.FieldValue != nil {
		t.Error("MatchedRule and FieldValue must be nil without conditional routing")
	}
}

func TestRoute_FirstMatchWins(t *testing.T) {
	payload := decode(t, `{"purchase": {"status": "approved"}}`)
	m := &domain.WebhookMapping{
		DefaultFunnel: "7",
		Routing: &domain.ConditionalRouting{
			FieldPath: "purchase.status",
			Rules: []domain.RoutingRule{
				{MatchValue: "approved", TargetFunnel: "F1"},
				{MatchValue: "approved", TargetFunnel: "F2"},
			},
		},
	}

	got := Route(payload, m)
	if got.FunnelID != "F1" {
		t.Errorf("FunnelID = %q, want F1 (first matching rule)", got.FunnelID)
	}
	if got.MatchedRule == nil || *got.MatchedRule != "approved" {
		t.Errorf("MatchedRule = %v, want approved", got.MatchedRule)
	}
}

func TestRoute_RuleOrderSignificant(t *testing.T) {
	payload := decode(t, `{"purchase": {"status": "refused"}}`)
	m := &domain.WebhookMapping{
		DefaultFunnel: "7",
		Routing: &domain.ConditionalRouting{
			FieldPath: "purchase.status",
			Rules: []domain.RoutingRule{
				{MatchValue: "approved", TargetFunnel: "F1"},
				{MatchValue: "refused", TargetFunnel: "F2"},
			},
		},
	}

	got := Route(payload, m)
	if got.FunnelID != "F2" {
		t.Errorf("FunnelID = %q, want F2", got.FunnelID)
	}
}

func TestRoute_NoMatchingRule(t *testing.T) {
	payload := decode(t, `{"purchase": {"status": "chargeback"}}`)
	m := &domain.WebhookMapping{
		DefaultFunnel: "7",
		Routing: &domain.ConditionalRouting{
			FieldPath: "purchase.status",
			Rules:     []domain.RoutingRule{{MatchValue: "approved", TargetFunnel: "F1"}},
		},
	}

	got := Route(payload, m)
	if got.FunnelID != "7" {
		t.Errorf("FunnelID = %q, want default fallback", got.FunnelID)
	}
	if got.MatchedRule != nil {
		t.Error("MatchedRule must be nil on fallback")
	}
	if got.FieldValue == nil || *got.FieldValue != "chargeback" {
		t.Errorf("FieldValue = %v, want chargeback", got.FieldValue)
	}
}

func TestRoute_FieldAbsent(t *testing.T) {
	m := &domain.WebhookMapping{
		DefaultFunnel: "7",
		Routing: &domain.ConditionalRouting{
			FieldPath: "purchase.status",
			Rules:     []domain.RoutingRule{{MatchValue: "approved", TargetFunnel: "F1"}},
		},
	}

	got := Route(map[string]any{}, m)
	if got.FunnelID != "7" {
		t.Errorf("FunnelID = %q, want default fallback", got.FunnelID)
	}
	if got.FieldValue != nil {
		t.Error("FieldValue must be nil when the routing field is absent")
	}
}

func TestRoute_Deterministic(t *testing.T) {
	payload := decode(t, `{"purchase": {"status": "approved"}}`)
	m := &domain.WebhookMapping{
		DefaultFunnel: "7",
		Routing: &domain.ConditionalRouting{
			FieldPath: "purchase.status",
			Rules:     []domain.RoutingRule{{MatchValue: "approved", TargetFunnel: "F1"}},
		},
	}

	first := Route(payload, m)
	for i := 0; i < 10; i++ {
		if got := Route(payload, m); got.FunnelID != first.FunnelID {
			t.Fatalf("Route is not deterministic: %q != %q", got.FunnelID, first.FunnelID)
		}
	}
}
