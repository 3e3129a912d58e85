package mapping

import (
	"testing"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

func TestResolveSpec_FallbackOrder(t *testing.T) {
	payload := decode(t, `{"a": {"y": "5599999"}}`)

	got, ok := ResolveSpec(payload, "a.x || a.y")
	if !ok {
		t.Fatal("ResolveSpec should match via the second candidate")
	}
	if got.Value != "5599999" {
		t.Errorf("Value = %q, want 5599999", got.Value)
	}
	if got.MatchedPath != "a.y" {
		t.Errorf("MatchedPath = %q, want a.y", got.MatchedPath)
	}
}

func TestResolveSpec_DeclarationOrderWins(t *testing.T) {
	payload := decode(t, `{"a": {"x": "first", "y": "second"}}`)

	got, _ := ResolveSpec(payload, "a.x || a.y")
	if got.MatchedPath != "a.x" {
		t.Errorf("MatchedPath = %q, want a.x", got.MatchedPath)
	}

	// Reordering the fallback list changes which candidate wins.
	got, _ = ResolveSpec(payload, "a.y || a.x")
	if got.MatchedPath != "a.y" {
		t.Errorf("MatchedPath after reorder = %q, want a.y", got.MatchedPath)
	}
}

func TestResolveSpec_SkipsEmptyValues(t *testing.T) {
	payload := decode(t, `{"a": {"x": "", "y": null, "z": "found"}}`)

	got, ok := ResolveSpec(payload, "a.x || a.y || a.z")
	if !ok || got.Value != "found" {
		t.Fatalf("ResolveSpec = (%+v, %v), want to skip empty/null candidates", got, ok)
	}
}

func TestResolveSpec_MalformedCandidateSkipped(t *testing.T) {
	payload := decode(t, `{"a": {"y": "ok"}}`)

	// The empty candidate after trimming is skipped, not fatal.
	got, ok := ResolveSpec(payload, " ||  || a.y")
	if !ok || got.Value != "ok" {
		t.Fatalf("ResolveSpec = (%+v, %v), want match via a.y", got, ok)
	}
}

func TestResolveSpec_NoMatch(t *testing.T) {
	payload := decode(t, `{"a": {}}`)

	if _, ok := ResolveSpec(payload, "a.x || a.y"); ok {
		t.Error("ResolveSpec should report absent when no candidate matches")
	}
}

func TestResolveCountry_Literal(t *testing.T) {
	payload := decode(t, `{"buyer": {"country": "ignored"}}`)

	got, ok := ResolveCountry(payload, "Brasil")
	if !ok {
		t.Fatal("literal country should always resolve")
	}
	if got.Value != "55" {
		t.Errorf("DDI = %q, want 55", got.Value)
	}
	if got.MatchedPath != "Brasil" {
		t.Errorf("MatchedPath = %q, want Brasil", got.MatchedPath)
	}
}

func TestResolveCountry_PathDisambiguation(t *testing.T) {
	// A value containing "." is a path even if a country shares the prefix;
	// an unknown bare word is a path too (structural rule, not a guess).
	payload := decode(t, `{"buyer": {"country": "Portugal"}, "pais": "351"}`)

	got, ok := ResolveCountry(payload, "buyer.country")
	if !ok || got.Value != "Portugal" {
		t.Fatalf("path spec should resolve through the payload, got (%+v, %v)", got, ok)
	}

	got, ok = ResolveCountry(payload, "pais")
	if !ok || got.Value != "351" {
		t.Fatalf("unknown bare word should be treated as a path, got (%+v, %v)", got, ok)
	}
}

func TestResolveCountry_Empty(t *testing.T) {
	if _, ok := ResolveCountry(map[string]any{}, domain.PathSpec("")); ok {
		t.Error("empty country spec should report absent")
	}
}
