package domain

// FallbackSeparator joins alternative candidate paths inside a PathSpec.
// It is part of the stable persisted contract and must not change.
const FallbackSeparator = " || "

// PathSpec is a string that is either a single dotted/indexed JSON path
// ("buyer.phone", "items.0.sku") or several such paths joined by
// FallbackSeparator, evaluated left-to-right with first non-empty wins.
type PathSpec string

// CustomVariable is one ordered custom-field extraction of a mapping.
type CustomVariable struct {
	Key  string   `json:"key"`
	Path PathSpec `json:"path"`
}

// RoutingRule maps one expected field value to a target funnel.
type RoutingRule struct {
	MatchValue   string   `json:"match_value"`
	TargetFunnel FunnelID `json:"target_funnel"`
}

// ConditionalRouting routes the extracted contact into a funnel based on one
// designated payload field. Rules are evaluated in declared order,
// first-match-wins; no match falls back to the mapping's default funnel.
type ConditionalRouting struct {
	FieldPath PathSpec      `json:"field_path"`
	Rules     []RoutingRule `json:"rules"`
}

// DispatchDelay postpones hand-off of the extracted contact to the delivery
// collaborator.
type DispatchDelay struct {
	Amount uint      `json:"amount"`
	Unit   DelayUnit `json:"unit"`
}

// WebhookMapping declares how contact fields are extracted from an inbound
// integration's JSON payload. One mapping exists per configured integration.
type WebhookMapping struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// PhoneField is the only extraction whose absence is a hard failure: a
	// contact without a phone has no identity downstream.
	PhoneField PathSpec `json:"phone_field"`
	NameField  PathSpec `json:"name_field,omitempty"`

	// CountrySpec is either a path spec or a literal country name from the
	// known country table. A value containing "." or not present in the
	// table is always treated as a path spec, never as a literal.
	CountrySpec PathSpec `json:"country_spec,omitempty"`

	CustomVariables []CustomVariable `json:"custom_variables,omitempty"`

	// Translations rewrites extracted raw values per variable key. Applied
	// only to custom variables, never to phone/name/country.
	Translations map[string]map[string]string `json:"translations,omitempty"`

	DefaultFunnel FunnelID            `json:"default_funnel"`
	Routing       *ConditionalRouting `json:"routing,omitempty"`

	ForwardURL string        `json:"forward_url,omitempty"`
	Delay      DispatchDelay `json:"delay"`
}

// Extraction is one resolved field value together with the candidate path
// that produced it. MatchedPath is shown to the operator for auditability.
type Extraction struct {
	Value       string `json:"value"`
	MatchedPath string `json:"matched_path"`
}

// RouteResult is the outcome of conditional routing evaluation.
type RouteResult struct {
	FunnelID FunnelID `json:"funnel_id"`
	// MatchedRule is the rule value that won, nil when the default funnel
	// was used.
	MatchedRule *string `json:"matched_rule,omitempty"`
	// FieldValue is the resolved routing field value, nil when the field
	// was absent from the payload.
	FieldValue *string `json:"field_value,omitempty"`
}

// ExtractionResult is the full outcome of mapping one payload. Absent fields
// are nil; only a nil Phone blocks downstream processing.
type ExtractionResult struct {
	Phone      *Extraction            `json:"phone,omitempty"`
	Name       *Extraction            `json:"name,omitempty"`
	Country    *Extraction            `json:"country,omitempty"`
	CustomVars map[string]*Extraction `json:"custom_vars,omitempty"`
	Routing    RouteResult            `json:"routing"`
}
