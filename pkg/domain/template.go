package domain

import "strings"

// TemplateComponent is one block of an approved provider template (header,
// body, footer or buttons), as returned by the template catalog.
type TemplateComponent struct {
	Type    string   `json:"type"` // HEADER, BODY, FOOTER, BUTTONS
	Text    string   `json:"text,omitempty"`
	Buttons []string `json:"buttons,omitempty"`
}

// Template is an approved messaging template from the provider catalog.
type Template struct {
	Name       string              `json:"name"`
	Language   string              `json:"language"`
	Components []TemplateComponent `json:"components"`
}

// FallbackPreview is the plain text/button rendition of a template, used
// inside the 24-hour service window where the template itself is not
// required.
type FallbackPreview struct {
	Text    string   `json:"text"`
	Buttons []string `json:"buttons,omitempty"`
}

// Fallback computes the 24-hour window fallback preview: header, body and
// footer text joined in order, plus the template's buttons.
func (t Template) Fallback() FallbackPreview {
	var parts []string
	var buttons []string
	for _, c := range t.Components {
		switch strings.ToUpper(c.Type) {
		case "HEADER", "BODY", "FOOTER":
			if c.Text != "" {
				parts = append(parts, c.Text)
			}
		case "BUTTONS":
			buttons = append(buttons, c.Buttons...)
		}
	}
	return FallbackPreview{
		Text:    strings.Join(parts, "\n\n"),
		Buttons: buttons,
	}
}
