// Package static provides a fixed, in-process template catalog adapter.
// Useful for tests and for deployments where the approved template list is
// synced out of band.
package static

import (
	"context"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// Catalog implements ports.TemplateCatalog over a static per-client map.
type Catalog struct {
	templates map[string][]domain.Template
}

// NewCatalog creates a catalog from a clientID -> templates map.
func NewCatalog(templates map[string][]domain.Template) *Catalog {
	if templates == nil {
		templates = make(map[string][]domain.Template)
	}
	return &Catalog{templates: templates}
}

// ListApprovedTemplates returns the templates registered for the client.
func (c *Catalog) ListApprovedTemplates(ctx context.Context, clientID string) ([]domain.Template, error) {
	return c.templates[clientID], nil
}
