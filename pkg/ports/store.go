package ports

import (
	"context"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// FunnelStore defines the interface for persisting funnel definitions.
// Multi-user conflict resolution is delegated to the backend
// (last-write-wins on save).
type FunnelStore interface {
	// SaveFunnel persists the definition under its ID.
	SaveFunnel(ctx context.Context, funnel *domain.FunnelDefinition) error

	// LoadFunnel retrieves a definition by ID.
	// Returns domain.ErrFunnelNotFound if it does not exist.
	LoadFunnel(ctx context.Context, id domain.FunnelID) (*domain.FunnelDefinition, error)

	// DeleteFunnel removes a definition.
	DeleteFunnel(ctx context.Context, id domain.FunnelID) error

	// ListFunnels returns the IDs of all stored funnels.
	ListFunnels(ctx context.Context) ([]domain.FunnelID, error)
}

// MappingStore defines the interface for persisting webhook mappings, one
// per configured inbound integration.
type MappingStore interface {
	// SaveMapping persists the mapping under its ID.
	SaveMapping(ctx context.Context, mapping *domain.WebhookMapping) error

	// LoadMapping retrieves a mapping by ID.
	// Returns domain.ErrMappingNotFound if it does not exist.
	LoadMapping(ctx context.Context, id string) (*domain.WebhookMapping, error)

	// DeleteMapping removes a mapping.
	DeleteMapping(ctx context.Context, id string) error
}
