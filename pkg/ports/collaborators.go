package ports

import (
	"context"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// BlobRef identifies a stored media blob.
type BlobRef struct {
	URL      string
	Filename string
}

// BlobStore is the opaque file-storage collaborator. The core validates
// mime/size constraints before calling Upload; the implementation only
// stores bytes and returns a URL.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, mime string) (BlobRef, error)
}

// TemplateCatalog lists approved messaging templates for a client. Used to
// populate template node options and the 24-hour window fallback preview.
type TemplateCatalog interface {
	ListApprovedTemplates(ctx context.Context, clientID string) ([]domain.Template, error)
}

// Dispatch is the unit handed to the delivery collaborator after a webhook
// payload has been mapped and routed.
type Dispatch struct {
	MappingID  string
	Result     domain.ExtractionResult
	Delay      domain.DispatchDelay
	ForwardURL string
}

// Forwarder hands a mapped contact to the external routing/delivery
// collaborator. Delivery transport is outside the core.
type Forwarder interface {
	Forward(ctx context.Context, d Dispatch) error
}
