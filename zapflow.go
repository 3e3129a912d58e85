package zapflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aryarajalves/zapflow/internal/logging"
	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/aryarajalves/zapflow/pkg/flow"
	"github.com/aryarajalves/zapflow/pkg/mapping"
	"github.com/aryarajalves/zapflow/pkg/media"
	"github.com/aryarajalves/zapflow/pkg/ports"
)

// Version is the library version, overridable at build time.
var Version = "0.3.0"

// ErrGraphNotPersistable is returned by SaveFunnel when validation reports
// blocking issues. The issues are returned alongside for operator display.
var ErrGraphNotPersistable = errors.New("graph has blocking validation issues")

// ErrNoContactIdentity is returned by Ingest when the phone field cannot be
// extracted: without a phone there is no contact to route.
var ErrNoContactIdentity = errors.New("payload has no extractable phone field")

// ErrNoBlobStore is returned by UploadMedia when no blob storage is wired.
var ErrNoBlobStore = errors.New("no blob store configured")

// Service wires the funnel/mapping cores to their collaborators.
type Service struct {
	funnels   ports.FunnelStore
	mappings  ports.MappingStore
	forwarder ports.Forwarder
	catalog   ports.TemplateCatalog
	blobs     ports.BlobStore
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithStores sets the funnel and mapping stores.
func WithStores(funnels ports.FunnelStore, mappings ports.MappingStore) Option {
	return func(s *Service) {
		s.funnels = funnels
		s.mappings = mappings
	}
}

// WithForwarder sets the delivery collaborator receiving mapped contacts.
func WithForwarder(f ports.Forwarder) Option {
	return func(s *Service) {
		s.forwarder = f
	}
}

// WithCatalog sets the approved-template catalog.
func WithCatalog(c ports.TemplateCatalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// WithBlobStore sets the media blob storage collaborator.
func WithBlobStore(b ports.BlobStore) Option {
	return func(s *Service) {
		s.blobs = b
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service. Without options it has no stores and only the pure
// engines are usable; callers normally provide WithStores.
func New(opts ...Option) *Service {
	s := &Service{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveFunnel validates the funnel graph and persists it. When validation
// reports blocking issues the funnel is not saved and the issues are
// returned together with ErrGraphNotPersistable. Non-blocking warnings are
// returned with a nil error after a successful save.
func (s *Service) SaveFunnel(ctx context.Context, funnel *domain.FunnelDefinition) ([]flow.Issue, error) {
	if funnel.Name == "" {
		return nil, fmt.Errorf("funnel name is required")
	}

	issues := flow.Validate(&funnel.Graph)
	if flow.BlocksPersist(issues) {
		s.logger.Warn("funnel rejected by validation", "funnel", funnel.ID, "issues", len(issues))
		return issues, ErrGraphNotPersistable
	}

	if err := s.funnels.SaveFunnel(ctx, funnel); err != nil {
		return issues, fmt.Errorf("failed to persist funnel: %w", err)
	}
	s.logger.Info("funnel saved", "funnel", funnel.ID, "nodes", len(funnel.Graph.Nodes))
	return issues, nil
}

// LoadFunnel retrieves a funnel, applying the start-node migration default:
// if no node is marked as start and the graph is non-empty, the first node
// becomes the start node.
func (s *Service) LoadFunnel(ctx context.Context, id domain.FunnelID) (*domain.FunnelDefinition, error) {
	funnel, err := s.funnels.LoadFunnel(ctx, id)
	if err != nil {
		return nil, err
	}
	migrateStart(&funnel.Graph)
	return funnel, nil
}

// migrateStart marks the first node as start when none is designated.
func migrateStart(g *domain.FlowGraph) {
	if len(g.Nodes) == 0 {
		return
	}
	for i := range g.Nodes {
		if g.Nodes[i].IsStart {
			return
		}
	}
	g.Nodes[0].IsStart = true
}

// ListFunnels returns the stored funnel IDs.
func (s *Service) ListFunnels(ctx context.Context) ([]domain.FunnelID, error) {
	return s.funnels.ListFunnels(ctx)
}

// DeleteFunnel removes a funnel definition.
func (s *Service) DeleteFunnel(ctx context.Context, id domain.FunnelID) error {
	return s.funnels.DeleteFunnel(ctx, id)
}

// applyCommand loads a funnel, applies a pure graph command, re-validates the
// result and persists it. Commands go through the same persist gate as
// SaveFunnel: a command whose result has blocking issues is rejected and the
// stored graph stays unchanged.
func (s *Service) applyCommand(ctx context.Context, id domain.FunnelID, cmd func(domain.FlowGraph) (domain.FlowGraph, error)) (*domain.FunnelDefinition, error) {
	funnel, err := s.LoadFunnel(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := cmd(funnel.Graph)
	if err != nil {
		return nil, err
	}
	if issues := flow.Validate(&next); flow.BlocksPersist(issues) {
		s.logger.Warn("graph command rejected by validation", "funnel", id, "issues", len(issues))
		return nil, ErrGraphNotPersistable
	}
	funnel.Graph = next
	if err := s.funnels.SaveFunnel(ctx, funnel); err != nil {
		return nil, fmt.Errorf("failed to persist funnel: %w", err)
	}
	return funnel, nil
}

// Connect rewires one node output inside a stored funnel.
func (s *Service) Connect(ctx context.Context, id domain.FunnelID, edge domain.Edge) (*domain.FunnelDefinition, error) {
	return s.applyCommand(ctx, id, func(g domain.FlowGraph) (domain.FlowGraph, error) {
		return flow.Connect(g, edge)
	})
}

// SetStart designates the start node of a stored funnel.
func (s *Service) SetStart(ctx context.Context, id domain.FunnelID, nodeID string) (*domain.FunnelDefinition, error) {
	return s.applyCommand(ctx, id, func(g domain.FlowGraph) (domain.FlowGraph, error) {
		return flow.SetStart(g, nodeID)
	})
}

// DeleteNode removes a node from a stored funnel.
func (s *Service) DeleteNode(ctx context.Context, id domain.FunnelID, nodeID string) (*domain.FunnelDefinition, error) {
	return s.applyCommand(ctx, id, func(g domain.FlowGraph) (domain.FlowGraph, error) {
		return flow.DeleteNode(g, nodeID)
	})
}

// SaveMapping persists a webhook mapping.
func (s *Service) SaveMapping(ctx context.Context, m *domain.WebhookMapping) error {
	return s.mappings.SaveMapping(ctx, m)
}

// LoadMapping retrieves a webhook mapping.
func (s *Service) LoadMapping(ctx context.Context, id string) (*domain.WebhookMapping, error) {
	return s.mappings.LoadMapping(ctx, id)
}

// DeleteMapping removes a webhook mapping.
func (s *Service) DeleteMapping(ctx context.Context, id string) error {
	return s.mappings.DeleteMapping(ctx, id)
}

// Ingest maps one raw webhook payload through the mapping with the given ID
// and, when a forwarder is configured and the contact has an identity, hands
// the dispatch to the delivery collaborator together with the mapping's
// delay and forward URL.
//
// The extraction result is returned even on ErrNoContactIdentity so the
// operator UI can show which fields did resolve.
func (s *Service) Ingest(ctx context.Context, mappingID string, payload []byte) (domain.ExtractionResult, error) {
	m, err := s.mappings.LoadMapping(ctx, mappingID)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	result, err := mapping.MapJSON(payload, m)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	if result.Phone == nil {
		s.logger.Warn("webhook payload without phone", "mapping", mappingID)
		return result, ErrNoContactIdentity
	}

	s.logger.Info("webhook mapped",
		"mapping", mappingID,
		"funnel", result.Routing.FunnelID,
		"matched_path", result.Phone.MatchedPath,
	)

	if s.forwarder != nil {
		dispatch := ports.Dispatch{
			MappingID:  mappingID,
			Result:     result,
			Delay:      m.Delay,
			ForwardURL: m.ForwardURL,
		}
		if err := s.forwarder.Forward(ctx, dispatch); err != nil {
			return result, fmt.Errorf("failed to forward dispatch: %w", err)
		}
	}
	return result, nil
}

// UploadMedia validates the blob against the provider's mime/size
// constraints and stores it. Rejected uploads never reach storage.
func (s *Service) UploadMedia(ctx context.Context, data []byte, mime string) (ports.BlobRef, error) {
	if s.blobs == nil {
		return ports.BlobRef{}, ErrNoBlobStore
	}
	if err := media.ValidateUpload(mime, int64(len(data))); err != nil {
		return ports.BlobRef{}, err
	}
	ref, err := s.blobs.Upload(ctx, data, mime)
	if err != nil {
		return ports.BlobRef{}, fmt.Errorf("failed to store media: %w", err)
	}
	s.logger.Info("media stored", "mime", mime, "bytes", len(data), "url", ref.URL)
	return ref, nil
}

// Templates lists the approved templates for a client, or nil when no
// catalog is configured.
func (s *Service) Templates(ctx context.Context, clientID string) ([]domain.Template, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.ListApprovedTemplates(ctx, clientID)
}
