// Package httpapi exposes the funnel builder and the webhook ingestion
// endpoint over HTTP. It is a thin boundary: all graph/mapping semantics
// live in the core packages.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aryarajalves/zapflow"
	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/aryarajalves/zapflow/pkg/flow"
	"github.com/aryarajalves/zapflow/pkg/media"
	"github.com/aryarajalves/zapflow/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxPayloadBytes bounds inbound webhook bodies; maxUploadBytes bounds media
// uploads at the largest size any media kind may have.
const (
	maxPayloadBytes = 1 << 20
	maxUploadBytes  = media.MaxGenericSize
)

// Server handles the HTTP surface.
type Server struct {
	service *zapflow.Service
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the service. Metrics are
// registered on the given registry and served at /metrics.
func NewHandler(service *zapflow.Service, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	s := &Server{
		service: service,
		metrics: observability.NewMetrics(reg),
		logger:  logger,
	}

	r := chi.NewRouter()

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/funnels", func(r chi.Router) {
		r.Post("/", s.createFunnel)
		r.Get("/", s.listFunnels)
		r.Post("/validate", s.validateGraph)
		r.Route("/{funnelID}", func(r chi.Router) {
			r.Get("/", s.getFunnel)
			r.Delete("/", s.deleteFunnel)
			r.Put("/graph", s.putGraph)
			r.Post("/start", s.setStart)
			r.Post("/edges", s.connectEdge)
			r.Delete("/nodes/{nodeID}", s.deleteNode)
		})
	})

	r.Route("/mappings/{mappingID}", func(r chi.Router) {
		r.Put("/", s.putMapping)
		r.Get("/", s.getMapping)
		r.Delete("/", s.deleteMapping)
	})

	r.Post("/webhooks/{mappingID}", s.ingestWebhook)
	r.Post("/media", s.uploadMedia)
	r.Get("/templates", s.listTemplates)

	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "zapflow-http",
		"version": zapflow.Version,
	})
}

// funnelRequest is the create/update wire shape.
type funnelRequest struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name"`
	TriggerPhrases string           `json:"trigger_phrases,omitempty"`
	AllowedPhones  string           `json:"allowed_phones,omitempty"`
	Graph          domain.FlowGraph `json:"graph"`
}

// saveResponse returns the persisted funnel plus validation warnings.
type saveResponse struct {
	Funnel *domain.FunnelDefinition `json:"funnel"`
	Issues []flow.Issue             `json:"issues,omitempty"`
}

func (s *Server) createFunnel(w http.ResponseWriter, r *http.Request) {
	var body funnelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("createFunnel: invalid request body", "error", err)
		return
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	funnel := &domain.FunnelDefinition{
		ID:             domain.FunnelID(body.ID),
		Name:           body.Name,
		TriggerPhrases: body.TriggerPhrases,
		AllowedPhones:  body.AllowedPhones,
		Graph:          body.Graph,
	}

	issues, err := s.service.SaveFunnel(r.Context(), funnel)
	if err != nil {
		s.writeSaveError(w, issues, err)
		return
	}
	writeJSON(w, http.StatusCreated, saveResponse{Funnel: funnel, Issues: issues})
}

func (s *Server) listFunnels(w http.ResponseWriter, r *http.Request) {
	ids, err := s.service.ListFunnels(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("listFunnels failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"funnels": ids})
}

func (s *Server) getFunnel(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	funnel, err := s.service.LoadFunnel(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (s *Server) deleteFunnel(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	if err := s.service.DeleteFunnel(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putGraph(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	funnel, err := s.service.LoadFunnel(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}

	var graph domain.FlowGraph
	if err := json.NewDecoder(r.Body).Decode(&graph); err != nil {
		http.Error(w, "Invalid graph body", http.StatusBadRequest)
		s.logger.Warn("putGraph: invalid request body", "error", err)
		return
	}

	funnel.Graph = graph
	issues, err := s.service.SaveFunnel(r.Context(), funnel)
	if err != nil {
		s.writeSaveError(w, issues, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Funnel: funnel, Issues: issues})
}

func (s *Server) validateGraph(w http.ResponseWriter, r *http.Request) {
	var graph domain.FlowGraph
	if err := json.NewDecoder(r.Body).Decode(&graph); err != nil {
		http.Error(w, "Invalid graph body", http.StatusBadRequest)
		return
	}
	issues := flow.Validate(&graph)
	writeJSON(w, http.StatusOK, map[string]any{
		"issues":         issues,
		"blocks_persist": flow.BlocksPersist(issues),
	})
}

func (s *Server) setStart(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	var body struct {
		NodeID string `json:"node_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	funnel, err := s.service.SetStart(r.Context(), id, body.NodeID)
	if err != nil {
		var startErr *domain.InvalidStartKindError
		var notFound *flow.NodeNotFoundError
		switch {
		case errors.As(err, &startErr):
			http.Error(w, startErr.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, zapflow.ErrGraphNotPersistable):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &notFound):
			http.Error(w, notFound.Error(), http.StatusNotFound)
		default:
			s.writeLookupError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (s *Server) connectEdge(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	var edge domain.Edge
	if err := json.NewDecoder(r.Body).Decode(&edge); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}

	funnel, err := s.service.Connect(r.Context(), id, edge)
	if err != nil {
		var notFound *flow.NodeNotFoundError
		var badHandle *flow.InvalidHandleError
		switch {
		case errors.Is(err, flow.ErrTemplateOutgoing):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, zapflow.ErrGraphNotPersistable):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &badHandle):
			http.Error(w, badHandle.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &notFound):
			http.Error(w, notFound.Error(), http.StatusNotFound)
		default:
			s.writeLookupError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (s *Server) deleteNode(w http.ResponseWriter, r *http.Request) {
	id := domain.FunnelID(chi.URLParam(r, "funnelID"))
	nodeID := chi.URLParam(r, "nodeID")

	funnel, err := s.service.DeleteNode(r.Context(), id, nodeID)
	if err != nil {
		var notFound *flow.NodeNotFoundError
		switch {
		case errors.As(err, &notFound):
			http.Error(w, notFound.Error(), http.StatusNotFound)
		case errors.Is(err, zapflow.ErrGraphNotPersistable):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.writeLookupError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (s *Server) putMapping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mappingID")
	var m domain.WebhookMapping
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	m.ID = id

	if err := s.service.SaveMapping(r.Context(), &m); err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.logger.Error("putMapping failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getMapping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mappingID")
	m, err := s.service.LoadMapping(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMapping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mappingID")
	if err := s.service.DeleteMapping(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ingestWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mappingID")
	s.metrics.WebhooksReceived.WithLabelValues(id).Inc()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if len(payload) > maxPayloadBytes {
		http.Error(w, "Payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	result, err := s.service.Ingest(r.Context(), id, payload)
	switch {
	case err == nil:
		s.metrics.Routed.WithLabelValues(id, string(result.Routing.FunnelID)).Inc()
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, zapflow.ErrNoContactIdentity):
		s.metrics.ExtractionFailures.WithLabelValues(id).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"result": result,
		})
	case errors.Is(err, domain.ErrMappingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("Ingest error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ingestWebhook failed", "mapping", id, "error", err)
	}
}

func (s *Server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	mime := r.Header.Get("Content-Type")
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	ref, err := s.service.UploadMedia(r.Context(), data, mime)
	if err != nil {
		var cerr *media.ConstraintError
		switch {
		case errors.As(err, &cerr):
			http.Error(w, cerr.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, zapflow.ErrNoBlobStore):
			http.Error(w, err.Error(), http.StatusNotImplemented)
		default:
			http.Error(w, fmt.Sprintf("Upload error: %v", err), http.StatusInternalServerError)
			s.logger.Error("uploadMedia failed", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"url":      ref.URL,
		"filename": ref.Filename,
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	templates, err := s.service.Templates(r.Context(), clientID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Catalog error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// writeSaveError distinguishes validation rejection from storage failure.
func (s *Server) writeSaveError(w http.ResponseWriter, issues []flow.Issue, err error) {
	if errors.Is(err, zapflow.ErrGraphNotPersistable) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"issues": issues,
		})
		return
	}
	http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
	s.logger.Error("save funnel failed", "error", err)
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrFunnelNotFound), errors.Is(err, domain.ErrMappingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("store lookup failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
