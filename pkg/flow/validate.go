package flow

import (
	"fmt"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes reported by Validate.
const (
	CodeDuplicateNodeID     = "duplicate_node_id"
	CodeDuplicateHandleEdge = "duplicate_handle_edge"
	CodeMultipleStartNodes  = "multiple_start_nodes"
	CodeInvalidStartKind    = "invalid_start_kind"
	CodeStartHasIncoming    = "start_has_incoming"
	CodeTemplateOutgoing    = "template_outgoing"
	CodeUnknownEndpoint     = "unknown_endpoint"
	CodeInvalidHandle       = "invalid_handle"
	CodeUnbalancedWeights   = "unbalanced_randomizer_weights"
	CodeBadRandomizerPaths  = "bad_randomizer_path_count"
)

// Issue is one structural problem found in a graph.
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	NodeID   string   `json:"node_id,omitempty"`
	EdgeID   string   `json:"edge_id,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message)
}

// Validate checks every structural invariant of the graph and returns all
// issues found. An empty result means the graph may be persisted.
func Validate(g *domain.FlowGraph) []Issue {
	var issues []Issue

	nodes := make(map[string]*domain.Node, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if _, dup := nodes[n.ID]; dup {
			issues = append(issues, Issue{
				Code:     CodeDuplicateNodeID,
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node id %q appears more than once", n.ID),
			})
			continue
		}
		nodes[n.ID] = n
	}

	issues = append(issues, validateStart(g, nodes)...)
	issues = append(issues, validateEdges(g, nodes)...)

	for _, n := range g.Nodes {
		if n.Kind != domain.NodeKindRandomizer {
			continue
		}
		cfg, ok := n.Config.(domain.RandomizerConfig)
		if !ok {
			continue
		}
		issues = append(issues, validateRandomizer(n.ID, cfg)...)
	}

	return issues
}

// BlocksPersist reports whether the issue set must block persisting the
// graph. Every error does; among warnings only unbalanced randomizer
// weights block (editing may continue, saving may not).
func BlocksPersist(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError || i.Code == CodeUnbalancedWeights {
			return true
		}
	}
	return false
}

func validateStart(g *domain.FlowGraph, nodes map[string]*domain.Node) []Issue {
	var issues []Issue
	var starts []*domain.Node
	for i := range g.Nodes {
		if g.Nodes[i].IsStart {
			starts = append(starts, &g.Nodes[i])
		}
	}
	if len(starts) > 1 {
		for _, n := range starts[1:] {
			issues = append(issues, Issue{
				Code:     CodeMultipleStartNodes,
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node %q is a second start node; only one is allowed", n.ID),
			})
		}
	}
	for _, n := range starts {
		if !domain.StartableKinds[n.Kind] {
			issues = append(issues, Issue{
				Code:     CodeInvalidStartKind,
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node %q of kind %q cannot be a start node", n.ID, n.Kind),
			})
		}
		for _, e := range g.IncomingEdges(n.ID) {
			issues = append(issues, Issue{
				Code:     CodeStartHasIncoming,
				Severity: SeverityError,
				NodeID:   n.ID,
				EdgeID:   e.ID,
				Message:  fmt.Sprintf("start node %q has incoming edge %q", n.ID, e.ID),
			})
		}
	}
	return issues
}

func validateEdges(g *domain.FlowGraph, nodes map[string]*domain.Node) []Issue {
	var issues []Issue
	seenHandles := make(map[[2]string]string, len(g.Edges))

	for _, e := range g.Edges {
		source, okSource := nodes[e.Source]
		_, okTarget := nodes[e.Target]
		if !okSource || !okTarget {
			issues = append(issues, Issue{
				Code:     CodeUnknownEndpoint,
				Severity: SeverityError,
				EdgeID:   e.ID,
				Message:  fmt.Sprintf("edge %q references a node not in the graph", e.ID),
			})
			continue
		}

		key := [2]string{e.Source, e.SourceHandle}
		if prev, dup := seenHandles[key]; dup {
			issues = append(issues, Issue{
				Code:     CodeDuplicateHandleEdge,
				Severity: SeverityError,
				NodeID:   e.Source,
				EdgeID:   e.ID,
				Message:  fmt.Sprintf("edges %q and %q both leave handle %q of node %q", prev, e.ID, e.SourceHandle, e.Source),
			})
		} else {
			seenHandles[key] = e.ID
		}

		if source.Kind == domain.NodeKindTemplate {
			issues = append(issues, Issue{
				Code:     CodeTemplateOutgoing,
				Severity: SeverityError,
				NodeID:   e.Source,
				EdgeID:   e.ID,
				Message:  fmt.Sprintf("template node %q has outgoing edge %q", e.Source, e.ID),
			})
			continue
		}
		if !hasHandle(source, e.SourceHandle) {
			issues = append(issues, Issue{
				Code:     CodeInvalidHandle,
				Severity: SeverityError,
				NodeID:   e.Source,
				EdgeID:   e.ID,
				Message:  fmt.Sprintf("node %q exposes no output handle %q", e.Source, e.SourceHandle),
			})
		}
	}
	return issues
}

func validateRandomizer(nodeID string, cfg domain.RandomizerConfig) []Issue {
	var issues []Issue
	if len(cfg.Paths) < 2 || len(cfg.Paths) > 5 {
		issues = append(issues, Issue{
			Code:     CodeBadRandomizerPaths,
			Severity: SeverityError,
			NodeID:   nodeID,
			Message:  fmt.Sprintf("randomizer %q has %d paths; expected between 2 and 5", nodeID, len(cfg.Paths)),
		})
	}
	if sum := weightSum(cfg.Paths); sum != 100 {
		issues = append(issues, Issue{
			Code:     CodeUnbalancedWeights,
			Severity: SeverityWarning,
			NodeID:   nodeID,
			Message:  fmt.Sprintf("randomizer %q weights sum to %d, expected 100", nodeID, sum),
		})
	}
	return issues
}
