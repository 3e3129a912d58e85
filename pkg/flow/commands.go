package flow

import (
	"github.com/aryarajalves/zapflow/pkg/domain"
)

// Connect rewires an output: any existing edge with the same
// (source, sourceHandle) pair is removed before the new edge is inserted, so
// at most one edge ever leaves a given handle. Connecting out of a template
// node fails with ErrTemplateOutgoing; a handle the source does not expose
// fails with InvalidHandleError. The input graph is not mutated.
func Connect(g domain.FlowGraph, edge domain.Edge) (domain.FlowGraph, error) {
	source := g.NodeByID(edge.Source)
	if source == nil {
		return g, &NodeNotFoundError{NodeID: edge.Source}
	}
	if g.NodeByID(edge.Target) == nil {
		return g, &NodeNotFoundError{NodeID: edge.Target}
	}
	if source.Kind == domain.NodeKindTemplate {
		return g, ErrTemplateOutgoing
	}
	if !hasHandle(source, edge.SourceHandle) {
		return g, &InvalidHandleError{NodeID: edge.Source, Handle: edge.SourceHandle}
	}

	out := g.Clone()
	kept := out.Edges[:0]
	for _, e := range out.Edges {
		if e.Source == edge.Source && e.SourceHandle == edge.SourceHandle {
			continue
		}
		kept = append(kept, e)
	}
	out.Edges = append(kept, edge)
	return out, nil
}

// SetStart designates nodeID as the funnel's start node. Only message,
// media, audio and template nodes may start a funnel; any other kind fails
// with InvalidStartKindError and leaves the previous designation intact.
// On success every other start flag is cleared and every edge targeting the
// node is removed, since a start node cannot have incoming edges.
func SetStart(g domain.FlowGraph, nodeID string) (domain.FlowGraph, error) {
	node := g.NodeByID(nodeID)
	if node == nil {
		return g, &NodeNotFoundError{NodeID: nodeID}
	}
	if !domain.StartableKinds[node.Kind] {
		return g, &domain.InvalidStartKindError{NodeID: nodeID, Kind: node.Kind}
	}

	out := g.Clone()
	for i := range out.Nodes {
		out.Nodes[i].IsStart = out.Nodes[i].ID == nodeID
	}
	kept := out.Edges[:0]
	for _, e := range out.Edges {
		if e.Target == nodeID {
			continue
		}
		kept = append(kept, e)
	}
	out.Edges = kept
	return out, nil
}

// DeleteNode removes the node and every edge where it is source or target.
func DeleteNode(g domain.FlowGraph, nodeID string) (domain.FlowGraph, error) {
	if g.NodeByID(nodeID) == nil {
		return g, &NodeNotFoundError{NodeID: nodeID}
	}

	out := g.Clone()
	nodes := out.Nodes[:0]
	for _, n := range out.Nodes {
		if n.ID == nodeID {
			continue
		}
		nodes = append(nodes, n)
	}
	out.Nodes = nodes

	edges := out.Edges[:0]
	for _, e := range out.Edges {
		if e.Source == nodeID || e.Target == nodeID {
			continue
		}
		edges = append(edges, e)
	}
	out.Edges = edges
	return out, nil
}
