package domain

// Edge connects a logical output of one node to an input of another.
// SourceHandle disambiguates multiple outputs of the same node (e.g. a
// condition's "yes"/"no" or a datetime_range's "before"/"between"/"after").
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"source_handle,omitempty"`
	Target       string `json:"target"`
	TargetHandle string `json:"target_handle,omitempty"`
}

// FlowGraph is the node/edge structure of a funnel. It is the wire format
// persisted and later interpreted by the external execution collaborator;
// field names are part of the stable contract.
type FlowGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (g *FlowGraph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// StartNode returns the node marked as start. If none is marked and the
// graph is non-empty, the first node is the start (migration default for
// graphs persisted before explicit start designation existed).
func (g *FlowGraph) StartNode() *Node {
	for i := range g.Nodes {
		if g.Nodes[i].IsStart {
			return &g.Nodes[i]
		}
	}
	if len(g.Nodes) > 0 {
		return &g.Nodes[0]
	}
	return nil
}

// OutgoingEdges returns every edge whose source is the given node.
func (g *FlowGraph) OutgoingEdges(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// IncomingEdges returns every edge whose target is the given node.
func (g *FlowGraph) IncomingEdges(nodeID string) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// Clone returns a deep-enough copy of the graph: node and edge slices are
// copied so reducers can return a new graph without mutating the input.
func (g *FlowGraph) Clone() FlowGraph {
	out := FlowGraph{}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		copy(out.Nodes, g.Nodes)
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		copy(out.Edges, g.Edges)
	}
	return out
}
