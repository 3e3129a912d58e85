package flow

import (
	"errors"
	"fmt"
)

// ErrTemplateOutgoing is returned when connecting an edge out of a template
// node. Template nodes are stand-alone entry points and always terminal.
var ErrTemplateOutgoing = errors.New("template nodes cannot have outgoing edges")

// NodeNotFoundError reports a command referencing a node absent from the graph.
type NodeNotFoundError struct {
	NodeID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found in graph", e.NodeID)
}

// InvalidHandleError reports an edge using a source handle the node does not
// expose (e.g. a suppressed datetime_range branch, or a handle outside a
// condition's yes/no pair).
type InvalidHandleError struct {
	NodeID string
	Handle string
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("node %q has no output handle %q", e.NodeID, e.Handle)
}
