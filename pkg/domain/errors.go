package domain

import (
	"errors"
	"fmt"
)

// ErrFunnelNotFound is returned when a funnel ID cannot be found in the store.
var ErrFunnelNotFound = errors.New("funnel not found")

// ErrMappingNotFound is returned when a webhook mapping ID cannot be found in the store.
var ErrMappingNotFound = errors.New("webhook mapping not found")

// InvalidStartKindError reports an attempt to mark a disallowed node kind as
// the funnel start. The graph is left unchanged by the failed attempt.
type InvalidStartKindError struct {
	NodeID string
	Kind   NodeKind
}

func (e *InvalidStartKindError) Error() string {
	return fmt.Sprintf("node %q of kind %q cannot be a start node", e.NodeID, e.Kind)
}
