package flow_test

import (
	"errors"
	"testing"

	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/aryarajalves/zapflow/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageNode(id string) domain.Node {
	return domain.Node{ID: id, Kind: domain.NodeKindMessage, Config: domain.MessageConfig{Text: "hi"}}
}

func conditionNode(id string) domain.Node {
	return domain.Node{
		ID:     id,
		Kind:   domain.NodeKindCondition,
		Config: domain.ConditionConfig{Condition: domain.ConditionText, Value: "sim"},
	}
}

func TestConnect_RewiresSameHandle(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{conditionNode("a"), messageNode("b"), messageNode("c")},
	}

	g, err := flow.Connect(g, domain.Edge{ID: "e1", Source: "a", SourceHandle: domain.HandleYes, Target: "b"})
	require.NoError(t, err)
	g, err = flow.Connect(g, domain.Edge{ID: "e2", Source: "a", SourceHandle: domain.HandleYes, Target: "c"})
	require.NoError(t, err)

	require.Len(t, g.Edges, 1, "a handle holds at most one outgoing edge")
	assert.Equal(t, "e2", g.Edges[0].ID)
	assert.Equal(t, "c", g.Edges[0].Target)
}

func TestConnect_DistinctHandlesCoexist(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{conditionNode("a"), messageNode("b"), messageNode("c")},
	}

	g, err := flow.Connect(g, domain.Edge{ID: "e1", Source: "a", SourceHandle: domain.HandleYes, Target: "b"})
	require.NoError(t, err)
	g, err = flow.Connect(g, domain.Edge{ID: "e2", Source: "a", SourceHandle: domain.HandleNo, Target: "c"})
	require.NoError(t, err)

	assert.Len(t, g.Edges, 2)
}

func TestConnect_TemplateSourceRejected(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{
			{ID: "t", Kind: domain.NodeKindTemplate, Config: domain.TemplateConfig{Name: "welcome"}},
			messageNode("b"),
		},
	}

	_, err := flow.Connect(g, domain.Edge{ID: "e1", Source: "t", Target: "b"})
	require.ErrorIs(t, err, flow.ErrTemplateOutgoing)
}

func TestConnect_UnknownHandleRejected(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{conditionNode("a"), messageNode("b")},
	}

	_, err := flow.Connect(g, domain.Edge{ID: "e1", Source: "a", SourceHandle: "maybe", Target: "b"})
	var handleErr *flow.InvalidHandleError
	require.ErrorAs(t, err, &handleErr)
	assert.Equal(t, "maybe", handleErr.Handle)
}

func TestConnect_UnknownEndpoint(t *testing.T) {
	g := domain.FlowGraph{Nodes: []domain.Node{messageNode("a")}}

	_, err := flow.Connect(g, domain.Edge{ID: "e1", Source: "a", Target: "ghost"})
	var notFound *flow.NodeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.NodeID)
}

func TestSetStart_ClearsOthersAndDropsIncoming(t *testing.T) {
	x := messageNode("x")
	y := messageNode("y")
	y.IsStart = true
	g := domain.FlowGraph{
		Nodes: []domain.Node{y, x},
		Edges: []domain.Edge{{ID: "e1", Source: "y", SourceHandle: "", Target: "x"}},
	}

	g, err := flow.SetStart(g, "x")
	require.NoError(t, err)

	start := g.StartNode()
	require.NotNil(t, start)
	assert.Equal(t, "x", start.ID)
	assert.False(t, g.NodeByID("y").IsStart)
	assert.Empty(t, g.Edges, "edges into the new start node are removed")
}

func TestSetStart_RejectsNonStartableKind(t *testing.T) {
	m := messageNode("m")
	m.IsStart = true
	g := domain.FlowGraph{Nodes: []domain.Node{m, conditionNode("c")}}

	_, err := flow.SetStart(g, "c")
	var kindErr *domain.InvalidStartKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, domain.NodeKindCondition, kindErr.Kind)

	// The failed command leaves the previous designation intact.
	assert.True(t, g.NodeByID("m").IsStart)
}

func TestDeleteNode_RemovesTouchingEdges(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{messageNode("a"), messageNode("b"), messageNode("c")},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
		},
	}

	g, err := flow.DeleteNode(g, "b")
	require.NoError(t, err)
	assert.Nil(t, g.NodeByID("b"))
	assert.Empty(t, g.Edges)
	assert.Len(t, g.Nodes, 2)
}

func TestDeleteNode_Unknown(t *testing.T) {
	g := domain.FlowGraph{Nodes: []domain.Node{messageNode("a")}}
	_, err := flow.DeleteNode(g, "ghost")
	var notFound *flow.NodeNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestCommands_DoNotMutateInput(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{conditionNode("a"), messageNode("b")},
		Edges: []domain.Edge{{ID: "e1", Source: "a", SourceHandle: domain.HandleYes, Target: "b"}},
	}

	_, err := flow.Connect(g, domain.Edge{ID: "e2", Source: "a", SourceHandle: domain.HandleNo, Target: "b"})
	require.NoError(t, err)
	_, err = flow.SetStart(g, "b")
	require.NoError(t, err)
	_, err = flow.DeleteNode(g, "b")
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "e1", g.Edges[0].ID)
}
