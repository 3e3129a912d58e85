package flow_test

import (
	"testing"

	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/aryarajalves/zapflow/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomizerNode(id string, percents ...int) domain.Node {
	paths := make([]domain.RandomizerPath, len(percents))
	for i, p := range percents {
		paths[i] = domain.RandomizerPath{ID: string(rune('p' + i)), Percent: p}
	}
	return domain.Node{ID: id, Kind: domain.NodeKindRandomizer, Config: domain.RandomizerConfig{Paths: paths}}
}

func codes(issues []flow.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func TestValidate_CleanGraph(t *testing.T) {
	start := messageNode("start")
	start.IsStart = true
	g := domain.FlowGraph{
		Nodes: []domain.Node{start, conditionNode("cond"), messageNode("yes"), randomizerNode("rnd", 50, 30, 20)},
		Edges: []domain.Edge{
			{ID: "e1", Source: "start", SourceHandle: "", Target: "cond"},
			{ID: "e2", Source: "cond", SourceHandle: domain.HandleYes, Target: "yes"},
		},
	}

	issues := flow.Validate(&g)
	assert.Empty(t, issues)
	assert.False(t, flow.BlocksPersist(issues))
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	g := domain.FlowGraph{Nodes: []domain.Node{messageNode("a"), messageNode("a")}}
	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeDuplicateNodeID)
	assert.True(t, flow.BlocksPersist(issues))
}

func TestValidate_DuplicateHandleEdge(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{conditionNode("a"), messageNode("b"), messageNode("c")},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", SourceHandle: domain.HandleYes, Target: "b"},
			{ID: "e2", Source: "a", SourceHandle: domain.HandleYes, Target: "c"},
		},
	}
	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeDuplicateHandleEdge)
}

func TestValidate_MultipleStartNodes(t *testing.T) {
	a := messageNode("a")
	a.IsStart = true
	b := messageNode("b")
	b.IsStart = true
	g := domain.FlowGraph{Nodes: []domain.Node{a, b}}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeMultipleStartNodes)
}

func TestValidate_StartHasIncoming(t *testing.T) {
	a := messageNode("a")
	a.IsStart = true
	g := domain.FlowGraph{
		Nodes: []domain.Node{a, messageNode("b")},
		Edges: []domain.Edge{{ID: "e1", Source: "b", SourceHandle: "", Target: "a"}},
	}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeStartHasIncoming)
}

func TestValidate_InvalidStartKind(t *testing.T) {
	c := conditionNode("c")
	c.IsStart = true
	g := domain.FlowGraph{Nodes: []domain.Node{c}}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeInvalidStartKind)
}

func TestValidate_TemplateOutgoingEdge(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{
			{ID: "t", Kind: domain.NodeKindTemplate, Config: domain.TemplateConfig{Name: "welcome"}},
			messageNode("b"),
		},
		Edges: []domain.Edge{{ID: "e1", Source: "t", Target: "b"}},
	}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeTemplateOutgoing)
}

func TestValidate_UnknownEndpoint(t *testing.T) {
	g := domain.FlowGraph{
		Nodes: []domain.Node{messageNode("a")},
		Edges: []domain.Edge{{ID: "e1", Source: "a", Target: "ghost"}},
	}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeUnknownEndpoint)
}

func TestValidate_SuppressedBranchEdge(t *testing.T) {
	cond := domain.Node{
		ID:   "c",
		Kind: domain.NodeKindCondition,
		Config: domain.ConditionConfig{
			Condition: domain.ConditionDatetimeRange,
			Branches:  map[string]domain.BranchAction{domain.HandleAfter: domain.BranchStop},
		},
	}
	g := domain.FlowGraph{
		Nodes: []domain.Node{cond, messageNode("b")},
		Edges: []domain.Edge{{ID: "e1", Source: "c", SourceHandle: domain.HandleAfter, Target: "b"}},
	}

	issues := flow.Validate(&g)
	assert.Contains(t, codes(issues), flow.CodeInvalidHandle, "a stop branch exposes no handle")
}

func TestValidate_RandomizerWeights(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		g := domain.FlowGraph{Nodes: []domain.Node{randomizerNode("r", 50, 30, 20)}}
		assert.Empty(t, flow.Validate(&g))
	})

	t.Run("unbalanced blocks persist", func(t *testing.T) {
		g := domain.FlowGraph{Nodes: []domain.Node{randomizerNode("r", 50, 60)}}
		issues := flow.Validate(&g)
		require.Len(t, issues, 1)
		assert.Equal(t, flow.CodeUnbalancedWeights, issues[0].Code)
		assert.Equal(t, flow.SeverityWarning, issues[0].Severity)
		assert.True(t, flow.BlocksPersist(issues), "the one warning that still blocks saving")
	})

	t.Run("too few paths", func(t *testing.T) {
		g := domain.FlowGraph{Nodes: []domain.Node{randomizerNode("r", 100)}}
		assert.Contains(t, codes(flow.Validate(&g)), flow.CodeBadRandomizerPaths)
	})

	t.Run("too many paths", func(t *testing.T) {
		g := domain.FlowGraph{Nodes: []domain.Node{randomizerNode("r", 20, 20, 20, 20, 10, 10)}}
		assert.Contains(t, codes(flow.Validate(&g)), flow.CodeBadRandomizerPaths)
	})
}
