package flow

import "github.com/aryarajalves/zapflow/pkg/domain"

// SourceHandles returns the logical output handles a node exposes, in
// presentation order. A nil result means the node has no outputs at all
// (template and label nodes); a single empty-string handle is the default
// output of linear nodes.
func SourceHandles(n *domain.Node) []string {
	switch n.Kind {
	case domain.NodeKindTemplate, domain.NodeKindLabel:
		return nil
	case domain.NodeKindLinkFunnel:
		// Hand-off to another funnel ends this one.
		return nil
	case domain.NodeKindCondition:
		cfg, ok := n.Config.(domain.ConditionConfig)
		if !ok {
			return nil
		}
		return conditionHandles(cfg)
	case domain.NodeKindRandomizer:
		cfg, ok := n.Config.(domain.RandomizerConfig)
		if !ok {
			return nil
		}
		handles := make([]string, 0, len(cfg.Paths))
		for _, p := range cfg.Paths {
			handles = append(handles, p.ID)
		}
		return handles
	default:
		return []string{""}
	}
}

// conditionHandles lists the branch handles of a condition node.
// datetime_range exposes before/between/after, each suppressed entirely when
// its override action is wait or stop; the other condition kinds expose
// exactly yes/no.
func conditionHandles(cfg domain.ConditionConfig) []string {
	if cfg.Condition == domain.ConditionDatetimeRange {
		var handles []string
		for _, h := range []string{domain.HandleBefore, domain.HandleBetween, domain.HandleAfter} {
			action, ok := cfg.Branches[h]
			if !ok {
				action = domain.BranchFollow
			}
			if action == domain.BranchFollow {
				handles = append(handles, h)
			}
		}
		return handles
	}
	return []string{domain.HandleYes, domain.HandleNo}
}

// hasHandle reports whether handle is one of the node's exposed outputs.
func hasHandle(n *domain.Node, handle string) bool {
	for _, h := range SourceHandles(n) {
		if h == handle {
			return true
		}
	}
	return false
}
