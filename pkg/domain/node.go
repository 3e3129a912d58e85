package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// NodeKind discriminates the configuration shape and behavior of a graph node.
type NodeKind string

const (
	NodeKindMessage    NodeKind = "message"
	NodeKindMedia      NodeKind = "media"
	NodeKindAudio      NodeKind = "audio"
	NodeKindDelay      NodeKind = "delay"
	NodeKindCondition  NodeKind = "condition"
	NodeKindRandomizer NodeKind = "randomizer"
	NodeKindTemplate   NodeKind = "template"
	NodeKindLinkFunnel NodeKind = "link_funnel"
	NodeKindLabel      NodeKind = "label"
)

// StartableKinds lists the node kinds that may be designated as the start
// node of a funnel. This set is part of the persisted graph contract.
var StartableKinds = map[NodeKind]bool{
	NodeKindMessage:  true,
	NodeKindMedia:    true,
	NodeKindAudio:    true,
	NodeKindTemplate: true,
}

// Position holds editor canvas coordinates. Presentation only, carries no
// semantic weight.
type Position struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// Node represents one typed step in a funnel graph.
type Node struct {
	ID       string     `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Position Position   `json:"position"`
	IsStart  bool       `json:"is_start,omitempty"`
	Config   NodeConfig `json:"config"`
}

// NodeConfig is the per-kind configuration payload of a Node.
// Each implementation corresponds to exactly one NodeKind.
type NodeConfig interface {
	Kind() NodeKind
}

// MessageConfig configures a plain text message step.
type MessageConfig struct {
	Text string `json:"text" mapstructure:"text"`
}

func (MessageConfig) Kind() NodeKind { return NodeKindMessage }

// MediaType distinguishes the media payload carried by a media node.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

// MediaConfig configures an image/video/document message step. URL points at
// a blob previously stored through the BlobStore collaborator.
type MediaConfig struct {
	MediaType MediaType `json:"media_type" mapstructure:"media_type"`
	URL       string    `json:"url" mapstructure:"url"`
	Filename  string    `json:"filename,omitempty" mapstructure:"filename"`
	Caption   string    `json:"caption,omitempty" mapstructure:"caption"`
}

func (MediaConfig) Kind() NodeKind { return NodeKindMedia }

// AudioConfig configures a voice/audio message step.
type AudioConfig struct {
	URL      string `json:"url" mapstructure:"url"`
	Filename string `json:"filename,omitempty" mapstructure:"filename"`
}

func (AudioConfig) Kind() NodeKind { return NodeKindAudio }

// DelayUnit is the time unit of a delay step or a webhook dispatch delay.
type DelayUnit string

const (
	DelayUnitSeconds DelayUnit = "seconds"
	DelayUnitMinutes DelayUnit = "minutes"
	DelayUnitHours   DelayUnit = "hours"
)

// DelayConfig configures a pause between steps.
type DelayConfig struct {
	Amount uint      `json:"amount" mapstructure:"amount"`
	Unit   DelayUnit `json:"unit" mapstructure:"unit"`
}

func (DelayConfig) Kind() NodeKind { return NodeKindDelay }

// ConditionKind selects the predicate evaluated by a condition node.
type ConditionKind string

const (
	ConditionText          ConditionKind = "text"
	ConditionTag           ConditionKind = "tag"
	ConditionWeekday       ConditionKind = "weekday"
	ConditionDatetimeRange ConditionKind = "datetime_range"
)

// BranchAction is the per-branch override of a datetime_range condition.
// "follow" emits an edge handle; "wait" and "stop" suppress the handle so no
// edge may be attached for that branch in the persisted graph.
type BranchAction string

const (
	BranchFollow BranchAction = "follow"
	BranchWait   BranchAction = "wait"
	BranchStop   BranchAction = "stop"
)

// Branch handle names. text/tag/weekday conditions expose yes/no;
// datetime_range exposes before/between/after.
const (
	HandleYes     = "yes"
	HandleNo      = "no"
	HandleBefore  = "before"
	HandleBetween = "between"
	HandleAfter   = "after"
)

// ConditionConfig configures a branching step.
//
// For text/tag conditions Value is the expected match. For weekday it is the
// weekday name. For datetime_range, Start/End delimit the window (RFC 3339)
// and Branches overrides each of the three handles independently; an absent
// entry defaults to BranchFollow.
type ConditionConfig struct {
	Condition ConditionKind           `json:"condition" mapstructure:"condition"`
	Value     string                  `json:"value,omitempty" mapstructure:"value"`
	Start     string                  `json:"start,omitempty" mapstructure:"start"`
	End       string                  `json:"end,omitempty" mapstructure:"end"`
	Branches  map[string]BranchAction `json:"branches,omitempty" mapstructure:"branches"`
}

func (ConditionConfig) Kind() NodeKind { return NodeKindCondition }

// RandomizerPath is one weighted branch of a randomizer node.
type RandomizerPath struct {
	ID      string `json:"id" mapstructure:"id"`
	Label   string `json:"label" mapstructure:"label"`
	Percent int    `json:"percent" mapstructure:"percent"`
}

// RandomizerConfig configures an A/B split step with 2 to 5 weighted paths.
// Percentages must sum to exactly 100 for the graph to be persistable; the
// engine never auto-normalizes.
type RandomizerConfig struct {
	Paths []RandomizerPath `json:"paths" mapstructure:"paths"`
}

func (RandomizerConfig) Kind() NodeKind { return NodeKindRandomizer }

// TemplateConfig references an approved provider template. Template nodes
// are stand-alone entry points: they never have outgoing edges.
type TemplateConfig struct {
	Name     string `json:"name" mapstructure:"name"`
	Language string `json:"language" mapstructure:"language"`
	// FallbackText is sent inside the 24-hour service window where the
	// template itself is not required.
	FallbackText    string   `json:"fallback_text,omitempty" mapstructure:"fallback_text"`
	FallbackButtons []string `json:"fallback_buttons,omitempty" mapstructure:"fallback_buttons"`
}

func (TemplateConfig) Kind() NodeKind { return NodeKindTemplate }

// LinkFunnelConfig hands the contact over to another funnel.
type LinkFunnelConfig struct {
	FunnelID FunnelID `json:"funnel_id" mapstructure:"funnel_id"`
}

func (LinkFunnelConfig) Kind() NodeKind { return NodeKindLinkFunnel }

// LabelConfig is a visual annotation on the canvas. No runtime behavior.
type LabelConfig struct {
	Text  string `json:"text" mapstructure:"text"`
	Color string `json:"color,omitempty" mapstructure:"color"`
}

func (LabelConfig) Kind() NodeKind { return NodeKindLabel }

// configForKind returns a zero-value config struct for the given kind.
func configForKind(kind NodeKind) (NodeConfig, error) {
	switch kind {
	case NodeKindMessage:
		return &MessageConfig{}, nil
	case NodeKindMedia:
		return &MediaConfig{}, nil
	case NodeKindAudio:
		return &AudioConfig{}, nil
	case NodeKindDelay:
		return &DelayConfig{}, nil
	case NodeKindCondition:
		return &ConditionConfig{}, nil
	case NodeKindRandomizer:
		return &RandomizerConfig{}, nil
	case NodeKindTemplate:
		return &TemplateConfig{}, nil
	case NodeKindLinkFunnel:
		return &LinkFunnelConfig{}, nil
	case NodeKindLabel:
		return &LabelConfig{}, nil
	default:
		return nil, fmt.Errorf("unknown node kind: %q", kind)
	}
}

// DecodeConfig builds the typed config for kind from a generic map, as
// produced by JSON unmarshaling of the wire format.
func DecodeConfig(kind NodeKind, raw map[string]any) (NodeConfig, error) {
	cfg, err := configForKind(kind)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return deref(cfg), nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", kind, err)
	}
	return deref(cfg), nil
}

// deref unwraps the pointer used during decoding so Node.Config always holds
// a value type.
func deref(cfg NodeConfig) NodeConfig {
	switch c := cfg.(type) {
	case *MessageConfig:
		return *c
	case *MediaConfig:
		return *c
	case *AudioConfig:
		return *c
	case *DelayConfig:
		return *c
	case *ConditionConfig:
		return *c
	case *RandomizerConfig:
		return *c
	case *TemplateConfig:
		return *c
	case *LinkFunnelConfig:
		return *c
	case *LabelConfig:
		return *c
	default:
		return cfg
	}
}

// nodeWire mirrors Node with an untyped config, for (un)marshaling.
type nodeWire struct {
	ID       string         `json:"id"`
	Kind     NodeKind       `json:"kind"`
	Position Position       `json:"position"`
	IsStart  bool           `json:"is_start,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
}

// UnmarshalJSON decodes the wire format, selecting the config shape by kind.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cfg, err := DecodeConfig(w.Kind, w.Config)
	if err != nil {
		return fmt.Errorf("node %s: %w", w.ID, err)
	}
	n.ID = w.ID
	n.Kind = w.Kind
	n.Position = w.Position
	n.IsStart = w.IsStart
	n.Config = cfg
	return nil
}
