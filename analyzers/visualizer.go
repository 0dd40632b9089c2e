// Package analyzers provides format-agnostic analyzers built on the
// generic model traversal contract.
package analyzers

import (
	"errors"
	"fmt"

	"github.com/redballoonsecurity/bal"
)

// Visualizer is the capability interface for building JSON-serializable
// tree summaries, used to feed visualization front ends.
var Visualizer = bal.NewInterface("Visualizer",
	"Produces a nested, JSON-serializable summary of a data tree.")

// Summary is one node of the visualizer output.
type Summary struct {
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	BitSize     int        `json:"bit_size"`
	Unpacked    bool       `json:"unpacked"`
	IsEmpty     bool       `json:"is_empty"`
	Value       *uint64    `json:"value,omitempty"`
	ValueName   string     `json:"value_name,omitempty"`
	Children    []*Summary `json:"children,omitempty"`
}

type visualizer struct {
	ctx *bal.TreeContext
}

// NewVisualizer constructs the default Visualizer implementation.
// Register it on a factory with:
//
//	factory.RegisterAnalyzer(analyzers.Visualizer, analyzers.NewVisualizer)
func NewVisualizer(ctx *bal.TreeContext) bal.Analyzer {
	return &visualizer{ctx: ctx}
}

// Analyze walks the tree from node, unpacking descendants that have a
// registered serializer, and returns the root *Summary.
func (v *visualizer) Analyze(node *bal.Node) (any, error) {
	return v.traverse(node)
}

func (v *visualizer) traverse(node *bal.Node) (*Summary, error) {
	s := &Summary{
		Type:        node.InterfaceType(),
		Description: node.Description(),
		BitSize:     node.BitSize(),
	}

	model, err := node.Unpack()
	if err != nil {
		if errors.Is(err, bal.ErrUnregistered) {
			// Opaque leaf: report whether its bytes are all zero.
			s.IsEmpty = allZero(node.Bytes())
			return s, nil
		}
		return nil, err
	}
	s.Unpacked = true

	if value, ok := model.(*bal.ValueModel); ok {
		val := value.Value()
		s.Value = &val
		s.ValueName = value.ValueName()
		s.IsEmpty = val == 0
		return s, nil
	}

	empty := true
	for _, f := range model.Fields() {
		if f.Node == nil {
			continue
		}
		child, err := v.traverse(f.Node)
		if err != nil {
			return nil, fmt.Errorf("visualize %s.%s: %w", s.Type, f.Name, err)
		}
		if !child.IsEmpty {
			empty = false
		}
		s.Children = append(s.Children, child)
	}
	// No children at all counts as empty, same as all-empty children.
	s.IsEmpty = empty
	return s, nil
}

func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
