package bal

import (
	"fmt"
	"strconv"
)

// Field is one named child slot of a model. The ordered field list is
// the only mechanism generic analyzers and mutators use to traverse an
// unknown model's structure.
type Field struct {
	Name string
	Node *Node
}

// Model is the structured view of a byte segment. A model owns its
// child nodes; raw bytes always belong to nodes, never to models.
type Model interface {
	// ModelInterface returns the declared identity of the structure.
	ModelInterface() *Interface

	// Fields returns the ordered child slots, fixed at construction.
	// Leaf models return nil.
	Fields() []Field
}

// StructModel is a model with a fixed set of named child nodes, in
// declaration order. Concrete formats embed it and add typed accessors.
type StructModel struct {
	iface  *Interface
	fields []Field
}

// NewStructModel creates a struct model for iface with the given fields.
func NewStructModel(iface *Interface, fields ...Field) *StructModel {
	return &StructModel{iface: iface, fields: fields}
}

func (m *StructModel) ModelInterface() *Interface { return m.iface }

func (m *StructModel) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Field returns the child node named name, or nil.
func (m *StructModel) Field(name string) *Node {
	for _, f := range m.fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// SetField replaces the child node named name. The caller is
// responsible for invalidating the owning node afterwards.
func (m *StructModel) SetField(name string, node *Node) bool {
	for i := range m.fields {
		if m.fields[i].Name == name {
			m.fields[i].Node = node
			return true
		}
	}
	return false
}

// ValueModel is a leaf model wrapping a single numeric value, with
// optional documentation for what the value means (e.g. value 0x2 is
// named "FOO": "the bitstream targets the FOO device").
type ValueModel struct {
	iface       *Interface
	value       uint64
	name        string
	description string
}

// NewValueModel creates a leaf value model.
func NewValueModel(iface *Interface, value uint64) *ValueModel {
	return &ValueModel{iface: iface, value: value}
}

// NewNamedValueModel creates a leaf value model carrying a name and
// description for the value itself.
func NewNamedValueModel(iface *Interface, value uint64, name, description string) *ValueModel {
	return &ValueModel{iface: iface, value: value, name: name, description: description}
}

func (m *ValueModel) ModelInterface() *Interface { return m.iface }
func (m *ValueModel) Fields() []Field            { return nil }

// Value returns the wrapped value.
func (m *ValueModel) Value() uint64 { return m.value }

// SetValue replaces the wrapped value. The caller must invalidate the
// owning node so stale ancestor serializations are dropped.
func (m *ValueModel) SetValue(v uint64) { m.value = v }

// ValueName returns the documented name of the current value, if any.
func (m *ValueModel) ValueName() string { return m.name }

// ValueDescription returns the documented meaning of the current value.
func (m *ValueModel) ValueDescription() string { return m.description }

func (m *ValueModel) String() string {
	s := fmt.Sprintf("%#x", m.value)
	if m.name != "" {
		s = fmt.Sprintf("%s (%s)", s, m.name)
	}
	return s
}

// ArrayModel is a model holding an ordered sequence of child nodes.
// Field names are the decimal indices.
type ArrayModel struct {
	iface *Interface
	items []*Node
}

// NewArrayModel creates an array model over items.
func NewArrayModel(iface *Interface, items ...*Node) *ArrayModel {
	return &ArrayModel{iface: iface, items: items}
}

func (m *ArrayModel) ModelInterface() *Interface { return m.iface }

func (m *ArrayModel) Fields() []Field {
	out := make([]Field, len(m.items))
	for i, n := range m.items {
		out[i] = Field{Name: strconv.Itoa(i), Node: n}
	}
	return out
}

// Len returns the number of items.
func (m *ArrayModel) Len() int { return len(m.items) }

// At returns the item at index i.
func (m *ArrayModel) At(i int) *Node { return m.items[i] }

// Set replaces the item at index i.
func (m *ArrayModel) Set(i int, node *Node) { m.items[i] = node }

// Append adds a node at the end.
func (m *ArrayModel) Append(node *Node) { m.items = append(m.items, node) }

// Insert adds a node at index i.
func (m *ArrayModel) Insert(i int, node *Node) {
	m.items = append(m.items, nil)
	copy(m.items[i+1:], m.items[i:])
	m.items[i] = node
}

// Pop removes and returns the item at index i.
func (m *ArrayModel) Pop(i int) *Node {
	node := m.items[i]
	m.items = append(m.items[:i], m.items[i+1:]...)
	return node
}

// MapModel is a model holding named child nodes in insertion order.
type MapModel struct {
	iface *Interface
	keys  []string
	items map[string]*Node
}

// NewMapModel creates an empty map model.
func NewMapModel(iface *Interface) *MapModel {
	return &MapModel{iface: iface, items: make(map[string]*Node)}
}

func (m *MapModel) ModelInterface() *Interface { return m.iface }

func (m *MapModel) Fields() []Field {
	out := make([]Field, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Field{Name: k, Node: m.items[k]})
	}
	return out
}

// Len returns the number of entries.
func (m *MapModel) Len() int { return len(m.keys) }

// Get returns the node stored under key, or nil.
func (m *MapModel) Get(key string) *Node { return m.items[key] }

// Set stores node under key, preserving first-insertion order.
func (m *MapModel) Set(key string, node *Node) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = node
}

// Delete removes the entry under key.
func (m *MapModel) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}
