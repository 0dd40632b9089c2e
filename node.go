package bal

import (
	"errors"
)

// Node is the tree unit: a typed byte span, its structured model, or
// both. The declared interface never changes after construction, so
// type and description queries never materialize either representation.
//
// State machine: packed-only nodes gain a model through Unpack,
// unpacked-only nodes gain bytes through Pack, and a node holding both
// is a cached round trip, stable until a mutation invalidates the bytes.
// At least one representation is always present.
type Node struct {
	ctx    *TreeContext
	iface  *Interface
	parent *Node

	raw   []byte
	model Model

	bitSize int
}

// NewPackedNode builds a packed-only node over raw. It records the
// interface and bytes without touching the registry or parsing anything.
func NewPackedNode(ctx *TreeContext, raw []byte, iface *Interface, opts ...NodeOption) *Node {
	if iface == nil {
		panic("bal: NewPackedNode requires an interface")
	}
	if raw == nil {
		raw = []byte{}
	}
	n := &Node{ctx: ctx, iface: iface, raw: raw}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewUnpackedNode builds an unpacked-only node from an already
// constructed model. The node's interface is the model's own.
func NewUnpackedNode(ctx *TreeContext, model Model, opts ...NodeOption) *Node {
	if model == nil {
		panic("bal: NewUnpackedNode requires a model")
	}
	n := &Node{ctx: ctx, iface: model.ModelInterface()}
	for _, opt := range opts {
		opt(n)
	}
	n.attach(model)
	return n
}

// Context returns the owning tree context.
func (n *Node) Context() *TreeContext { return n.ctx }

// Interface returns the declared structural interface.
func (n *Node) Interface() *Interface { return n.iface }

// InterfaceType returns the declared interface name. Never unpacks.
func (n *Node) InterfaceType() string { return n.iface.Name() }

// Description returns the declared interface description. Never unpacks.
func (n *Node) Description() string { return n.iface.Description() }

// Parent returns the node owning this one through its model, or nil
// for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsPacked reports whether the node holds cached bytes.
func (n *Node) IsPacked() bool { return n.raw != nil }

// IsUnpacked reports whether the node holds a model.
func (n *Node) IsUnpacked() bool { return n.model != nil }

// Bytes returns the cached bytes, nil when the node is unpacked-only.
// Use Pack to force serialization.
func (n *Node) Bytes() []byte { return n.raw }

// Size returns the cached byte length, 0 when the node is unpacked-only.
func (n *Node) Size() int { return len(n.raw) }

// BitSize returns the bit width of the packed span. Sub-byte widths can
// be recorded with WithBitSize; otherwise it is derived from the bytes.
func (n *Node) BitSize() int {
	if n.bitSize > 0 {
		return n.bitSize
	}
	return len(n.raw) * 8
}

// Model returns the cached model, nil when the node is packed-only.
// Use Unpack to materialize one.
func (n *Node) Model() Model { return n.model }

// Unpack materializes the node's model, resolving a serializer for the
// declared interface through the tree's registry. It is idempotent: a
// cached model is returned as-is and Deserialize runs at most once per
// node. On failure the node keeps its prior state.
func (n *Node) Unpack() (Model, error) {
	if n.model != nil {
		return n.model, nil
	}
	if n.ctx == nil || n.raw == nil {
		return nil, &InvalidNodeStateError{Interface: n.iface}
	}
	s, err := n.ctx.Serializer(n.iface)
	if err != nil {
		return nil, err
	}
	model, err := s.Deserialize(n.raw)
	if err != nil {
		var malformed *MalformedDataError
		if errors.As(err, &malformed) {
			return nil, err
		}
		return nil, &MalformedDataError{Interface: n.iface, Err: err}
	}
	n.attach(model)
	return model, nil
}

// UnpackAll recursively unpacks the node and every descendant that has
// a registered serializer. Descendants with no serializer stay packed.
func (n *Node) UnpackAll() error {
	if n.model == nil {
		if _, err := n.Unpack(); err != nil {
			if errors.Is(err, ErrUnregistered) {
				return nil
			}
			return err
		}
	}
	for _, f := range n.model.Fields() {
		if f.Node == nil {
			continue
		}
		if err := f.Node.UnpackAll(); err != nil {
			return err
		}
	}
	return nil
}

// Pack returns the serialized bytes of the node. Cached bytes are
// returned unchanged unless force is set. Otherwise the model is
// serialized through the registry-resolved serializer and the result
// cached. On failure previously cached bytes are left untouched.
func (n *Node) Pack(force bool) ([]byte, error) {
	if n.raw != nil && !force {
		return n.raw, nil
	}
	if n.model == nil {
		if n.raw != nil {
			// Forced repack of a packed-only node: the bytes are
			// already the authoritative representation.
			return n.raw, nil
		}
		return nil, &InvalidNodeStateError{Interface: n.iface}
	}
	s, err := n.ctx.Serializer(n.iface)
	if err != nil {
		return nil, err
	}
	data, err := s.Serialize(n.model)
	if err != nil {
		return nil, err
	}
	n.raw = data
	return data, nil
}

// SetBytes replaces the raw bytes of a packed-only node and drops the
// cached serializations of every ancestor. Setting bytes on an unpacked
// node is rejected: the model would silently go stale.
func (n *Node) SetBytes(data []byte) error {
	if n.model != nil {
		return &InvalidNodeStateError{Interface: n.iface}
	}
	if data == nil {
		data = []byte{}
	}
	n.raw = data
	if n.parent != nil {
		n.parent.Invalidate()
	}
	return nil
}

// SetModel replaces the node's model, drops its stale bytes, and
// invalidates every ancestor's cached serialization.
func (n *Node) SetModel(model Model) error {
	if model == nil {
		return &InvalidNodeStateError{Interface: n.iface}
	}
	if !declares(model.ModelInterface(), n.iface) {
		return &TypeMismatchError{Want: n.iface, Got: model.ModelInterface()}
	}
	n.attach(model)
	n.Invalidate()
	return nil
}

// InvalidatePacked drops the cached bytes without touching the model.
// It is a no-op when the bytes are the only representation.
func (n *Node) InvalidatePacked() {
	if n.model == nil {
		return
	}
	n.raw = nil
}

// Invalidate drops the cached bytes of this node and of every ancestor
// up to the root. Mutators call it after changing a node so stale
// ancestor serializations are never returned.
func (n *Node) Invalidate() {
	for p := n; p != nil; p = p.parent {
		p.InvalidatePacked()
	}
}

// attach caches the model and claims its subtree by setting parent
// back-references on every node reachable through unpacked models.
func (n *Node) attach(model Model) {
	n.model = model
	for _, f := range model.Fields() {
		if f.Node == nil || f.Node == n {
			continue
		}
		f.Node.parent = n
		if f.Node.model != nil {
			f.Node.attach(f.Node.model)
		}
	}
}

// declares reports whether iface or one of its declared ancestors is
// want.
func declares(iface, want *Interface) bool {
	if iface == nil {
		return false
	}
	for _, c := range iface.chain {
		if c == want {
			return true
		}
	}
	return false
}
