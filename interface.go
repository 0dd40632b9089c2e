package bal

// Interface is a declared structural-interface identity. Format authors
// declare one per structure they model, usually as a package-level
// variable:
//
//	var Bitstream = bal.NewInterface("XilinxBitstream",
//	    "A full Xilinx FPGA bitstream.")
//
// Identity is pointer identity: two interfaces with the same name are
// distinct. Name, description, and the ancestor chain are fixed at
// declaration; the registry never inspects Go's runtime type graph.
type Interface struct {
	name        string
	description string
	ancestors   []*Interface
	chain       []*Interface
}

// NewInterface declares a structural interface. Ancestors are listed
// most-specific first; registry resolution falls back along them when
// the interface itself has no registered implementation.
func NewInterface(name, description string, ancestors ...*Interface) *Interface {
	i := &Interface{
		name:        name,
		description: description,
		ancestors:   ancestors,
	}
	i.chain = buildChain(i)
	return i
}

// Name returns the declared interface name.
func (i *Interface) Name() string { return i.name }

// Description returns the declared human-readable description.
func (i *Interface) Description() string { return i.description }

// Ancestors returns the directly declared ancestors, most-specific first.
func (i *Interface) Ancestors() []*Interface {
	out := make([]*Interface, len(i.ancestors))
	copy(out, i.ancestors)
	return out
}

// Chain returns the resolution order for this interface: the interface
// itself, then its ancestors breadth-first in declaration order, each
// interface appearing once. Breadth-first keeps "nearest ancestor"
// literal: all direct ancestors are tried before any of their own.
func (i *Interface) Chain() []*Interface {
	out := make([]*Interface, len(i.chain))
	copy(out, i.chain)
	return out
}

func (i *Interface) String() string { return i.name }

func buildChain(root *Interface) []*Interface {
	seen := map[*Interface]bool{root: true}
	chain := []*Interface{root}
	queue := make([]*Interface, 0, len(root.ancestors))
	queue = append(queue, root.ancestors...)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil || seen[next] {
			continue
		}
		seen[next] = true
		chain = append(chain, next)
		queue = append(queue, next.ancestors...)
	}
	return chain
}
