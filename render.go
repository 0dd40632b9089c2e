package bal

import (
	"fmt"
	"strings"
)

// Render builds an indented textual view of the node. Packed-only nodes
// render as their type and byte length; unpacked nodes list their
// fields, recursing when recurse is set. Rendering never unpacks.
func (n *Node) Render(recurse bool) string {
	var b strings.Builder
	n.render(&b, 0, recurse)
	return b.String()
}

func (n *Node) String() string { return n.Render(true) }

const renderIndent = "  "

func (n *Node) render(b *strings.Builder, depth int, recurse bool) {
	if n.model == nil {
		fmt.Fprintf(b, "Packed%s(%d)", n.iface.Name(), len(n.raw))
		return
	}

	fields := n.model.Fields()
	if len(fields) == 0 {
		if s, ok := n.model.(fmt.Stringer); ok {
			fmt.Fprintf(b, "%s(%s)", n.iface.Name(), s.String())
		} else {
			fmt.Fprintf(b, "%s()", n.iface.Name())
		}
		return
	}

	indent := strings.Repeat(renderIndent, depth)
	fmt.Fprintf(b, "%s({\n", n.iface.Name())
	for _, f := range fields {
		b.WriteString(indent + renderIndent)
		b.WriteString(f.Name)
		b.WriteString(": ")
		switch {
		case f.Node == nil:
			b.WriteString("<nil>")
		case recurse:
			f.Node.render(b, depth+1, recurse)
		default:
			fmt.Fprintf(b, "%s(...)", f.Node.InterfaceType())
		}
		b.WriteString(",\n")
	}
	b.WriteString(indent + "})")
}
