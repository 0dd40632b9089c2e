package xilinx

import (
	"fmt"

	"github.com/redballoonsecurity/bal"
)

// PatchWord is the capability interface for rewriting one configuration
// word in place.
var PatchWord = bal.NewInterface("XilinxPatchWord",
	"Rewrites a single configuration word of an unpacked bitstream.")

// WordPatcher replaces the configuration word at Index with Value and
// invalidates every ancestor serialization up to the root. Resolve it
// through the registry and type-assert to set the parameters:
//
//	m, _ := ctx.Mutator(xilinx.PatchWord)
//	p := m.(*xilinx.WordPatcher)
//	p.Index, p.Value = 0, 0x30008001
//	err := p.Modify(ctx.Root())
type WordPatcher struct {
	ctx *bal.TreeContext

	Index int
	Value uint64
}

// NewWordPatcher constructs the PatchWord implementation.
func NewWordPatcher(ctx *bal.TreeContext) bal.Mutator {
	return &WordPatcher{ctx: ctx}
}

// Modify unpacks down to the target word, rewrites its value, and
// invalidates the cached bytes along the ancestor chain.
func (p *WordPatcher) Modify(node *bal.Node) error {
	model, err := node.Unpack()
	if err != nil {
		return err
	}
	bitstream, ok := model.(*BitstreamModel)
	if !ok {
		return &bal.TypeMismatchError{Want: Bitstream, Got: model.ModelInterface()}
	}

	packetsModel, err := bitstream.Packets().Unpack()
	if err != nil {
		return err
	}
	words := packetsModel.(*bal.ArrayModel)
	if p.Index < 0 || p.Index >= words.Len() {
		return fmt.Errorf("word index %d out of range [0, %d)", p.Index, words.Len())
	}

	wordNode := words.At(p.Index)
	wordModel, err := wordNode.Unpack()
	if err != nil {
		return err
	}
	wordModel.(*bal.ValueModel).SetValue(p.Value)
	wordNode.Invalidate()
	return nil
}
