// Package xilinx models Xilinx FPGA bitstreams on top of the bal core.
//
// A bitstream is an opaque header, the 4-byte sync marker AA995566, and
// the register configuration packets that follow it. The header and
// sync marker are left opaque; the packets split into 32-bit
// configuration words on demand.
package xilinx

import (
	"github.com/redballoonsecurity/bal"
	"github.com/redballoonsecurity/bal/analyzers"
)

// Structural interfaces declared by this format.
var (
	Bitstream = bal.NewInterface("XilinxBitstream",
		"The root model for a Xilinx bitstream: a header, the sync marker, and configuration packets.")
	Header = bal.NewInterface("XilinxBitstreamHeader",
		"The Xilinx bitstream header. Its layout is undocumented and kept opaque.")
	SyncMarker = bal.NewInterface("XilinxBitstreamSyncMarker",
		"The Xilinx bitstream sync marker.")
	Packets = bal.NewInterface("XilinxPackets",
		"An array of Xilinx register configuration packets.")
	Word = bal.NewInterface("XilinxWord",
		"A single 32-bit big-endian Xilinx configuration word.")
)

// SyncWord is the marker separating the header from configuration data.
var SyncWord = []byte{0xAA, 0x99, 0x55, 0x66}

// NewFactory returns a context factory configured for Xilinx
// bitstreams: serializers for the bitstream, packet, and word layers,
// the tree visualizer, and the word patch mutator. The header and sync
// marker stay opaque.
func NewFactory(opts ...bal.FactoryOption) *bal.Factory {
	factory := bal.NewFactory(Bitstream, opts...)
	factory.RegisterSerializer(Bitstream, NewBitstreamSerializer)
	factory.RegisterSerializer(Packets, NewPacketsSerializer)
	factory.RegisterSerializer(Word, NewWordSerializer)
	factory.RegisterAnalyzer(analyzers.Visualizer, analyzers.NewVisualizer)
	factory.RegisterMutator(PatchWord, NewWordPatcher)
	return factory
}
