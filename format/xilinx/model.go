package xilinx

import (
	"github.com/redballoonsecurity/bal"
)

// BitstreamModel is the structured view of a whole bitstream.
type BitstreamModel struct {
	*bal.StructModel
}

// NewBitstreamModel builds a bitstream model over its three segments.
func NewBitstreamModel(header, syncMarker, packets *bal.Node) *BitstreamModel {
	return &BitstreamModel{
		StructModel: bal.NewStructModel(Bitstream,
			bal.Field{Name: "header", Node: header},
			bal.Field{Name: "sync_marker", Node: syncMarker},
			bal.Field{Name: "packets", Node: packets},
		),
	}
}

// Header returns the opaque header segment.
func (m *BitstreamModel) Header() *bal.Node { return m.Field("header") }

// SyncMarker returns the sync marker segment.
func (m *BitstreamModel) SyncMarker() *bal.Node { return m.Field("sync_marker") }

// Packets returns the configuration packet segment.
func (m *BitstreamModel) Packets() *bal.Node { return m.Field("packets") }
