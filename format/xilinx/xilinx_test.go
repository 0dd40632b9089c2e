package xilinx_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redballoonsecurity/bal"
	"github.com/redballoonsecurity/bal/analyzers"
	"github.com/redballoonsecurity/bal/format/xilinx"
)

// buildBitstream assembles header + sync marker + config words.
func buildBitstream(header []byte, words ...uint32) []byte {
	out := append([]byte{}, header...)
	out = append(out, xilinx.SyncWord...)
	for _, w := range words {
		out = binary.BigEndian.AppendUint32(out, w)
	}
	return out
}

func TestBitstreamSplit(t *testing.T) {
	// A 340604-byte image with the sync marker at offset 16 splits into
	// segments of 16, 4, and 340584 bytes.
	data := make([]byte, 340604)
	copy(data[16:], xilinx.SyncWord)

	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	model, err := ctx.Root().Unpack()
	require.NoError(t, err)

	fields := model.Fields()
	require.Len(t, fields, 3)

	var total int
	for i, want := range []int{16, 4, 340584} {
		packed, err := fields[i].Node.Pack(false)
		require.NoError(t, err)
		require.Len(t, packed, want)
		total += len(packed)
	}
	require.Equal(t, 340604, total)
}

func TestBitstreamFieldNamesAndTypes(t *testing.T) {
	data := buildBitstream([]byte("hdr!"), 0xDEADBEEF)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	model, err := ctx.Root().Unpack()
	require.NoError(t, err)
	m := model.(*xilinx.BitstreamModel)

	require.Equal(t, "XilinxBitstreamHeader", m.Header().InterfaceType())
	require.Equal(t, "XilinxBitstreamSyncMarker", m.SyncMarker().InterfaceType())
	require.Equal(t, "XilinxPackets", m.Packets().InterfaceType())
	require.Equal(t, xilinx.SyncWord, m.SyncMarker().Bytes())
}

func TestResolveBeforeRegistration(t *testing.T) {
	ctx, err := bal.NewFactory(xilinx.Bitstream).Create([]byte{1, 2, 3})
	require.NoError(t, err)

	_, err = ctx.Serializer(xilinx.Bitstream)
	require.ErrorIs(t, err, bal.ErrUnregistered)
}

func TestMissingSyncMarker(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 64)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	_, err = ctx.Root().Unpack()
	require.ErrorIs(t, err, bal.ErrMalformedData)
	require.True(t, ctx.Root().IsPacked())
	require.False(t, ctx.Root().IsUnpacked())
}

func TestTruncatedConfigData(t *testing.T) {
	data := append([]byte("hdr!"), xilinx.SyncWord...)
	data = append(data, 0x30) // less than one word

	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	_, err = ctx.Root().Unpack()
	require.ErrorIs(t, err, bal.ErrMalformedData)
}

func TestRoundTrip(t *testing.T) {
	data := buildBitstream([]byte("some header bytes"), 0x30008001, 0x0000000B, 0xAA995566)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	require.NoError(t, ctx.Root().UnpackAll())

	out, err := ctx.Root().Pack(true)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestWordValues(t *testing.T) {
	data := buildBitstream(nil, 0x30008001, 0x0000000B)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	model, err := ctx.Root().Unpack()
	require.NoError(t, err)
	packets, err := model.(*xilinx.BitstreamModel).Packets().Unpack()
	require.NoError(t, err)

	words := packets.(*bal.ArrayModel)
	require.Equal(t, 2, words.Len())

	first, err := words.At(0).Unpack()
	require.NoError(t, err)
	require.Equal(t, uint64(0x30008001), first.(*bal.ValueModel).Value())
}

func TestWordPatcherInvalidatesAncestors(t *testing.T) {
	data := buildBitstream([]byte("hdr!"), 0x30008001, 0x0000000B)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	_, err = ctx.Root().Unpack()
	require.NoError(t, err)

	m, err := ctx.Mutator(xilinx.PatchWord)
	require.NoError(t, err)
	patcher := m.(*xilinx.WordPatcher)
	patcher.Index, patcher.Value = 1, 0x0000000C
	require.NoError(t, patcher.Modify(ctx.Root()))

	require.False(t, ctx.Root().IsPacked(), "stale root serialization must be dropped")

	out, err := ctx.Root().Pack(false)
	require.NoError(t, err)
	require.Equal(t, buildBitstream([]byte("hdr!"), 0x30008001, 0x0000000C), out)
}

func TestWordPatcherIndexOutOfRange(t *testing.T) {
	data := buildBitstream(nil, 0x30008001)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	m, err := ctx.Mutator(xilinx.PatchWord)
	require.NoError(t, err)
	patcher := m.(*xilinx.WordPatcher)
	patcher.Index = 5
	require.Error(t, patcher.Modify(ctx.Root()))
}

func TestVisualizerSummary(t *testing.T) {
	data := buildBitstream([]byte{0, 0, 0, 0}, 0x30008001)
	ctx, err := xilinx.NewFactory().Create(data)
	require.NoError(t, err)

	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)

	result, err := v.Analyze(ctx.Root())
	require.NoError(t, err)
	summary := result.(*analyzers.Summary)

	require.Equal(t, "XilinxBitstream", summary.Type)
	require.True(t, summary.Unpacked)
	require.Len(t, summary.Children, 3)

	header := summary.Children[0]
	require.Equal(t, "XilinxBitstreamHeader", header.Type)
	require.False(t, header.Unpacked)
	require.True(t, header.IsEmpty, "all-zero opaque segment reports empty")

	packets := summary.Children[2]
	require.Equal(t, "XilinxPackets", packets.Type)
	require.Len(t, packets.Children, 1)
	require.NotNil(t, packets.Children[0].Value)
	require.Equal(t, uint64(0x30008001), *packets.Children[0].Value)
}
