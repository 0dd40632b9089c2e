package analyzers_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redballoonsecurity/bal"
	"github.com/redballoonsecurity/bal/analyzers"
)

var (
	pairIface  = bal.NewInterface("Pair", "Two equal halves.")
	halfIface  = bal.NewInterface("PairHalf", "One half of a pair.")
	countIface = bal.NewInterface("Count", "A one-byte counter.")
)

type pairSerializer struct{ ctx *bal.TreeContext }

func (s pairSerializer) Deserialize(data []byte) (bal.Model, error) {
	mid := len(data) / 2
	return bal.NewStructModel(pairIface,
		bal.Field{Name: "left", Node: bal.NewPackedNode(s.ctx, data[:mid], halfIface)},
		bal.Field{Name: "right", Node: bal.NewPackedNode(s.ctx, data[mid:], halfIface)},
	), nil
}

func (s pairSerializer) Serialize(model bal.Model) ([]byte, error) {
	m := model.(*bal.StructModel)
	left, err := m.Field("left").Pack(false)
	if err != nil {
		return nil, err
	}
	right, err := m.Field("right").Pack(false)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, left...), right...), nil
}

func newPairFactory() *bal.Factory {
	factory := bal.NewFactory(pairIface)
	factory.RegisterSerializer(pairIface, func(ctx *bal.TreeContext) bal.Serializer {
		return pairSerializer{ctx: ctx}
	})
	factory.RegisterAnalyzer(analyzers.Visualizer, analyzers.NewVisualizer)
	return factory
}

func TestVisualizerTraversesOpaqueLeaves(t *testing.T) {
	ctx, err := newPairFactory().Create([]byte{0, 0, 1, 2})
	require.NoError(t, err)

	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)
	result, err := v.Analyze(ctx.Root())
	require.NoError(t, err)

	summary := result.(*analyzers.Summary)
	require.Equal(t, "Pair", summary.Type)
	require.True(t, summary.Unpacked)
	require.False(t, summary.IsEmpty)
	require.Len(t, summary.Children, 2)

	require.True(t, summary.Children[0].IsEmpty, "all-zero half")
	require.False(t, summary.Children[0].Unpacked, "halves are opaque")
	require.False(t, summary.Children[1].IsEmpty)
	require.Equal(t, 16, summary.Children[0].BitSize)
}

func TestVisualizerAllZeroTreeIsEmpty(t *testing.T) {
	ctx, err := newPairFactory().Create(make([]byte, 8))
	require.NoError(t, err)

	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)
	result, err := v.Analyze(ctx.Root())
	require.NoError(t, err)

	require.True(t, result.(*analyzers.Summary).IsEmpty)
}

func TestVisualizerValueLeaf(t *testing.T) {
	ctx, err := newPairFactory().Create(nil)
	require.NoError(t, err)

	node := bal.NewUnpackedNode(ctx, bal.NewNamedValueModel(countIface, 3, "RETRIES", ""))
	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)

	result, err := v.Analyze(node)
	require.NoError(t, err)
	summary := result.(*analyzers.Summary)

	require.True(t, summary.Unpacked)
	require.NotNil(t, summary.Value)
	require.Equal(t, uint64(3), *summary.Value)
	require.Equal(t, "RETRIES", summary.ValueName)
	require.False(t, summary.IsEmpty)
}

func TestVisualizerChildlessModelIsEmpty(t *testing.T) {
	ctx, err := newPairFactory().Create(nil)
	require.NoError(t, err)

	node := bal.NewUnpackedNode(ctx, bal.NewStructModel(pairIface))
	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)

	result, err := v.Analyze(node)
	require.NoError(t, err)
	summary := result.(*analyzers.Summary)

	require.True(t, summary.Unpacked)
	require.Empty(t, summary.Children)
	require.True(t, summary.IsEmpty)
}

func TestVisualizerSummaryMarshalsToJSON(t *testing.T) {
	ctx, err := newPairFactory().Create([]byte{1, 2, 3, 4})
	require.NoError(t, err)

	v, err := ctx.Analyzer(analyzers.Visualizer)
	require.NoError(t, err)
	result, err := v.Analyze(ctx.Root())
	require.NoError(t, err)

	out, err := json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(out), `"type":"Pair"`)
	require.Contains(t, string(out), `"children"`)
}
