package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFormatsRegistersXilinx(t *testing.T) {
	m := newFormats()

	factory, err := m.Get("xilinx")
	require.NoError(t, err)
	require.Equal(t, "XilinxBitstream", factory.RootInterface().Name())
	require.Equal(t, []string{"xilinx"}, m.Keys())
}
