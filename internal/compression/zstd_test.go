package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTrip(t *testing.T) {
	plain := bytes.Repeat([]byte("firmware segment "), 64)

	compressed, err := Encode(plain)
	require.NoError(t, err)
	require.True(t, IsZstd(compressed))

	out, err := Decode(compressed)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecodePassesThroughPlainData(t *testing.T) {
	plain := []byte{0xAA, 0x99, 0x55, 0x66}
	out, err := Decode(plain)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecodeRejectsTruncatedFrame(t *testing.T) {
	compressed, err := Encode([]byte("some data to compress"))
	require.NoError(t, err)

	_, err = Decode(compressed[:len(compressed)-3])
	require.Error(t, err)
}

func TestIsZstdShortInput(t *testing.T) {
	require.False(t, IsZstd(nil))
	require.False(t, IsZstd([]byte{0x28, 0xB5}))
}
