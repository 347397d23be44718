package bcodec_test

import (
	"testing"

	"github.com/quietmark/litesearch/internal/bcodec"
	"github.com/stretchr/testify/require"
)

func TestPutUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	bcodec.PutUint32(buf, 0xDEADBEEF)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf)
	require.Equal(t, uint32(0xDEADBEEF), bcodec.Uint32(buf))
}

func TestAppendUint32(t *testing.T) {
	buf := bcodec.AppendUint32([]byte("x"), 1)
	require.Equal(t, []byte{'x', 0, 0, 0, 1}, buf)
}

// FNV-1a-32 of the empty string is the offset basis; well-known test vectors
// confirm the shift-add expansion matches textbook multiplication.
func TestFNV1a32KnownVectors(t *testing.T) {
	require.Equal(t, uint32(0x811c9dc5), bcodec.FNV1a32(nil))
	require.Equal(t, uint32(0xe40c292c), bcodec.FNV1a32([]byte("a")))
	require.Equal(t, uint32(0xe70c2de5), bcodec.FNV1a32([]byte("b")))
	require.Equal(t, uint32(0xbf9cf968), bcodec.FNV1a32([]byte("foobar")))
}

func TestFNV1a32Deterministic(t *testing.T) {
	a := bcodec.FNV1a32([]byte("jupiter"))
	b := bcodec.FNV1a32([]byte("jupiter"))
	require.Equal(t, a, b)
}
