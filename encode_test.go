package snap

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundtrip(t *testing.T, src []byte) {
	t.Helper()
	var enc Encoder
	compressed, err := enc.CompressVec(src)
	require.NoError(t, err)

	var dec Decoder
	decoded, err := dec.DecompressVec(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(src, decoded))
}

func TestRoundtripEmpty(t *testing.T) {
	roundtrip(t, nil)
}

func TestRoundtripSmallLiteral(t *testing.T) {
	roundtrip(t, []byte("hello, world"))
}

func TestRoundtripRepeatedRun(t *testing.T) {
	roundtrip(t, bytes.Repeat([]byte("a"), 1000))
}

func TestRoundtripRepeatedWord(t *testing.T) {
	roundtrip(t, []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 500)))
}

func TestRoundtripBinaryIncompressible(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	b := make([]byte, 70000)
	r.Read(b)
	roundtrip(t, b)
}

func TestRoundtripAcrossMultipleBlocks(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	b := make([]byte, 5*maxBlockSize+17)
	r.Read(b)
	// introduce long matches so copies spanning offsets near table
	// rehash boundaries get exercised too.
	copy(b[maxBlockSize:], bytes.Repeat(b[:64], maxBlockSize/128))
	roundtrip(t, b)
}

// TestEmptyEncodesToSingleZeroByte pins the Open Question resolution
// recorded in DESIGN.md: compressing an empty input produces the single
// byte 0x00 (a zero-length varint header and nothing else).
func TestEmptyEncodesToSingleZeroByte(t *testing.T) {
	var enc Encoder
	out, err := enc.CompressVec(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, out)
}

func TestMaxEncodedLenTooLarge(t *testing.T) {
	require.Equal(t, -1, MaxEncodedLen(1<<32))
}

func TestMaxEncodedLenMonotonic(t *testing.T) {
	prev := MaxEncodedLen(0)
	for _, n := range []int{1, 10, 100, 1000, 100000} {
		got := MaxEncodedLen(n)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestCompressBufferTooSmall(t *testing.T) {
	var enc Encoder
	_, err := enc.Compress(make([]byte, 1), []byte("not tiny at all"))
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindBufferTooSmall, snapErr.Kind)
}

func TestEncoderReusableAcrossCalls(t *testing.T) {
	var enc Encoder
	for i := 0; i < 3; i++ {
		_, err := enc.CompressVec(bytes.Repeat([]byte{byte(i)}, 20000))
		require.NoError(t, err)
	}
}
