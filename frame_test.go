package snap

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func frameRoundtrip(t *testing.T, src []byte) {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.True(t, bytes.Equal(src, got))
}

func TestFrameRoundtripSmall(t *testing.T) {
	frameRoundtrip(t, []byte("hello, frame format"))
}

func TestFrameRoundtripEmpty(t *testing.T) {
	frameRoundtrip(t, nil)
}

func TestFrameRoundtripAcrossMultipleChunks(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	b := make([]byte, 3*maxBlockSize+1234)
	r.Read(b)
	frameRoundtrip(t, b)
}

func TestFrameRoundtripIncompressibleUsesUncompressedChunk(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	b := make([]byte, maxBlockSize)
	r.Read(b)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got := buf.Bytes()
	// magicChunk (10 bytes) then a chunk header whose type byte should be
	// chunkTypeUncompressedData for high-entropy input.
	require.Equal(t, byte(chunkTypeUncompressedData), got[magicChunkLen])
}

func TestReaderRejectsBadStreamHeader(t *testing.T) {
	bad := []byte{chunkTypeStreamIdentifier, 0x06, 0x00, 0x00, 'X', 'X', 'X', 'X', 'X', 'X'}
	r := NewReader(bytes.NewReader(bad))
	_, err := io.ReadAll(r)
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindStreamHeaderMismatch, snapErr.Kind)
}

func TestReaderRejectsChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write([]byte("tamper with me"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	corrupted := buf.Bytes()
	// Flip a byte inside the checksum field of the first (only) chunk.
	corrupted[magicChunkLen+4] ^= 0xff

	r := NewReader(bytes.NewReader(corrupted))
	_, err = io.ReadAll(r)
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindChecksum, snapErr.Kind)
}

func TestReaderRequiresStreamIdentifierFirst(t *testing.T) {
	// An all-padding stream must still fail StreamHeader rather than be
	// accepted as a valid empty stream.
	padding := []byte{chunkTypePadding, 0x00, 0x00, 0x00}
	r := NewReader(bytes.NewReader(padding))
	_, err := io.ReadAll(r)
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindStreamHeader, snapErr.Kind)
}

func TestReaderRequiresStreamIdentifierFirstEvenForSkippableChunk(t *testing.T) {
	skippable := []byte{0x90, 0x00, 0x00, 0x00}
	r := NewReader(bytes.NewReader(skippable))
	_, err := io.ReadAll(r)
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindStreamHeader, snapErr.Kind)
}

func TestDecodeWriterRequiresStreamIdentifierFirst(t *testing.T) {
	padding := []byte{chunkTypePadding, 0x00, 0x00, 0x00}
	var out bytes.Buffer
	dw := NewDecodeWriter(&out)
	_, err := dw.Write(padding)
	require.Error(t, err)
	var snapErr *Error
	require.ErrorAs(t, err, &snapErr)
	require.Equal(t, KindStreamHeader, snapErr.Kind)
}

// buildChunk returns the raw bytes for a single frame-format chunk of the
// given type with the given body, independent of writer.go/encode_reader.go.
func buildChunk(chunkType byte, body []byte) []byte {
	chunk := []byte{chunkType, byte(len(body)), byte(len(body) >> 8), byte(len(body) >> 16)}
	return append(chunk, body...)
}

func TestFrameRoundtripWithSkippableChunkBetweenDataChunks(t *testing.T) {
	var buf1 bytes.Buffer
	w1 := NewWriter(&buf1)
	_, err := w1.Write([]byte("first payload"))
	require.NoError(t, err)
	require.NoError(t, w1.Close())
	chunk1 := buf1.Bytes()[magicChunkLen:]

	var buf2 bytes.Buffer
	w2 := NewWriter(&buf2)
	_, err = w2.Write([]byte("second payload"))
	require.NoError(t, err)
	require.NoError(t, w2.Close())
	chunk2 := buf2.Bytes()[magicChunkLen:]

	// A reserved-skippable chunk (type 0x90) between two valid data
	// chunks must be skipped, not treated as a stream error or as data.
	skippable := buildChunk(0x90, []byte("ignore me"))

	var stream bytes.Buffer
	stream.Write(magicChunk)
	stream.Write(chunk1)
	stream.Write(skippable)
	stream.Write(chunk2)

	r := NewReader(&stream)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "first payloadsecond payload", string(got))
}

func TestEncodeReaderMatchesWriter(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	src := make([]byte, 2*maxBlockSize+99)
	r.Read(src)

	viaReader, err := io.ReadAll(NewEncodeReader(bytes.NewReader(src)))
	require.NoError(t, err)

	var viaWriter bytes.Buffer
	w := NewWriter(&viaWriter)
	_, err = w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.True(t, bytes.Equal(viaWriter.Bytes(), viaReader))

	decoded, err := io.ReadAll(NewReader(bytes.NewReader(viaReader)))
	require.NoError(t, err)
	require.True(t, bytes.Equal(src, decoded))
}

func TestDecodeWriterMatchesReader(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	src := make([]byte, 2*maxBlockSize+77)
	r.Read(src)

	var framed bytes.Buffer
	w := NewWriter(&framed)
	_, err := w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var out bytes.Buffer
	dw := NewDecodeWriter(&out)
	// Push the framed bytes through in small, arbitrarily sized pieces to
	// exercise the partial-chunk buffering path.
	data := framed.Bytes()
	for len(data) > 0 {
		n := 7
		if n > len(data) {
			n = len(data)
		}
		_, err := dw.Write(data[:n])
		require.NoError(t, err)
		data = data[n:]
	}
	require.NoError(t, dw.Close())
	require.True(t, bytes.Equal(src, out.Bytes()))

	viaReader, err := io.ReadAll(NewReader(bytes.NewReader(framed.Bytes())))
	require.NoError(t, err)
	require.True(t, bytes.Equal(viaReader, out.Bytes()))
}

func TestWriterResetReusesBuffers(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	w := NewWriter(&buf1)
	_, err := w.Write([]byte("first stream"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w.Reset(&buf2)
	_, err = w.Write([]byte("second stream"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewReader(&buf2)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "second stream", string(got))
}
