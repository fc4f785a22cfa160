package snap

import "fmt"

// Kind identifies the shape of an error returned by this package,
// mirroring original_source/src/error.rs's Error enum one variant at a
// time. Every Kind value corresponds to corrupt input or a caller sizing
// mistake; none of them are retried internally.
type Kind int

const (
	KindTooBig Kind = iota
	KindBufferTooSmall
	KindEmpty
	KindHeader
	KindHeaderMismatch
	KindLiteral
	KindCopyRead
	KindCopyWrite
	KindOffset
	KindStreamHeader
	KindStreamHeaderMismatch
	KindUnsupportedChunkType
	KindUnsupportedChunkLength
	KindChecksum
)

// Error is the single error type returned by every operation in this
// package, grounded on original_source/src/error.rs's Error enum and its
// exact Display wording. It implements the standard error interface
// directly, so it flows through io.Reader/io.Writer without an explicit
// conversion step.
type Error struct {
	Kind Kind

	// TooBig
	Given, Max uint64
	// BufferTooSmall
	Min uint64
	// HeaderMismatch
	ExpectedLen, GotLen uint64
	// Literal
	Len, SrcLen, DstLen uint64
	// CopyRead reuses Len/SrcLen. CopyWrite reuses Len/DstLen.
	// Offset
	Offset, DstPos uint64
	// StreamHeader / UnsupportedChunkType
	Byte byte
	// StreamHeaderMismatch
	Bytes []byte
	// UnsupportedChunkLength
	ChunkLen uint64
	IsHeader bool
	// Checksum
	ExpectedSum, GotSum uint32
}

func newError(kind Kind) *Error { return &Error{Kind: kind} }

func (e *Error) Error() string {
	switch e.Kind {
	case KindTooBig:
		return fmt.Sprintf("snappy: input (%d bytes) is too large (max %d bytes)", e.Given, e.Max)
	case KindBufferTooSmall:
		return fmt.Sprintf("snappy: output buffer (%d bytes) is too small (min %d bytes)", e.Given, e.Min)
	case KindEmpty:
		return "snappy: corrupt input (empty)"
	case KindHeader:
		return "snappy: corrupt input (invalid header)"
	case KindHeaderMismatch:
		return fmt.Sprintf("snappy: corrupt input (header decompressed length is %d bytes, but actual decompressed length is %d bytes)", e.ExpectedLen, e.GotLen)
	case KindLiteral:
		return fmt.Sprintf("snappy: corrupt input (invalid literal length %d, src len %d, dst len %d)", e.Len, e.SrcLen, e.DstLen)
	case KindCopyRead:
		return fmt.Sprintf("snappy: corrupt input (copy of length %d goes out of bounds of source of length %d)", e.Len, e.SrcLen)
	case KindCopyWrite:
		return fmt.Sprintf("snappy: corrupt input (copy of length %d goes out of bounds of destination of length %d)", e.Len, e.DstLen)
	case KindOffset:
		return fmt.Sprintf("snappy: corrupt input (invalid offset %d; dst position: %d)", e.Offset, e.DstPos)
	case KindStreamHeader:
		return fmt.Sprintf("snappy: corrupt input (invalid stream header byte 0x%02x)", e.Byte)
	case KindStreamHeaderMismatch:
		return fmt.Sprintf("snappy: corrupt input (invalid stream header %v)", e.Bytes)
	case KindUnsupportedChunkType:
		return fmt.Sprintf("snappy: unsupported chunk type 0x%02x", e.Byte)
	case KindUnsupportedChunkLength:
		if e.IsHeader {
			return fmt.Sprintf("snappy: unsupported header chunk length %d", e.ChunkLen)
		}
		return fmt.Sprintf("snappy: unsupported chunk length %d", e.ChunkLen)
	case KindChecksum:
		return fmt.Sprintf("snappy: corrupt input (checksum mismatch: expected 0x%08x but got 0x%08x)", e.ExpectedSum, e.GotSum)
	default:
		return "snappy: unknown error"
	}
}
