package snap

import (
	"bytes"
	"encoding/binary"
	"io"
)

// maxChunkBodyLen bounds how large a single frame-format chunk's body
// (length field value, which includes the trailing checksum for data
// chunks) is allowed to be before a decoder gives up rather than
// allocate an unbounded buffer for it.
var maxChunkBodyLen = chunkHeaderAndCRCSize + MaxEncodedLen(maxBlockSize)

// Reader is an io.Reader that decompresses the Snappy frame format read
// from an underlying io.Reader. Grounded on
// original_source/src/read.rs's FrameDecoder<R> and, since that file was
// the only complete pull-model decompress implementation in the
// retrieval pack, bmatsuo-snappyframed/reader.go's nextFrame/decodeBlock/
// readStreamID/discardBlock structure.
type Reader struct {
	r   io.Reader
	dec Decoder
	sum CheckSummer
	err error

	hdr [4]byte
	buf []byte // raw chunk body, reused across calls

	decoded []byte // decoded bytes not yet returned to the caller
	dPos    int

	readStreamHeader bool
}

// NewReader returns a Reader that decompresses frame-format data read
// from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Reset discards the Reader's state and switches it to read from r,
// letting a Reader be reused instead of reallocated.
func (z *Reader) Reset(r io.Reader) {
	z.r = r
	z.err = nil
	z.decoded = z.decoded[:0]
	z.dPos = 0
	z.readStreamHeader = false
}

func (z *Reader) readFull(n int) ([]byte, error) {
	if cap(z.buf) < n {
		z.buf = make([]byte, n)
	}
	buf := z.buf[:n]
	if _, err := io.ReadFull(z.r, buf); err != nil {
		if err == io.EOF && n != 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

// nextFrame reads and decodes the next chunk into z.decoded, looping
// past stream-identifier repeats, padding, and reserved skippable chunk
// types, which never carry caller-visible data.
func (z *Reader) nextFrame() error {
	for {
		if _, err := io.ReadFull(z.r, z.hdr[:]); err != nil {
			return err
		}
		chunkType := z.hdr[0]
		chunkLen := int(z.hdr[1]) | int(z.hdr[2])<<8 | int(z.hdr[3])<<16

		// The very first chunk of a stream must be the stream identifier;
		// every other chunk type seen before one -- padding, reserved-
		// skippable, or otherwise -- fails StreamHeader rather than being
		// silently discarded or dispatched on, matching
		// original_source/src/read.rs's read() ordering.
		if chunkType == chunkTypeStreamIdentifier {
			if chunkLen != len(magicBody) {
				return &Error{Kind: KindUnsupportedChunkLength, ChunkLen: uint64(chunkLen), IsHeader: true}
			}
			body, err := z.readFull(chunkLen)
			if err != nil {
				return err
			}
			if !bytes.Equal(body, magicBody) {
				return &Error{Kind: KindStreamHeaderMismatch, Bytes: append([]byte(nil), body...)}
			}
			z.readStreamHeader = true
			continue
		}
		if !z.readStreamHeader {
			return &Error{Kind: KindStreamHeader, Byte: chunkType}
		}

		switch {
		case chunkType == chunkTypePadding || isReservedSkippableChunkType(chunkType):
			if chunkLen > maxChunkBodyLen {
				return &Error{Kind: KindUnsupportedChunkLength, ChunkLen: uint64(chunkLen)}
			}
			if _, err := z.readFull(chunkLen); err != nil {
				return err
			}
			continue

		case chunkType != chunkTypeCompressedData && chunkType != chunkTypeUncompressedData:
			return &Error{Kind: KindUnsupportedChunkType, Byte: chunkType}
		}

		if chunkLen < 4 || chunkLen > maxChunkBodyLen {
			return &Error{Kind: KindUnsupportedChunkLength, ChunkLen: uint64(chunkLen)}
		}
		body, err := z.readFull(chunkLen)
		if err != nil {
			return err
		}
		wantSum := binary.LittleEndian.Uint32(body[:4])
		payload := body[4:]

		var decoded []byte
		if chunkType == chunkTypeUncompressedData {
			decoded = payload
		} else {
			decoded, err = z.dec.DecompressVec(payload)
			if err != nil {
				return err
			}
		}
		gotSum := z.sum.Checksum(decoded)
		if gotSum != wantSum {
			return &Error{Kind: KindChecksum, ExpectedSum: wantSum, GotSum: gotSum}
		}
		if cap(z.decoded) < len(decoded) {
			z.decoded = make([]byte, len(decoded))
		}
		z.decoded = z.decoded[:len(decoded)]
		copy(z.decoded, decoded)
		z.dPos = 0
		return nil
	}
}

// Read satisfies the io.Reader interface.
func (z *Reader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	for z.dPos >= len(z.decoded) {
		if err := z.nextFrame(); err != nil {
			z.err = err
			return 0, err
		}
	}
	n := copy(p, z.decoded[z.dPos:])
	z.dPos += n
	return n, nil
}
