package snap

// Frame-format constants shared by writer.go, reader.go, encode_reader.go
// and decode_writer.go. Grounded on original_source/src/frame.rs's
// STREAM_IDENTIFIER/ChunkType and bmatsuo-snappyframed/writer.go's
// writeHeader chunk-header byte layout.
const (
	chunkTypeCompressedData   = 0x00
	chunkTypeUncompressedData = 0x01
	chunkTypePadding          = 0xfe
	chunkTypeStreamIdentifier = 0xff
)

// magicChunkLen is the length of the whole stream-identifier chunk: a
// one-byte chunk type, a three-byte little-endian length of 6, and the
// six-byte body "sNaPpY".
const magicChunkLen = 10

// magicChunk is the whole ten-byte stream-identifier chunk.
var magicChunk = []byte{chunkTypeStreamIdentifier, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
var magicBody = []byte("sNaPpY")

// chunkHeaderAndCRCSize is the per-chunk overhead that precedes a
// compressed-data or uncompressed-data chunk's payload: a one-byte chunk
// type, a three-byte little-endian length, and a four-byte masked CRC32C.
const chunkHeaderAndCRCSize = 4 + 4

// obufHeaderLen is the offset into a chunk output buffer at which the
// chunk payload starts, once room has been reserved for both the stream
// identifier (written once, at the very start of a stream) and the
// per-chunk header.
const obufHeaderLen = magicChunkLen + chunkHeaderAndCRCSize

// obufLen is the size of a chunk output buffer large enough to hold the
// worst-case encoding of one maxBlockSize block.
var obufLen = obufHeaderLen + MaxEncodedLen(maxBlockSize)

// isReservedSkippableChunkType reports whether b names a chunk type
// reserved for future skippable frame-format extensions: a decoder that
// doesn't recognize it discards the chunk's body using its length and
// continues.
func isReservedSkippableChunkType(b byte) bool {
	return b >= 0x80 && b <= 0xfd
}

// compressFrame builds one frame-format chunk for uncompressed into obuf,
// compressing it with enc and checksumming it with sum, prefixed by the
// stream identifier chunk when writeStreamHeader is true. This is the
// shared compress_frame primitive both writer.go's push-model Writer and
// encode_reader.go's pull-model EncodeReader build their chunk stream
// from, rather than each duplicating the header/checksum/compress-vs-raw
// bookkeeping.
//
// obuf must be at least obufLen bytes long. The returned slice aliases
// obuf and is only valid until the next call.
func compressFrame(enc *Encoder, sum CheckSummer, obuf, uncompressed []byte, writeStreamHeader bool) ([]byte, error) {
	obufStart := magicChunkLen
	if writeStreamHeader {
		copy(obuf, magicChunk)
		obufStart = 0
	}

	checksum := sum.Checksum(uncompressed)
	compressed, err := enc.Compress(obuf[obufHeaderLen:], uncompressed)
	if err != nil {
		return nil, err
	}

	chunkType := uint8(chunkTypeCompressedData)
	chunkLen := 4 + len(compressed)
	obufEnd := obufHeaderLen + len(compressed)
	if len(compressed) >= len(uncompressed)-len(uncompressed)/8 {
		chunkType = chunkTypeUncompressedData
		chunkLen = 4 + len(uncompressed)
		obufEnd = obufHeaderLen + len(uncompressed)
		copy(obuf[obufHeaderLen:obufEnd], uncompressed)
	}

	obuf[magicChunkLen+0] = chunkType
	obuf[magicChunkLen+1] = uint8(chunkLen >> 0)
	obuf[magicChunkLen+2] = uint8(chunkLen >> 8)
	obuf[magicChunkLen+3] = uint8(chunkLen >> 16)
	obuf[magicChunkLen+4] = uint8(checksum >> 0)
	obuf[magicChunkLen+5] = uint8(checksum >> 8)
	obuf[magicChunkLen+6] = uint8(checksum >> 16)
	obuf[magicChunkLen+7] = uint8(checksum >> 24)

	return obuf[obufStart:obufEnd], nil
}
