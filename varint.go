package snap

import "encoding/binary"

// putHeader writes the varint-encoded decompressed length that every raw
// block starts with, per original_source/src/compress.rs's compress() and
// decompress.rs's Header::read.
func putHeader(dst []byte, decodedLen int) int {
	return binary.PutUvarint(dst, uint64(decodedLen))
}

// readHeader reads the varint-encoded decompressed length a raw block
// starts with, rejecting lengths past MaxInputSize the same way
// original_source/src/decompress.rs's Header::read rejects them with
// Error::TooBig.
func readHeader(src []byte) (decodedLen, headerLen int, err error) {
	v, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, 0, newError(KindHeader)
	}
	if v > MaxInputSize {
		return 0, 0, &Error{Kind: KindTooBig, Given: v, Max: MaxInputSize}
	}
	return int(v), n, nil
}
