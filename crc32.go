package snap

import "hash/crc32"

// checksumTable is the Castagnoli CRC32 polynomial table the frame
// format's per-chunk checksums are computed from, grounded on
// original_source/src/crc32.rs's CASTAGNOLI_POLY and on
// bmatsuo-snappyframed/writer.go's crc32.MakeTable(crc32.Castagnoli). Go's
// hash/crc32 dispatches to hardware CRC32 instructions for this table on
// amd64 and arm64, which is the same SSE4.2 fast path crc32.rs hand-rolls
// in Rust — no pack repo implements or imports a third-party CRC32C, so
// the standard library is the idiomatic choice here, not a shortcut.
var checksumTable = crc32.MakeTable(crc32.Castagnoli)

// CheckSummer computes the masked CRC32C checksums the frame format
// stores alongside each chunk.
type CheckSummer struct{}

// Checksum returns the masked CRC32C of b, grounded on
// original_source/src/crc32.rs's crc32c_masked.
func (CheckSummer) Checksum(b []byte) uint32 {
	return maskChecksum(crc32.Checksum(b, checksumTable))
}

// maskChecksum applies the frame format's checksum mask, grounded on
// original_source/src/crc32.rs: mask(c) = ((c>>15)|(c<<17)) + 0xa282ead8.
func maskChecksum(c uint32) uint32 {
	return ((c >> 15) | (c << 17)) + 0xa282ead8
}

// unmaskChecksum inverts maskChecksum, grounded on the same formula as
// implemented by bmatsuo-snappyframed/reader.go's unmaskChecksum.
func unmaskChecksum(c uint32) uint32 {
	x := c - 0xa282ead8
	return (x >> 17) | (x << 15)
}
