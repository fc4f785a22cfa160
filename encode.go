// Copyright 2011 The Snappy-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package snap

// emitLiteral writes a literal chunk and returns the number of bytes
// written. Unchanged from skyportsystems-snappy/encode.go.
//
// It assumes that:
//
//	dst is long enough to hold the encoded bytes
//	1 <= len(lit) && len(lit) <= 65536
func emitLiteral(dst, lit []byte) int {
	i, n := 0, uint(len(lit)-1)
	switch {
	case n < 60:
		dst[0] = uint8(n)<<2 | tagLiteral
		i = 1
	case n < 1<<8:
		dst[0] = 60<<2 | tagLiteral
		dst[1] = uint8(n)
		i = 2
	default:
		dst[0] = 61<<2 | tagLiteral
		dst[1] = uint8(n)
		dst[2] = uint8(n >> 8)
		i = 3
	}
	return i + copy(dst[i:], lit)
}

// emitCopy writes a copy chunk and returns the number of bytes written.
// Unchanged from skyportsystems-snappy/encode.go; see that file's comment
// for why the loop thresholds are 68/64/60 rather than a flat 64.
//
// It assumes that:
//
//	dst is long enough to hold the encoded bytes
//	1 <= offset && offset <= 65535
//	4 <= length && length <= 65535
func emitCopy(dst []byte, offset, length int) int {
	i := 0
	for length >= 68 {
		dst[i+0] = 63<<2 | tagCopy2
		dst[i+1] = uint8(offset)
		dst[i+2] = uint8(offset >> 8)
		i += 3
		length -= 64
	}
	if length > 64 {
		dst[i+0] = 59<<2 | tagCopy2
		dst[i+1] = uint8(offset)
		dst[i+2] = uint8(offset >> 8)
		i += 3
		length -= 60
	}
	if length >= 12 || offset >= 2048 {
		dst[i+0] = uint8(length-1)<<2 | tagCopy2
		dst[i+1] = uint8(offset)
		dst[i+2] = uint8(offset >> 8)
		return i + 3
	}
	dst[i+0] = uint8(offset>>8)<<5 | uint8(length-4)<<2 | tagCopy1
	dst[i+1] = uint8(offset)
	return i + 2
}

// inputMargin is the minimum number of extra input bytes kept past
// compressBlock's main loop, grounded on
// original_source/src/compress.rs's INPUT_MARGIN.
const inputMargin = 15

// minNonLiteralBlockSize is the minimum input size compressBlock will
// bother looking for a copy in, grounded on
// original_source/src/compress.rs's MIN_NON_LITERAL_BLOCK_SIZE.
const minNonLiteralBlockSize = 1 + 1 + inputMargin

const (
	smallTableSize = 1 << 10
	maxTableSize   = 1 << 14
)

func hash(u, shift uint32) uint32 {
	return (u * 0x1e35a7bd) >> shift
}

// Encoder holds the reusable hash table state for repeated block
// compression, grounded on original_source/src/compress.rs's explicit
// small_table/big_table split (spec's two-physical-tables design): a
// small table lives inline so short inputs never touch the heap, and a
// 1<<14-entry big table is allocated lazily the first time a block needs
// it. The teacher's encodeBlock instead always stack-allocates a full
// 1<<14 table; that shortcut is dropped here to satisfy the two-table
// requirement.
type Encoder struct {
	small [smallTableSize]uint16
	big   []uint16
}

// hashTable returns a zeroed table of exactly size entries, backed by the
// inline small table when possible and by the lazily-allocated big table
// otherwise.
func (e *Encoder) hashTable(size int) []uint16 {
	var t []uint16
	if size <= smallTableSize {
		t = e.small[:size]
	} else {
		if e.big == nil {
			e.big = make([]uint16, maxTableSize)
		}
		t = e.big[:size]
	}
	clear(t)
	return t
}

// MaxEncodedLen returns the maximum length of a snappy block, given its
// uncompressed length. It returns a negative value if srcLen is too
// large to encode. Unchanged from skyportsystems-snappy/encode.go.
func MaxEncodedLen(srcLen int) int {
	n := uint64(srcLen)
	if n > 0xffffffff {
		return -1
	}
	n = 32 + n + n/6
	if n > 0xffffffff {
		return -1
	}
	return int(n)
}

// CompressVec returns the encoded form of src as a newly allocated slice.
func (e *Encoder) CompressVec(src []byte) ([]byte, error) {
	n := MaxEncodedLen(len(src))
	if n < 0 {
		return nil, &Error{Kind: KindTooBig, Given: uint64(len(src)), Max: MaxInputSize}
	}
	return e.Compress(make([]byte, n), src)
}

// Compress writes the encoded form of src into dst, returning the used
// prefix of dst. dst must be at least MaxEncodedLen(len(src)) bytes long.
func (e *Encoder) Compress(dst, src []byte) ([]byte, error) {
	n := MaxEncodedLen(len(src))
	if n < 0 {
		return nil, &Error{Kind: KindTooBig, Given: uint64(len(src)), Max: MaxInputSize}
	}
	if len(dst) < n {
		return nil, &Error{Kind: KindBufferTooSmall, Given: uint64(len(dst)), Min: uint64(n)}
	}

	d := putHeader(dst, len(src))
	for len(src) > 0 {
		p := src
		src = nil
		if len(p) > maxBlockSize {
			p, src = p[:maxBlockSize], p[maxBlockSize:]
		}
		if len(p) < minNonLiteralBlockSize {
			d += emitLiteral(dst[d:], p)
		} else {
			d += e.compressBlock(dst[d:], p)
		}
	}
	return dst[:d], nil
}

// compressBlock encodes a non-empty src to a guaranteed-large-enough dst,
// assuming the varint-encoded length of the decompressed bytes has
// already been written. This is the teacher's encodeBlock, adapted to
// pull its hash table from the Encoder's small/big split instead of
// always stack-allocating a full 1<<14 table.
func (e *Encoder) compressBlock(dst, src []byte) (d int) {
	shift, tableSize := uint32(32-8), 1<<8
	for tableSize < maxTableSize && tableSize < len(src) {
		shift--
		tableSize *= 2
	}
	table := e.hashTable(tableSize)
	tableMask := uint32(tableSize - 1)

	sLimit := len(src) - inputMargin
	nextEmit := 0

	s := 1
	nextHash := hash(load32(src, s), shift)

	for {
		skip := 32

		nextS := s
		candidate := 0
		for {
			s = nextS
			bytesBetweenHashLookups := skip >> 5
			nextS = s + bytesBetweenHashLookups
			skip += bytesBetweenHashLookups
			if nextS > sLimit {
				goto emitRemainder
			}
			candidate = int(table[nextHash&tableMask])
			table[nextHash&tableMask] = uint16(s)
			nextHash = hash(load32(src, nextS), shift)
			if load32(src, s) == load32(src, candidate) {
				break
			}
		}

		d += emitLiteral(dst[d:], src[nextEmit:s])

		for {
			base := s
			s += 4
			for i := candidate + 4; s < len(src) && src[i] == src[s]; i, s = i+1, s+1 {
			}
			d += emitCopy(dst[d:], base-candidate, s-base)
			nextEmit = s
			if s >= sLimit {
				goto emitRemainder
			}

			x := load64(src, s-1)
			prevHash := hash(uint32(x>>0), shift)
			table[prevHash&tableMask] = uint16(s - 1)
			currHash := hash(uint32(x>>8), shift)
			candidate = int(table[currHash&tableMask])
			table[currHash&tableMask] = uint16(s)
			if uint32(x>>8) != load32(src, candidate) {
				nextHash = hash(uint32(x>>16), shift)
				s++
				break
			}
		}
	}

emitRemainder:
	if nextEmit < len(src) {
		d += emitLiteral(dst[d:], src[nextEmit:])
	}
	return d
}
