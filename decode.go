package snap

// Decoder is a stateless decompressor. The zero value is ready to use;
// its only field mirrors original_source/src/decompress.rs's Decoder
// struct, which itself carries nothing but a placeholder (`_dummy: ()`)
// so the type can still grow non-breakingly later.
type Decoder struct {
	_ struct{}
}

// DecodedLen returns the length of the decompressed form of src without
// decompressing it, reading only the varint header. Per the Open
// Question resolution in DESIGN.md, an empty src decodes to length 0
// rather than an Empty error — unlike Decompress/DecompressVec, which do
// treat an empty src as corrupt input.
func DecodedLen(src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	n, _, err := readHeader(src)
	return n, err
}

// DecompressVec returns the decoded form of src as a newly allocated
// slice.
func (dec *Decoder) DecompressVec(src []byte) ([]byte, error) {
	n, err := DecodedLen(src)
	if err != nil {
		return nil, err
	}
	return dec.Decompress(make([]byte, n), src)
}

// Decompress writes the decoded form of src into dst, returning the used
// prefix of dst.
func (dec *Decoder) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, newError(KindEmpty)
	}
	decodedLen, headerLen, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	if len(dst) < decodedLen {
		return nil, &Error{Kind: KindBufferTooSmall, Given: uint64(len(dst)), Min: uint64(decodedLen)}
	}
	d, err := decodeBlock(dst[:decodedLen], src[headerLen:])
	if err != nil {
		return nil, err
	}
	if d != decodedLen {
		return nil, &Error{Kind: KindHeaderMismatch, ExpectedLen: uint64(decodedLen), GotLen: uint64(d)}
	}
	return dst[:d], nil
}

// decodeBlock walks the tag stream in src, writing decoded bytes into
// dst and returning the number of bytes written. It is grounded on
// original_source/src/decompress.rs's main decompress() loop and its
// TAG_LOOKUP_TABLE-driven copy dispatch (tag.go).
func decodeBlock(dst, src []byte) (int, error) {
	d, s := 0, 0
	for s < len(src) {
		tag := src[s]
		if tag&0x3 == tagLiteral {
			x := uint32(tag >> 2)
			switch {
			case x < 60:
				s++
			case x == 60:
				s += 2
				if s > len(src) {
					return 0, &Error{Kind: KindLiteral, SrcLen: uint64(len(src)), DstLen: uint64(len(dst))}
				}
				x = uint32(src[s-1])
			case x == 61:
				s += 3
				if s > len(src) {
					return 0, &Error{Kind: KindLiteral, SrcLen: uint64(len(src)), DstLen: uint64(len(dst))}
				}
				x = uint32(src[s-2]) | uint32(src[s-1])<<8
			case x == 62:
				s += 4
				if s > len(src) {
					return 0, &Error{Kind: KindLiteral, SrcLen: uint64(len(src)), DstLen: uint64(len(dst))}
				}
				x = uint32(src[s-3]) | uint32(src[s-2])<<8 | uint32(src[s-1])<<16
			default: // x == 63
				s += 5
				if s > len(src) {
					return 0, &Error{Kind: KindLiteral, SrcLen: uint64(len(src)), DstLen: uint64(len(dst))}
				}
				x = uint32(src[s-4]) | uint32(src[s-3])<<8 | uint32(src[s-2])<<16 | uint32(src[s-1])<<24
			}
			length := int(x) + 1
			if length <= 0 || length > len(src)-s || length > len(dst)-d {
				return 0, &Error{Kind: KindLiteral, Len: uint64(length), SrcLen: uint64(len(src) - s), DstLen: uint64(len(dst) - d)}
			}
			copy(dst[d:d+length], src[s:s+length])
			d += length
			s += length
			continue
		}

		entry := tagLookup[tag]
		numBytes := tagNumBytes(entry)
		length := tagLen(entry)

		var offset int
		switch numBytes {
		case 1:
			if s+2 > len(src) {
				return 0, &Error{Kind: KindCopyRead, Len: uint64(length), SrcLen: uint64(len(src) - s)}
			}
			offset = tagHighOffset(entry)<<8 | int(src[s+1])
			s += 2
		case 2:
			if s+3 > len(src) {
				return 0, &Error{Kind: KindCopyRead, Len: uint64(length), SrcLen: uint64(len(src) - s)}
			}
			offset = int(src[s+1]) | int(src[s+2])<<8
			s += 3
		default: // 4
			if s+5 > len(src) {
				return 0, &Error{Kind: KindCopyRead, Len: uint64(length), SrcLen: uint64(len(src) - s)}
			}
			offset = int(src[s+1]) | int(src[s+2])<<8 | int(src[s+3])<<16 | int(src[s+4])<<24
			s += 5
		}

		if offset <= 0 || offset > d {
			return 0, &Error{Kind: KindOffset, Offset: uint64(offset), DstPos: uint64(d)}
		}
		if length > len(dst)-d {
			return 0, &Error{Kind: KindCopyWrite, Len: uint64(length), DstLen: uint64(len(dst) - d)}
		}
		copyLZ(dst, d, offset, length)
		d += length
	}
	return d, nil
}

// copyLZ replicates the length bytes starting offset bytes behind d into
// dst[d:d+length]. When offset >= length the source and destination
// ranges cannot overlap and a single copy suffices; otherwise the copy
// must advance through the fixed offset-sized period repeatedly so the
// pattern it lays down is itself visible to later iterations, which is
// what lets a single byte (offset == 1) expand into a long run.
func copyLZ(dst []byte, d, offset, length int) {
	src := d - offset
	if offset >= length {
		copy(dst[d:d+length], dst[src:src+length])
		return
	}
	for length > 0 {
		n := offset
		if n > length {
			n = length
		}
		copy(dst[d:d+n], dst[src:src+n])
		d += n
		length -= n
	}
}
