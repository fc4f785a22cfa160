// Copyright 2011 The Snappy-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snap implements the Snappy compression format: a raw block
// codec (LZ77 with a single-slot hash table) and the chunked streaming
// frame format built on top of it.
//
// The raw codec favors throughput over compression ratio and is meant
// for data that is recompressed often (RPC payloads, log shipping,
// on-disk blocks) rather than for data compressed once and kept
// forever.
package snap

// MaxInputSize is the largest decoded length a raw block header may
// declare; a header declaring more is rejected with a TooBig error
// rather than silently truncated. The encoder's limit is lower: Compress
// and CompressVec return TooBig for any input whose MaxEncodedLen bound
// would exceed MaxInputSize, that is, for inputs longer than
// 3,681,400,511 bytes.
const MaxInputSize = 0xffffffff

// maxBlockSize is the largest chunk of input that a single block
// inside the raw format, or a single frame-format chunk, ever covers.
const maxBlockSize = 1 << 16
