// Copyright 2011 The Snappy-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snap

import "io"

var errClosed = newError(KindBufferTooSmall)

// Writer is an io.Writer that writes the Snappy frame format to an
// underlying io.Writer, compressing as it goes. Grounded on
// skyportsystems-snappy/encode.go's Writer, filled in with the chunk
// constants frame.go supplies and original_source/src/write.rs's
// FrameEncoder for the Reset surface.
type Writer struct {
	w   io.Writer
	enc Encoder
	sum CheckSummer
	err error

	// ibuf buffers incoming uncompressed bytes.
	ibuf []byte
	// obuf buffers outgoing chunk bytes (header + compressed or raw body).
	obuf []byte

	wroteStreamHeader bool
}

// NewWriter returns a Writer that buffers writes and frames them as
// Snappy chunks written to w. Callers must call Close (or at least
// Flush) to guarantee all buffered data reaches w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:    w,
		ibuf: make([]byte, 0, maxBlockSize),
		obuf: make([]byte, obufLen),
	}
}

// Reset discards the Writer's state and switches it to write to w,
// letting a Writer be reused instead of reallocated.
func (w *Writer) Reset(writer io.Writer) {
	w.w = writer
	w.err = nil
	w.ibuf = w.ibuf[:0]
	w.wroteStreamHeader = false
}

// Write satisfies the io.Writer interface.
func (w *Writer) Write(p []byte) (nRet int, errRet error) {
	for len(p) > (cap(w.ibuf)-len(w.ibuf)) && w.err == nil {
		var n int
		if len(w.ibuf) == 0 {
			n, _ = w.write(p)
		} else {
			n = copy(w.ibuf[len(w.ibuf):cap(w.ibuf)], p)
			w.ibuf = w.ibuf[:len(w.ibuf)+n]
			w.Flush()
		}
		nRet += n
		p = p[n:]
	}
	if w.err != nil {
		return nRet, w.err
	}
	n := copy(w.ibuf[len(w.ibuf):cap(w.ibuf)], p)
	w.ibuf = w.ibuf[:len(w.ibuf)+n]
	nRet += n
	return nRet, nil
}

func (w *Writer) write(p []byte) (nRet int, errRet error) {
	if w.err != nil {
		return 0, w.err
	}
	for len(p) > 0 {
		var uncompressed []byte
		if len(p) > maxBlockSize {
			uncompressed, p = p[:maxBlockSize], p[maxBlockSize:]
		} else {
			uncompressed, p = p, nil
		}

		writeStreamHeader := !w.wroteStreamHeader
		w.wroteStreamHeader = true

		chunk, err := compressFrame(&w.enc, w.sum, w.obuf, uncompressed, writeStreamHeader)
		if err != nil {
			w.err = err
			return nRet, err
		}
		if _, err := w.w.Write(chunk); err != nil {
			w.err = err
			return nRet, err
		}
		nRet += len(uncompressed)
	}
	return nRet, nil
}

// Flush flushes the Writer's buffered data to its underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.ibuf) == 0 {
		return nil
	}
	w.write(w.ibuf)
	w.ibuf = w.ibuf[:0]
	return w.err
}

// Close flushes the Writer and marks it closed; further writes fail.
func (w *Writer) Close() error {
	w.Flush()
	ret := w.err
	if w.err == nil {
		w.err = errClosed
	}
	return ret
}

// UnderlyingWriter returns the io.Writer this Writer frames data onto,
// the Go analogue of original_source/src/write.rs's get_ref/get_mut
// (Go has no consuming-self into_inner, so this is a plain accessor).
func (w *Writer) UnderlyingWriter() io.Writer { return w.w }
