package snap

import "io"

// EncodeReader is an io.Reader that serves the Snappy frame-format
// encoding of bytes pulled from an underlying io.Reader. It has no
// surviving source in original_source/ (the retrieval pack's read.rs only
// contained the decompress side); it is designed as the pull-model mirror
// of writer.go, staging one maxBlockSize input block at a time into an
// output buffer sized the same way bmatsuo-snappyframed/reader.go stages
// its own decoded output in a byte buffer.
type EncodeReader struct {
	r   io.Reader
	enc Encoder
	sum CheckSummer
	err error

	ibuf []byte // raw input staging buffer, reused across chunks
	obuf []byte // encoded chunk buffer

	chunk []byte // unread suffix of obuf for the current chunk
	eof   bool

	wroteStreamHeader bool
}

// NewEncodeReader returns an EncodeReader that serves the frame-format
// encoding of bytes read from r.
func NewEncodeReader(r io.Reader) *EncodeReader {
	return &EncodeReader{
		r:    r,
		ibuf: make([]byte, maxBlockSize),
		obuf: make([]byte, obufLen),
	}
}

// Reset discards the EncodeReader's state and switches it to read from
// r, letting an EncodeReader be reused instead of reallocated.
func (z *EncodeReader) Reset(r io.Reader) {
	z.r = r
	z.err = nil
	z.chunk = nil
	z.eof = false
	z.wroteStreamHeader = false
}

func (z *EncodeReader) fillChunk() error {
	n := 0
	for n < len(z.ibuf) {
		m, err := z.r.Read(z.ibuf[n:])
		n += m
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if m == 0 {
			break
		}
	}
	if n == 0 {
		z.eof = true
		return io.EOF
	}

	writeStreamHeader := !z.wroteStreamHeader
	z.wroteStreamHeader = true

	chunk, err := compressFrame(&z.enc, z.sum, z.obuf, z.ibuf[:n], writeStreamHeader)
	if err != nil {
		return err
	}
	z.chunk = chunk
	return nil
}

// Read satisfies the io.Reader interface.
func (z *EncodeReader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	for len(z.chunk) == 0 {
		if z.eof {
			return 0, io.EOF
		}
		if err := z.fillChunk(); err != nil {
			if err != io.EOF {
				z.err = err
				return 0, err
			}
			return 0, io.EOF
		}
	}
	n := copy(p, z.chunk)
	z.chunk = z.chunk[n:]
	return n, nil
}
