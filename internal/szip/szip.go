// Package szip implements the per-file compress/decompress operations
// and filename discipline of the szip command line tool, grounded on
// original_source/szip/src/main.rs's Args::run/compress_file/
// decompress_file.
package szip

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gosnappy/snap"
	"github.com/gosnappy/snap/internal/fileutil"
)

// suffix is the extension szip appends to compressed files, matching
// original_source/szip/src/main.rs's ".sz" convention.
const suffix = ".sz"

// Options mirrors the flags described in SPEC_FULL.md §6.
type Options struct {
	Decompress bool
	Force      bool
	Keep       bool
	Raw        bool
	Stdout     bool
}

// Run processes each named file (or, with no files, stdin/stdout) per
// Options, reporting a per-file error for each failure without aborting
// the rest of the run — the same behavior original_source/szip/src/
// main.rs's Args::run has via its errln!-and-continue loop. It returns
// the first error encountered, after all files have been attempted.
func Run(files []string, opts Options, logf func(format string, args ...interface{})) error {
	if len(files) == 0 {
		return runStream(os.Stdin, os.Stdout, opts)
	}

	var firstErr error
	for _, f := range files {
		var err error
		if opts.Decompress {
			err = decompressFile(f, opts)
		} else {
			err = compressFile(f, opts)
		}
		if err != nil {
			logf("%s: %v", f, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func runStream(r io.Reader, w io.Writer, opts Options) error {
	if opts.Decompress {
		return decompressStream(r, w, opts.Raw)
	}
	return compressStream(r, w, opts.Raw)
}

func compressStream(r io.Reader, w io.Writer, raw bool) error {
	if raw {
		src, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		var enc snap.Encoder
		out, err := enc.CompressVec(src)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return errors.Wrap(err, "write output")
	}
	fw := snap.NewWriter(w)
	if _, err := io.Copy(fw, r); err != nil {
		return errors.Wrap(err, "compress stream")
	}
	return errors.Wrap(fw.Close(), "close compressed stream")
}

func decompressStream(r io.Reader, w io.Writer, raw bool) error {
	if raw {
		src, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		var dec snap.Decoder
		out, err := dec.DecompressVec(src)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return errors.Wrap(err, "write output")
	}
	fr := snap.NewReader(r)
	_, err := io.Copy(w, fr)
	return errors.Wrap(err, "decompress stream")
}

// targetForCompress returns the output path for compressing path.
func targetForCompress(path string) string {
	return path + suffix
}

// targetForDecompress returns the output path for decompressing path, or
// an error if path doesn't carry the suffix szip requires of compressed
// files.
func targetForDecompress(path string) (string, error) {
	if !strings.HasSuffix(path, suffix) || len(path) <= len(suffix) {
		return "", fmt.Errorf("szip: %q is not a valid %s file name", path, suffix)
	}
	return strings.TrimSuffix(path, suffix), nil
}

func compressFile(path string, opts Options) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer in.Close()

	if opts.Stdout {
		return compressStream(in, os.Stdout, opts.Raw)
	}

	outPath := targetForCompress(path)
	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("szip: %q already exists (use --force to overwrite)", outPath)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	w := bufio.NewWriter(out)
	if err := compressStream(in, w, opts.Raw); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return errors.Wrap(err, "flush output")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}

	if times, err := fileutil.Get(path); err == nil {
		_ = fileutil.Set(outPath, times)
	}
	if !opts.Keep {
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, "remove source")
		}
	}
	return nil
}

func decompressFile(path string, opts Options) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer in.Close()

	if opts.Stdout {
		return decompressStream(in, os.Stdout, opts.Raw)
	}

	outPath, err := targetForDecompress(path)
	if err != nil {
		return err
	}
	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("szip: %q already exists (use --force to overwrite)", outPath)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	w := bufio.NewWriter(out)
	if err := decompressStream(in, w, opts.Raw); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return errors.Wrap(err, "flush output")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}

	if times, err := fileutil.Get(path); err == nil {
		_ = fileutil.Set(outPath, times)
	}
	if !opts.Keep {
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, "remove source")
		}
	}
	return nil
}
