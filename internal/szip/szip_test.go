package szip

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressThenDecompressFileRoundtrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(src, []byte("roundtrip through the file system"), 0o644))

	require.NoError(t, compressFile(src, Options{Keep: true}))
	_, err := os.Stat(src + suffix)
	require.NoError(t, err)

	require.NoError(t, decompressFile(src+suffix, Options{Keep: true}))
	got, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, "roundtrip through the file system", string(got))
}

func TestCompressRemovesSourceWithoutKeep(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(src, []byte("gone after compressing"), 0o644))

	require.NoError(t, compressFile(src, Options{}))
	_, err := os.Stat(src)
	require.True(t, os.IsNotExist(err))
}

func TestCompressRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(src+suffix, []byte("preexisting"), 0o644))

	err := compressFile(src, Options{Keep: true})
	require.Error(t, err)
}

func TestTargetForDecompressRejectsBadNames(t *testing.T) {
	_, err := targetForDecompress("nosuffix")
	require.Error(t, err)

	_, err = targetForDecompress(".sz")
	require.Error(t, err)

	out, err := targetForDecompress("archive.tar.sz")
	require.NoError(t, err)
	require.Equal(t, "archive.tar", out)
}

func TestCompressStreamRawRoundtrips(t *testing.T) {
	var compressed, decompressed bytes.Buffer
	require.NoError(t, compressStream(bytes.NewReader([]byte("stream of bytes")), &compressed, true))
	require.NoError(t, decompressStream(bytes.NewReader(compressed.Bytes()), &decompressed, true))
	require.Equal(t, "stream of bytes", decompressed.String())
}
