package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ FS = (*Local)(nil)
	_ FS = (*Minio)(nil)
	_ FS = (*NULL)(nil)
)

func TestLocalPutAndReplace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	l, err := NewLocal(dir)
	require.NoError(t, err)

	n, err := l.Put("a.sig", strings.NewReader("first version"), 13)
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)

	_, err = l.Put("a.sig", strings.NewReader("second"), -1)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a.sig"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalPutSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	_, err = l.Put("a.sig", strings.NewReader("abc"), 10)
	assert.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalAbsolutePath(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "delta.txt")
	_, err = l.Put(abs, bytes.NewReader([]byte("x\n")), 2)
	require.NoError(t, err)
	_, err = os.Stat(abs)
	require.NoError(t, err)

	require.NoError(t, l.Delete(abs))
	_, err = os.Stat(abs)
	assert.True(t, os.IsNotExist(err))
	// Deleting again is fine
	assert.NoError(t, l.Delete(abs))
}

func TestNullDiscards(t *testing.T) {
	nu := &NULL{}
	n, err := nu.Put("x", strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, nu.Delete("x"))
}

func TestMinioObjectName(t *testing.T) {
	assert.Equal(t, "deltas/a.delta", objectName("deltas", "/tmp/out/a.delta"))
	assert.Equal(t, "a.sig", objectName("", "a.sig"))
}
