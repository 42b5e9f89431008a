package rsync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	WIKIPEDIA_HASH        = uint32(0x11E60398)
	LOREM_IPSUM_HASH      = uint32(0xa05ca509)
	SOME_TEXT_HASH        = uint32(0x52D40776)
	YET_ANOTHER_TEXT_HASH = uint32(0x1F9F0E25)

	WIKIPEDIA_STR        = "Wikipedia"
	LOREM_IPSUM_STR      = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."
	SOME_TEXT_STR        = "Some text to be added"
	YET_ANOTHER_TEXT_STR = "Yet another text that needs to be added"
)

// writeLines writes every line followed by '\n'
func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

// baseline writes lines to a baseline file and its serialized signature, returning the signature path
func baseline(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	data := filepath.Join(dir, "base.txt")
	writeLines(t, data, lines...)

	sig, err := NewSignature(data, Baseline)
	require.NoError(t, err)

	sigPath := filepath.Join(dir, "base.txt.sig")
	f, err := os.Create(sigPath)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, sig.Serialize(f))
	return sigPath
}

// calculate computes the delta of old lines against updated lines
func calculate(t *testing.T, old []string, updated []string) *Calculator {
	t.Helper()
	dir := t.TempDir()
	sigPath := baseline(t, dir, old...)
	dataPath := filepath.Join(dir, "new.txt")
	writeLines(t, dataPath, updated...)

	c, err := NewCalculator(sigPath, dataPath)
	require.NoError(t, err)
	require.NoError(t, c.Calculate())
	return c
}

func insert(line string) DeltaOp {
	return DeltaOp{Hash: Checksum([]byte(line)), Data: []byte(line)}
}

func remove(line string) DeltaOp {
	return DeltaOp{Hash: Checksum([]byte(line))}
}
