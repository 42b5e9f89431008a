package storage

import (
	"io"
)

/*
A /dev/null-like storage backend for testing
*/

type NULL struct {
}

func (nu *NULL) Write(p []byte) (n int, err error) {
	// Do nothing
	return len(p), nil
}

func (nu *NULL) Put(fileName string, content io.Reader, fileSize int64) (written int64, err error) {
	return io.Copy(nu, content)
}

func (nu *NULL) Delete(fileName string) error {
	return nil
}
