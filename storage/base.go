package storage

import (
	"io"
)

// FS receives the artifacts: serialized signatures and deltas
type FS interface {
	Put(fileName string, content io.Reader, fileSize int64) (written int64, err error)
	Delete(fileName string) error
}
