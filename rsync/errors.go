package rsync

import (
	"os"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("file not found")
	// A signature holds fewer hashes than its metadata declares, or not even a metadata record
	ErrTruncated = errors.New("signature truncated")
)

// NotFoundError brings the path of an input file that could not be opened.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return "file " + e.Path + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return f, nil
}
