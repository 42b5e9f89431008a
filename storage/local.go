package storage

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Local struct {
	workDir string
}

func NewLocal(workDir string) (*Local, error) {
	if err := os.MkdirAll(workDir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "create %s", workDir)
	}
	return &Local{workDir: workDir}, nil
}

// An absolute fileName is used as is, otherwise it lives under the work dir
func (l *Local) path(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(l.workDir, fileName)
}

// Put replaces fileName as a whole, a half written artifact is never left behind
func (l *Local) Put(fileName string, content io.Reader, fileSize int64) (written int64, err error) {
	fpath := l.path(fileName)
	tmp, err := os.CreateTemp(filepath.Dir(fpath), "."+filepath.Base(fpath)+".*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	fb := bufio.NewWriter(tmp)
	if written, err = io.Copy(fb, content); err != nil {
		return written, err
	}
	if fileSize >= 0 && written != fileSize {
		return written, errors.Errorf("%s: wrote %d bytes, expected %d", fileName, written, fileSize)
	}
	if err = fb.Flush(); err != nil {
		return written, err
	}
	if err = tmp.Close(); err != nil {
		return written, err
	}
	return written, os.Rename(tmp.Name(), fpath)
}

func (l *Local) Delete(fileName string) error {
	err := os.Remove(l.path(fileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
