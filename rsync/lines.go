package rsync

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
)

// scanLines calls fn for every line of r, '\n' stripped, a final unterminated line included.
// n is the number of bytes the line occupies in r, terminator included.
func scanLines(r io.Reader, fn func(line []byte, n int) error) error {
	br := bufio.NewReaderSize(r, SCAN_BUFFER)
	for {
		line, err := br.ReadBytes('\n')
		if n := len(line); n > 0 {
			if line[n-1] == '\n' {
				line = line[:n-1]
			}
			if ferr := fn(line, n); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "scan lines")
		}
	}
}

type lineSpan struct {
	offset int64
	length int
}

// lineIndex maps a line of the data file to its byte span.
// Every Calculate builds its own, lines are read back by position in any order.
type lineIndex struct {
	src     io.ReaderAt
	records []LineRecord
	spans   []lineSpan
}

func buildLineIndex(src io.ReaderAt) (*lineIndex, error) {
	idx := &lineIndex{
		src:     src,
		records: make([]LineRecord, 0, 1024),
		spans:   make([]lineSpan, 0, 1024),
	}
	var offset int64
	err := scanLines(io.NewSectionReader(src, 0, math.MaxInt64), func(line []byte, n int) error {
		idx.records = append(idx.records, LineRecord{
			Hash:  Checksum(line),
			Index: uint32(len(idx.records)),
		})
		idx.spans = append(idx.spans, lineSpan{offset: offset, length: len(line)})
		offset += int64(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *lineIndex) Len() int {
	return len(idx.records)
}

func (idx *lineIndex) Record(i int) LineRecord {
	return idx.records[i]
}

// find returns the first line at or after from whose hash is h, -1 if none
func (idx *lineIndex) find(h uint32, from int) int {
	for j := from; j < len(idx.records); j++ {
		if idx.records[j].Hash == h {
			return j
		}
	}
	return -1
}

// Line reads the text of line i again. An empty line gives a non-nil empty slice.
func (idx *lineIndex) Line(i int) ([]byte, error) {
	span := idx.spans[i]
	line := make([]byte, span.length)
	if _, err := idx.src.ReadAt(line, span.offset); err != nil {
		return nil, errors.Wrapf(err, "read line %d", i)
	}
	return line, nil
}
