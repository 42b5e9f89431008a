package rsync

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

/* Signature encoding: host-native byte order
   [chunkCount: 8][chunkLength: 4][hash: 4]*
   The layout is not portable between hosts of different endianness.
*/
var byteOrder = binary.NativeEndian

type sigReader struct {
	reader    io.Reader
	bytespool []byte // Anti memory-wasted, default size: 8 bytes
}

func newSigReader(r io.Reader) *sigReader {
	return &sigReader{
		reader:    bufio.NewReader(r),
		bytespool: make([]byte, 8),
	}
}

// io.EOF only when nothing was read, io.ErrUnexpectedEOF for a partial value
func (r *sigReader) ReadInt() (uint32, error) {
	val := r.bytespool[:4]
	if _, err := io.ReadFull(r.reader, val); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(val), nil
}

func (r *sigReader) ReadLong() (uint64, error) {
	val := r.bytespool[:8]
	if _, err := io.ReadFull(r.reader, val); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(val), nil
}

type sigWriter struct {
	writer    *bufio.Writer
	bytespool []byte
}

func newSigWriter(w io.Writer) *sigWriter {
	return &sigWriter{
		writer:    bufio.NewWriter(w),
		bytespool: make([]byte, 8),
	}
}

func (w *sigWriter) WriteInt(data uint32) error {
	val := w.bytespool[:4]
	byteOrder.PutUint32(val, data)
	_, err := w.writer.Write(val)
	return err
}

func (w *sigWriter) WriteLong(data uint64) error {
	val := w.bytespool[:8]
	byteOrder.PutUint64(val, data)
	_, err := w.writer.Write(val)
	return err
}

func (w *sigWriter) Flush() error {
	return w.writer.Flush()
}

/* Delta encoding: two lines per op
   hash in lowercase hex without leading zeros
   payload, an empty line for a removal
*/
func writeDelta(w io.Writer, ops []DeltaOp) error {
	bw := bufio.NewWriter(w)
	for _, op := range ops {
		if _, err := fmt.Fprintf(bw, "%x\n", op.Hash); err != nil {
			return err
		}
		if _, err := bw.Write(op.Data); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
