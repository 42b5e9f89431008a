package fldb

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/crypto/md4"
	"google.golang.org/protobuf/encoding/protowire"
)

/* Entry is the cached signature of a baseline file, encoded as a protobuf message:
   1: size      varint
   2: mtime     varint (unix nanoseconds)
   3: digest    bytes  (md4 of signature)
   4: signature bytes  (serialized rsync.Signature)
*/
type Entry struct {
	Size      int64
	Mtime     int64
	Digest    []byte
	Signature []byte
}

const (
	fieldSize      protowire.Number = 1
	fieldMtime     protowire.Number = 2
	fieldDigest    protowire.Number = 3
	fieldSignature protowire.Number = 4
)

func NewEntry(size int64, mtime int64, signature []byte) *Entry {
	return &Entry{
		Size:      size,
		Mtime:     mtime,
		Digest:    digest(signature),
		Signature: signature,
	}
}

func digest(p []byte) []byte {
	h := md4.New()
	h.Write(p)
	return h.Sum(nil)
}

// Fresh reports whether the entry was taken from a file of this size and mtime.
func (e *Entry) Fresh(size int64, mtime int64) bool {
	return e.Size == size && e.Mtime == mtime
}

func (e *Entry) Valid() bool {
	return bytes.Equal(e.Digest, digest(e.Signature))
}

func (e *Entry) Marshal() []byte {
	b := make([]byte, 0, 32+len(e.Signature))
	b = protowire.AppendTag(b, fieldSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Size))
	b = protowire.AppendTag(b, fieldMtime, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Mtime))
	b = protowire.AppendTag(b, fieldDigest, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Digest)
	b = protowire.AppendTag(b, fieldSignature, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Signature)
	return b
}

// Unmarshal skips unknown fields
func Unmarshal(b []byte) (*Entry, error) {
	e := &Entry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "entry tag")
		}
		b = b[n:]

		switch {
		case num == fieldSize && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, errors.Wrap(protowire.ParseError(m), "entry size")
			}
			e.Size = int64(v)
			n = m
		case num == fieldMtime && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, errors.Wrap(protowire.ParseError(m), "entry mtime")
			}
			e.Mtime = int64(v)
			n = m
		case num == fieldDigest && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, errors.Wrap(protowire.ParseError(m), "entry digest")
			}
			e.Digest = append([]byte(nil), v...)
			n = m
		case num == fieldSignature && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, errors.Wrap(protowire.ParseError(m), "entry signature")
			}
			e.Signature = append([]byte(nil), v...)
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "entry field")
			}
		}
		b = b[n:]
	}
	return e, nil
}
