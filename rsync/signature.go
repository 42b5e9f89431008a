package rsync

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// InputFileType tells NewSignature how to read its source, it is never guessed from content.
type InputFileType int

const (
	// A text file whose lines are fingerprinted
	Baseline InputFileType = iota
	// A blob previously written by Signature.Serialize
	SignatureFile
)

func (t InputFileType) String() string {
	switch t {
	case Baseline:
		return "baseline"
	case SignatureFile:
		return "signature"
	}
	return "unknown"
}

// Signature is the ordered fingerprint catalog of a file's lines.
// It keeps no content, the order of hashes is the only record of the original line order.
type Signature struct {
	hashes   []uint32
	metadata Metadata
}

func NewSignature(path string, fileType InputFileType) (*Signature, error) {
	if fileType != Baseline && fileType != SignatureFile {
		return nil, errors.Errorf("unknown input file type %d", fileType)
	}

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sig *Signature
	if fileType == SignatureFile {
		sig, err = ParseSignature(f)
	} else {
		sig, err = BuildSignature(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", fileType, path)
	}
	return sig, nil
}

// BuildSignature fingerprints every line of a baseline text.
func BuildSignature(r io.Reader) (*Signature, error) {
	hashes := make([]uint32, 0, 1024)
	err := scanLines(r, func(line []byte, _ int) error {
		hashes = append(hashes, Checksum(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Signature{
		hashes: hashes,
		metadata: Metadata{
			ChunkCount:  uint64(len(hashes)),
			ChunkLength: CHUNK_LEN,
		},
	}, nil
}

// ParseSignature reads a serialized signature until the end of stream.
// The hash count is not checked against the metadata here, see Truncated and Verify.
func ParseSignature(r io.Reader) (*Signature, error) {
	in := newSigReader(r)

	count, err := in.ReadLong()
	if err != nil {
		return nil, metadataError(err)
	}
	length, err := in.ReadInt()
	if err != nil {
		return nil, metadataError(err)
	}

	prealloc := count
	if prealloc > MAX_PREALLOC {
		prealloc = MAX_PREALLOC
	}
	sig := &Signature{
		hashes: make([]uint32, 0, prealloc),
		metadata: Metadata{
			ChunkCount:  count,
			ChunkLength: length,
		},
	}

	for {
		hash, err := in.ReadInt()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// A trailing partial hash is dropped
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read hash")
		}
		sig.hashes = append(sig.hashes, hash)
	}
	return sig, nil
}

func metadataError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, "metadata record")
	}
	return errors.Wrap(err, "read metadata")
}

// Hashes returns a copy of the fingerprints in line order.
func (s *Signature) Hashes() []uint32 {
	hashes := make([]uint32, len(s.hashes))
	copy(hashes, s.hashes)
	return hashes
}

func (s *Signature) Metadata() Metadata {
	return s.metadata
}

// Truncated reports whether fewer hashes were read than the metadata declares.
func (s *Signature) Truncated() bool {
	return uint64(len(s.hashes)) < s.metadata.ChunkCount
}

// Verify turns a hash count disagreeing with the metadata into an error.
func (s *Signature) Verify() error {
	n := uint64(len(s.hashes))
	if n < s.metadata.ChunkCount {
		return errors.Wrapf(ErrTruncated, "%d of %d hashes", n, s.metadata.ChunkCount)
	}
	if n > s.metadata.ChunkCount {
		return errors.Errorf("signature declares %d chunks but holds %d hashes", s.metadata.ChunkCount, n)
	}
	return nil
}

// Serialize writes the metadata record, then every hash. There is no terminator.
func (s *Signature) Serialize(w io.Writer) error {
	out := newSigWriter(w)
	if err := out.WriteLong(s.metadata.ChunkCount); err != nil {
		return err
	}
	if err := out.WriteInt(s.metadata.ChunkLength); err != nil {
		return err
	}
	for _, hash := range s.hashes {
		if err := out.WriteInt(hash); err != nil {
			return err
		}
	}
	return out.Flush()
}

func (s *Signature) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, METADATA_LEN+HASH_LEN*len(s.hashes)))
	if err := s.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
