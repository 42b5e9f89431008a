package rsync

import "hash/adler32"

// Metadata is the fixed-size record leading a serialized signature.
type Metadata struct {
	ChunkCount  uint64 // how many chunks
	ChunkLength uint32 // chunk length in lines, always CHUNK_LEN
}

// LineRecord describes one line of the data file being scanned.
// The line's text is not kept, Index is enough to read it again.
type LineRecord struct {
	Hash  uint32
	Index uint32
}

// Checksum returns the Adler-32 fingerprint of a line (without its terminator).
// It is an equality hint only, two different lines may share a checksum.
func Checksum(line []byte) uint32 {
	return adler32.Checksum(line)
}
