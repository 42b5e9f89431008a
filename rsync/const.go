package rsync

const (
	// Width of a serialized checksum
	HASH_LEN = 4
	// chunkCount(8 bytes) + chunkLength(4 bytes), no padding
	METADATA_LEN = 12
	// A chunk is exactly one line
	CHUNK_LEN = 1

	// Upper bound of the hash slice preallocated from a declared chunk count
	MAX_PREALLOC = 1 << 20
	// Read buffer of the line scanner
	SCAN_BUFFER = 64 * 1024
)
