package snapshot

import "errors"

const (
	// MagicNumber identifies grago snapshot files (ASCII: "GSV0")
	MagicNumber = 0x47535630
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000
)

// Compression selects the payload codec recorded in the header.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
	CompressionLZ4  Compression = 2
)

// String returns the stable codec name recorded in diagnostics.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("unknown compression codec")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrTruncated          = errors.New("truncated snapshot")
)

// FileHeader is the 32-byte header at the start of every snapshot.
type FileHeader struct {
	Magic       uint32
	Version     uint32
	Compression Compression
	Padding     [3]byte
	Count       uint64 // number of elements
	PayloadSize uint64 // payload length as written (after compression)
	Checksum    uint32 // CRC-32C of the payload as written
}
