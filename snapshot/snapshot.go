package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/grago/mem"
	"github.com/hupe1980/grago/resource"
	"github.com/hupe1980/grago/strvec"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Options configure Write and Read.
type Options struct {
	// Compression selects the payload codec for Write. Ignored on Read:
	// the codec is taken from the file header.
	Compression Compression

	// Controller throttles snapshot IO when it carries an IO limit.
	Controller *resource.Controller
}

// Option mutates Options.
type Option func(*Options)

// WithCompression selects the payload codec.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// WithController throttles snapshot IO through the given controller.
func WithController(ctrl *resource.Controller) Option {
	return func(o *Options) { o.Controller = ctrl }
}

// Write serializes sv to w.
func Write(ctx context.Context, w io.Writer, sv *strvec.StrVec, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	payload := encodeElements(sv)
	compressed, err := compress(o.Compression, payload)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: o.Compression,
		Count:       uint64(sv.Len()),
		PayloadSize: uint64(len(compressed)),
		Checksum:    crc32.Checksum(compressed, castagnoli),
	}

	if err := o.Controller.AcquireIO(ctx, binary.Size(header)+len(compressed)); err != nil {
		return fmt.Errorf("snapshot: io limit: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("snapshot: write payload: %w", err)
	}
	return nil
}

// Read deserializes a vector from r. The returned vector is allocated through
// alloc; a nil allocator selects mem.Default().
func Read(ctx context.Context, r io.Reader, alloc mem.Allocator, opts ...Option) (*strvec.StrVec, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("snapshot: %w: %#x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("snapshot: %w: %#x", ErrInvalidVersion, header.Version)
	}

	if err := o.Controller.AcquireIO(ctx, int(header.PayloadSize)); err != nil {
		return nil, fmt.Errorf("snapshot: io limit: %w", err)
	}
	compressed := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("snapshot: %w: %v", ErrTruncated, err)
	}
	if sum := crc32.Checksum(compressed, castagnoli); sum != header.Checksum {
		return nil, fmt.Errorf("snapshot: %w: got %#x, want %#x", ErrChecksumMismatch, sum, header.Checksum)
	}

	payload, err := decompress(header.Compression, compressed)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress: %w", err)
	}
	return decodeElements(payload, int(header.Count), alloc)
}

// encodeElements renders the payload: one uvarint length prefix plus raw
// bytes per element, full payloads so embedded NULs survive.
func encodeElements(sv *strvec.StrVec) []byte {
	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte
	for i := 0; i < sv.Len(); i++ {
		b := sv.Bytes(i)
		n := binary.PutUvarint(scratch[:], uint64(len(b)))
		buf.Write(scratch[:n])
		buf.Write(b)
	}
	return buf.Bytes()
}

func decodeElements(payload []byte, count int, alloc mem.Allocator) (*strvec.StrVec, error) {
	sv, err := strvec.New(alloc, count)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	rest := payload
	for i := 0; i < count; i++ {
		length, n := binary.Uvarint(rest)
		if n <= 0 || uint64(len(rest)-n) < length {
			sv.Destroy()
			return nil, fmt.Errorf("snapshot: %w: element %d", ErrTruncated, i)
		}
		rest = rest[n:]
		if err := sv.SetBytes(i, rest[:length]); err != nil {
			sv.Destroy()
			return nil, fmt.Errorf("snapshot: decode: %w", err)
		}
		rest = rest[length:]
	}
	return sv, nil
}

func compress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

func decompress(c Compression, compressed []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return compressed, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(compressed, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}
