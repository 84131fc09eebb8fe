// Package snapshot serializes string vectors into a self-describing binary
// format.
//
// A snapshot is a fixed 32-byte header followed by a payload of
// length-prefixed element records. The header records the compression codec
// (none, zstd or lz4), the element count, the payload size and a CRC-32C
// checksum of the payload as written, so a reader can validate a file before
// decoding it.
//
// Snapshots preserve embedded NUL bytes: records carry the full payload of
// each element, not the NUL-truncated view.
//
// The Manager ties snapshots to a blobstore.Store so vectors can be saved to
// and loaded from local disk, memory, S3 or MinIO. Snapshot IO can be
// throttled through a resource.Controller.
package snapshot
