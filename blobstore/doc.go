// Package blobstore moves snapshot blobs between the library and storage.
//
// Snapshots are small, immutable and read whole, so the Store interface works
// on complete byte slices instead of streaming handles.
//
// # Storage Backends
//
//   - Local: files under a root directory, written atomically
//   - Memory: in-process map, for tests
//   - s3.Store: AWS S3 (sub-package s3)
//   - minio.Store: MinIO and other S3-compatible endpoints (sub-package minio)
//
// Implement the Store interface to support custom storage backends.
package blobstore
