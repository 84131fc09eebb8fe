// Package minio implements blobstore.Store for MinIO and other S3-compatible
// object stores. Missing objects map to blobstore.ErrNotFound.
package minio
