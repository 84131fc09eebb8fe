// Package s3 implements blobstore.Store for AWS S3.
//
// Uploads go through the S3 transfer manager so large snapshots are written
// in parallel parts. Missing objects map to blobstore.ErrNotFound.
package s3
