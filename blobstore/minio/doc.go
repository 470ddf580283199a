// Package minio provides a blobstore.Store for MinIO and other
// S3-compatible object storage.
package minio
