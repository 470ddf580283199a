// Package blobstore abstracts read access to sample collections.
//
// A Store enumerates and opens the serialized sample blobs that make up one
// label partition of a corpus. Implementations exist for the local file
// system, in-memory maps (testing), S3 (see subpackage s3) and
// MinIO/S3-compatible object storage (see subpackage minio).
//
// Stores only read; corpus preparation (pickling, uploading) happens outside
// this library.
package blobstore
