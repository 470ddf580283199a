// Package s3 provides an S3-backed blobstore.Store for sample collections
// hosted in Amazon S3.
package s3
