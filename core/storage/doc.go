// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go client behind a small Client interface covering what the
// reconciler needs: reading a serial list object (input source "s3") and uploading
// result datasets (output target "s3"). Both AWS S3 and self-hosted MinIO work.
//
// The interface exists mainly so that the input and output packages can be tested
// against core/storage/mocks instead of a live bucket.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
