// Package loader reads the local list of serial numbers (service tags) that is
// reconciled against the remote inventory.
//
// # Sources
//
//   - file: a local delimited text file, one serial per line (default)
//   - s3:   the same format stored as an object in the configured bucket
//   - db:   one column of an asset table, read through GORM
//
// # Line Semantics
//
// The delimited forms take one configurable column per line and trim surrounding
// whitespace. Blank lines are not dropped: they produce empty entries which keep
// the input positions intact and never match anything. An optional header line
// can be skipped, and a leading UTF-8 byte order mark is ignored.
//
// # Usage
//
//	src, err := loader.NewSource(cfg.Input, loader.Deps{Storage: client, Bucket: cfg.Storage.Bucket})
//	serials, err := src.Load(ctx)
package loader
