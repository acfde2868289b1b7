// Package output writes the reconciliation datasets.
//
// Three datasets are produced per run, each a delimited text file with a header row:
//
//   - inventory snapshot: serviceTag,hostId
//   - matched records:    id,serviceTag
//   - unmatched serials:  serviceTag
//
// A Sink decides where they go: DirSink writes local files, ObjectSink uploads
// objects to an S3-compatible bucket through core/storage. Datasets are written
// independently; there is no all-or-nothing guarantee across the three.
package output
