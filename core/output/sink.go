package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"tag-reconciler/core/storage"
	"tag-reconciler/core/utils"

	"github.com/minio/minio-go/v7"
)

// Sink persists one delimited dataset: a header row followed by data rows.
type Sink interface {
	Write(ctx context.Context, name string, header []string, rows [][]string) error
}

// NewSink builds the sink selected by cfg.Target. The storage client is only
// required by the s3 target.
func NewSink(ctx context.Context, cfg Config, client storage.Client, bucket string) (Sink, error) {
	comma, err := utils.DelimiterRune(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	switch cfg.Target {
	case "", TargetFile:
		return NewDirSink(cfg.Dir, comma)
	case TargetS3:
		if client == nil {
			return nil, fmt.Errorf("output target %q requires a storage client", cfg.Target)
		}
		return NewObjectSink(ctx, client, bucket, cfg.Prefix, comma)
	default:
		return nil, fmt.Errorf("unknown output target %q", cfg.Target)
	}
}

// DirSink writes each dataset as a file in a local directory.
type DirSink struct {
	dir   string
	comma rune
}

// NewDirSink creates the directory if needed and returns a sink writing into it.
func NewDirSink(dir string, comma rune) (*DirSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}
	return &DirSink{dir: dir, comma: comma}, nil
}

// Write creates (or truncates) dir/name and writes the dataset into it.
// A partially written file is removed on failure.
func (s *DirSink) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.dir, name)
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("creating %s failed: %w", fullPath, err)
	}

	if err := writeDelimited(file, s.comma, header, rows); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return fmt.Errorf("writing %s failed: %w", fullPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s failed: %w", fullPath, err)
	}
	return nil
}

// ObjectSink uploads each dataset as an object under a key prefix.
type ObjectSink struct {
	client storage.Client
	bucket string
	prefix string
	comma  rune
}

// NewObjectSink verifies the bucket, creating it when missing.
func NewObjectSink(ctx context.Context, client storage.Client, bucket, prefix string, comma rune) (*ObjectSink, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &ObjectSink{client: client, bucket: bucket, prefix: prefix, comma: comma}, nil
}

// Write encodes the dataset in memory and uploads it as prefix/name.
func (s *ObjectSink) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	if err := writeDelimited(&buf, s.comma, header, rows); err != nil {
		return fmt.Errorf("encoding %s failed: %w", name, err)
	}

	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("uploading %s failed: %w", key, err)
	}
	return nil
}

func writeDelimited(w io.Writer, comma rune, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		// csv.Writer emits a lone empty field as a blank line, which readers skip.
		if len(row) == 1 && row[0] == "" {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
