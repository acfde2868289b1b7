package loader

import (
	"context"
	"fmt"
	"os"

	"tag-reconciler/core/storage"
	"tag-reconciler/core/utils"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// Source yields the ordered list of serial numbers to reconcile.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// Deps carries the optional backends a source may need.
type Deps struct {
	Storage storage.Client
	Bucket  string
	DB      *gorm.DB
}

// NewSource builds the source selected by cfg.Source.
func NewSource(cfg Config, deps Deps) (Source, error) {
	comma, err := utils.DelimiterRune(cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	opts := ParseOptions{Delimiter: comma, Column: cfg.Column, SkipHeader: cfg.SkipHeader}

	switch cfg.Source {
	case "", SourceFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("input path not configured")
		}
		return &FileSource{Path: cfg.Path, Options: opts}, nil
	case SourceS3:
		if deps.Storage == nil {
			return nil, fmt.Errorf("input source %q requires a storage client", cfg.Source)
		}
		return &ObjectSource{Client: deps.Storage, Bucket: deps.Bucket, Object: cfg.Object, Options: opts}, nil
	case SourceDB:
		if deps.DB == nil {
			return nil, fmt.Errorf("input source %q requires a database connection", cfg.Source)
		}
		return &TableSource{DB: deps.DB, Table: cfg.Table, Column: cfg.TableColumn, OrderBy: cfg.OrderBy}, nil
	default:
		return nil, fmt.Errorf("unknown input source %q", cfg.Source)
	}
}

// FileSource reads serials from a local delimited file.
type FileSource struct {
	Path    string
	Options ParseOptions
}

// Load opens and parses the file.
func (s *FileSource) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", s.Path, err)
	}
	defer f.Close()

	return ParseSerials(f, s.Options)
}

// ObjectSource reads serials from an object in a storage bucket.
type ObjectSource struct {
	Client  storage.Client
	Bucket  string
	Object  string
	Options ParseOptions
}

// Load downloads and parses the object.
func (s *ObjectSource) Load(ctx context.Context) ([]string, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting input object %s/%s: %w", s.Bucket, s.Object, err)
	}
	defer obj.Close()

	serials, err := ParseSerials(obj, s.Options)
	if err != nil {
		return nil, fmt.Errorf("input object %s/%s: %w", s.Bucket, s.Object, err)
	}
	return serials, nil
}
