// Package storage provides object storage for roster export snapshots.
//
// Implementations:
// - LocalStorage: files under a base directory, for development and the CLI
// - S3Storage: any S3-compatible bucket (Cloudflare R2, MinIO, AWS S3)
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines the interface for object storage operations.
type Storage interface {
	// Put stores data at key. Returns ErrKeyExists when the key is taken and
	// opts.Overwrite is false.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get returns the object at key; the caller must close the reader.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a link to the object, presigned for expires when the
	// backend supports it.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures how an object is stored.
type PutOptions struct {
	ContentType string // Detected from the key's extension when empty
	MaxSize     int64  // 0 means no limit
	Overwrite   bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// =============================================================================
// Configuration
// =============================================================================

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	BasePath string // Root directory, e.g. "./exports"
	BaseURL  string // Public prefix used by URL, e.g. "http://localhost:8080/exports"
}

// S3Config holds configuration for an S3-compatible bucket.
type S3Config struct {
	// Endpoint overrides the service endpoint, e.g.
	// "https://<account>.r2.cloudflarestorage.com". Empty uses AWS.
	Endpoint        string
	Region          string // Defaults to "auto"
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UsePathStyle    bool   // Required by MinIO
	PublicURL       string // Optional public prefix; presigned URLs otherwise
}

// =============================================================================
// Keys
// =============================================================================

// RosterExportKey returns the key of a roster version snapshot.
// Format: rosters/{start}_{end}/{versionID}.json
func RosterExportKey(periodStart, periodEnd time.Time, versionID uuid.UUID) string {
	return fmt.Sprintf("rosters/%s_%s/%s.json",
		periodStart.Format(time.DateOnly),
		periodEnd.Format(time.DateOnly),
		versionID,
	)
}

// validateKey rejects empty keys, absolute keys and parent traversal.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

// contentTypeFor returns the explicit type or one derived from the key.
func contentTypeFor(explicit, key string) string {
	if explicit != "" {
		return explicit
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
