// Package storage contains the document store: the live file area plus the
// backup area fed by the backup-before-mutate policy. Implementations address
// both areas by canonical file name only.
package storage

import (
	"context"
	"io"
)

// Storage is the document store port. Callers are expected to take the backup
// (via Backup) before any Put over an existing name or any Delete; the store
// itself performs no implicit snapshotting.
type Storage interface {
	// Put writes the full content under the given name in the live area,
	// overwriting any existing file.
	Put(ctx context.Context, name string, r io.Reader, size int64) error
	// Get streams a live file's content.
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// Exists reports whether a live file is present under the given name.
	Exists(ctx context.Context, name string) (bool, error)
	// Backup copies the live file into the backup area under the same name,
	// overwriting any previous backup for that name. Only the most recent
	// prior version is retained.
	Backup(ctx context.Context, name string) error
	// Delete removes a file from the live area.
	Delete(ctx context.Context, name string) error
}
