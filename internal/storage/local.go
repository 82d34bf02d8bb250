package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"custodia/internal/config"
)

const openFlagsTruncate = os.O_WRONLY | os.O_CREATE | os.O_TRUNC

// localStorage implements Storage on a filesystem: one directory for live
// files, a sibling directory for single-generation backups. The afero
// abstraction keeps it testable against an in-memory filesystem.
type localStorage struct {
	fs        afero.Fs
	uploadDir string
	backupDir string
}

// NewLocal creates a filesystem-backed document store, creating the live and
// backup directories if they do not exist.
func NewLocal(cfg config.StorageConfig, fs afero.Fs) (Storage, error) {
	if cfg.UploadDir == "" || cfg.BackupDir == "" {
		return nil, fmt.Errorf("storage upload and backup directories are required")
	}
	if err := fs.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := fs.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &localStorage{fs: fs, uploadDir: cfg.UploadDir, backupDir: cfg.BackupDir}, nil
}

func (l *localStorage) livePath(name string) string   { return filepath.Join(l.uploadDir, name) }
func (l *localStorage) backupPath(name string) string { return filepath.Join(l.backupDir, name) }

// Put writes the content under name in the live area as a full overwrite.
func (l *localStorage) Put(_ context.Context, name string, r io.Reader, _ int64) error {
	f, err := l.fs.OpenFile(l.livePath(name), openFlagsTruncate, 0o644)
	if err != nil {
		return fmt.Errorf("open live file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write live file: %w", err)
	}
	return f.Close()
}

// Get opens a live file for streaming.
func (l *localStorage) Get(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := l.fs.Open(l.livePath(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports presence of a live file.
func (l *localStorage) Exists(_ context.Context, name string) (bool, error) {
	return afero.Exists(l.fs, l.livePath(name))
}

// Backup copies the live file into the backup area under the same name,
// replacing any earlier backup held there.
func (l *localStorage) Backup(_ context.Context, name string) error {
	src, err := l.fs.Open(l.livePath(name))
	if err != nil {
		return fmt.Errorf("open live file for backup: %w", err)
	}
	defer src.Close()

	dst, err := l.fs.OpenFile(l.backupPath(name), openFlagsTruncate, 0o644)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write backup file: %w", err)
	}
	return dst.Close()
}

// Delete removes a live file.
func (l *localStorage) Delete(_ context.Context, name string) error {
	return l.fs.Remove(l.livePath(name))
}
