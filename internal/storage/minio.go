package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"custodia/internal/config"
)

const (
	livePrefix   = "arquivos/"
	backupPrefix = "backup/"
)

// minioStorage implements the Storage interface on an S3-compatible backend
// (MinIO, AWS S3, etc.). Live files and backups live in one bucket under the
// arquivos/ and backup/ prefixes. It is safe for concurrent use.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates an S3-compatible document store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Put uploads a live object using streaming I/O only (no local disk).
func (m *minioStorage) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, m.bucket, livePrefix+name, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	return err
}

// Get downloads a live object's content as a ReadCloser.
func (m *minioStorage) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, livePrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; stat forces the existence check before handing the
	// reader to the caller.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// Exists reports whether a live object is present under the given name.
func (m *minioStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, livePrefix+name, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Backup server-side-copies the live object under the backup prefix,
// overwriting any previous backup for that name.
func (m *minioStorage) Backup(ctx context.Context, name string) error {
	_, err := m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: backupPrefix + name},
		minio.CopySrcOptions{Bucket: m.bucket, Object: livePrefix + name},
	)
	return err
}

// Delete removes a live object by name.
func (m *minioStorage) Delete(ctx context.Context, name string) error {
	return m.client.RemoveObject(ctx, m.bucket, livePrefix+name, minio.RemoveObjectOptions{})
}
