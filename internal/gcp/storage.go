package gcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ObjectStore wraps the Cloud Storage client as the staging store for
// extraction records. The ingestion function writes through Put; the result
// consumer reads through Fetch.
type ObjectStore struct {
	client *storage.Client
}

func NewObjectStore(ctx context.Context) (*ObjectStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &ObjectStore{client: client}, nil
}

// Put writes content to an object only if it doesn't already exist. Record
// keys embed a fresh UUID, so a precondition failure can only mean the same
// record was already staged; that is not an error in an idempotent workflow.
func (s *ObjectStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	writer := s.client.Bucket(bucket).Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 412 {
			slog.Info("Object already staged, skipping.", "key", key)
			return nil
		}
		return fmt.Errorf("failed to write to staging bucket: %w", err)
	}

	if err := writer.Close(); err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 412 {
			slog.Info("Object already staged, skipping.", "key", key)
			return nil
		}
		return fmt.Errorf("failed to finalize staging write: %w", err)
	}
	return nil
}

// Fetch reads a staged object in full.
func (s *ObjectStore) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	reader, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", bucket, key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func (s *ObjectStore) Close() error {
	return s.client.Close()
}
