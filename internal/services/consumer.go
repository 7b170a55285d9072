package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/agarridoh/candidateflow/internal/extract"
	"github.com/agarridoh/candidateflow/internal/gcp"
	"github.com/agarridoh/candidateflow/internal/models"
)

// Collaborator contracts for stage B.
type (
	// RecordFetcher retrieves a staged extraction record.
	RecordFetcher interface {
		Fetch(ctx context.Context, bucket, key string) ([]byte, error)
	}
	// DocumentStore is the final document database.
	DocumentStore interface {
		Upsert(ctx context.Context, id string, doc models.PersistedDocument) error
		Close() error
	}
	// DocumentStoreFactory opens a store connection; one is opened lazily per
	// batch and closed when the batch finishes.
	DocumentStoreFactory func(ctx context.Context) (DocumentStore, error)
)

// ConsumerConfig holds all configuration for the result consumer.
type ConsumerConfig struct {
	ProjectID      string
	Collection     string
	ConnectTimeout time.Duration
}

// InboundMessage is one raw notification delivery. The body is parsed per
// item so a malformed message cannot take the rest of the batch down.
type InboundMessage struct {
	ID   string
	Data []byte
}

// BatchResult summarizes one consumer invocation.
type BatchResult struct {
	Attempted int
	Persisted int
}

// ConsumerFunction drains staged-record notifications and upserts the
// corresponding documents, isolating failures per item.
type ConsumerFunction struct {
	fetcher   RecordFetcher
	openStore DocumentStoreFactory
	config    ConsumerConfig
}

func loadConsumerConfig() (*ConsumerConfig, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}

	timeout, err := time.ParseDuration(gcp.GetEnv("FIRESTORE_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("FIRESTORE_CONNECT_TIMEOUT must be a duration: %w", err)
	}

	return &ConsumerConfig{
		ProjectID:      projectID,
		Collection:     gcp.GetEnv("FIRESTORE_COLLECTION", "cv_extractions"),
		ConnectTimeout: timeout,
	}, nil
}

// NewConsumer creates a ConsumerFunction wired to Cloud Storage and Firestore.
func NewConsumer(ctx context.Context) (*ConsumerFunction, error) {
	config, err := loadConsumerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	objectStore, err := gcp.NewObjectStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	factory := func(ctx context.Context) (DocumentStore, error) {
		return gcp.NewCandidateStore(ctx, config.ProjectID, config.Collection, config.ConnectTimeout)
	}

	slog.Info("Consumer initialized.", "collection", config.Collection)
	return &ConsumerFunction{
		fetcher:   objectStore,
		openStore: factory,
		config:    *config,
	}, nil
}

// ProcessBatch attempts every message exactly once. A failed item is logged
// and skipped; no redelivery is requested for it. The document store
// connection is opened on first need, reused across items, and released on
// every exit path.
func (f *ConsumerFunction) ProcessBatch(ctx context.Context, invocationID string, msgs []InboundMessage) BatchResult {
	logCtx := slog.With("invocationId", invocationID, "batchSize", len(msgs))

	var store DocumentStore
	defer func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			logCtx.Error("Failed to close document store.", "error", err)
		}
	}()

	var result BatchResult
	for _, msg := range msgs {
		result.Attempted++
		if err := f.processOne(ctx, invocationID, msg, &store); err != nil {
			logCtx.Error("Skipping message.", "messageId", msg.ID, "error", err)
			continue
		}
		result.Persisted++
	}

	logCtx.Info("Batch complete.", "attempted", result.Attempted, "persisted", result.Persisted)
	return result
}

func (f *ConsumerFunction) processOne(ctx context.Context, invocationID string, msg InboundMessage, store *DocumentStore) error {
	var notification models.Notification
	if err := json.Unmarshal(msg.Data, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", extract.ErrMissingField, err)
	}

	data, err := f.fetcher.Fetch(ctx, notification.Bucket, notification.Key)
	if err != nil {
		return fmt.Errorf("failed to fetch staged record: %w", err)
	}

	record, err := decodeRecord(data)
	if err != nil {
		return err
	}

	if *store == nil {
		s, err := f.openStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open document store: %w", err)
		}
		*store = s
	}

	now := time.Now().UTC()
	doc := models.PersistedDocument{
		ExtractedInfo: record.ExtractedInfo,
		RawText:       record.RawText,
		CreatedAt:     record.Metadata.CreatedAt,
		UpdatedAt:     now,
		StagingRef: models.StagingRef{
			Bucket: notification.Bucket,
			Key:    notification.Key,
		},
		Processing: models.ProcessingMetadata{
			ProcessedAt:  now,
			MessageID:    msg.ID,
			InvocationID: invocationID,
		},
	}
	if err := (*store).Upsert(ctx, notification.DocumentID, doc); err != nil {
		return err
	}

	slog.Info("Document persisted.", "documentId", notification.DocumentID, "messageId", msg.ID)
	return nil
}

// decodeRecord parses a staged record and verifies its expected sub-structures
// are present, not merely zero-valued.
func decodeRecord(data []byte) (*models.ExtractionRecord, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrInvalidPayload, err)
	}
	for _, field := range []string{"extracted_info", "raw_text"} {
		if _, ok := shape[field]; !ok {
			return nil, fmt.Errorf("%w: missing %s", extract.ErrInvalidPayload, field)
		}
	}

	var record models.ExtractionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrInvalidPayload, err)
	}
	return &record, nil
}
