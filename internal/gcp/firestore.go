package gcp

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agarridoh/candidateflow/internal/models"
)

// CandidateStore is the Firestore-backed document store for persisted
// extractions. One instance is opened per consumer batch and closed on every
// exit path.
type CandidateStore struct {
	client     *firestore.Client
	collection string
}

// NewCandidateStore creates a Firestore client for the given project. The
// dial is bounded by connectTimeout so an unreachable store fails the item
// quickly instead of stalling the batch.
func NewCandidateStore(ctx context.Context, projectID, collection string, connectTimeout time.Duration) (*CandidateStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := firestore.NewClient(dialCtx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &CandidateStore{client: client, collection: collection}, nil
}

// Upsert writes the document under the record id. Set overwrites an existing
// document, so re-delivery of the same notification is safe.
func (s *CandidateStore) Upsert(ctx context.Context, id string, doc models.PersistedDocument) error {
	if _, err := s.client.Collection(s.collection).Doc(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", id, err)
	}
	return nil
}

func (s *CandidateStore) Close() error {
	return s.client.Close()
}
