package models

import "time"

// ExtractionRecord is the staged artifact handed off from the ingestion
// function to the result consumer. It is written once to the staging bucket
// and never mutated.
type ExtractionRecord struct {
	ExtractedInfo map[string]string `json:"extracted_info"`
	RawText       string            `json:"raw_text"`
	Metadata      RecordMetadata    `json:"metadata"`
}

// RecordMetadata identifies one extraction run.
type RecordMetadata struct {
	DocumentID        string    `json:"document_id"`
	CreatedAt         time.Time `json:"created_at"`
	Source            string    `json:"source"`
	ExtractionVersion string    `json:"extraction_version"`
}

// PersistedDocument is the Firestore representation of an ExtractionRecord
// plus consumption metadata. Keyed by the record's document id, so a
// re-delivered notification overwrites instead of duplicating.
type PersistedDocument struct {
	ExtractedInfo map[string]string  `firestore:"extractedInfo"`
	RawText       string             `firestore:"rawText"`
	CreatedAt     time.Time          `firestore:"createdAt"`
	UpdatedAt     time.Time          `firestore:"updatedAt"`
	StagingRef    StagingRef         `firestore:"stagingRef"`
	Processing    ProcessingMetadata `firestore:"processing"`
}

// StagingRef points back at the staged record the document was built from.
type StagingRef struct {
	Bucket string `firestore:"bucket"`
	Key    string `firestore:"key"`
}

// ProcessingMetadata records which delivery produced the document.
type ProcessingMetadata struct {
	ProcessedAt  time.Time `firestore:"processedAt"`
	MessageID    string    `firestore:"messageId"`
	InvocationID string    `firestore:"invocationId"`
}
