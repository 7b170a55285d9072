package models

import (
	"fmt"
	"time"
)

// These structs define the JSON payloads crossing the system's edges: the
// upload endpoint and the notification channel between the two functions.

// ExtractRequest is the upload body. The PDF arrives base64-encoded under
// "file"; "base64_pdf" is accepted as an alias. A data-URL prefix is allowed
// and stripped before decoding.
type ExtractRequest struct {
	File      string `json:"file"`
	Base64PDF string `json:"base64_pdf"`
}

// ExtractResponse is the successful upload response. DocumentID is present
// only if the extraction record was staged.
type ExtractResponse struct {
	PersonalInfo map[string]string `json:"personalInfo"`
	RawText      string            `json:"rawText"`
	DocumentID   string            `json:"document_id,omitempty"`
}

// ErrorResponse is the body of every non-2xx upload response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Notification is the Pub/Sub message pointing at a staged ExtractionRecord.
// It is a pointer, not a copy: the consumer fetches the record from the
// staging bucket.
type Notification struct {
	DocumentID string    `json:"document_id"`
	Bucket     string    `json:"storage_bucket"`
	Key        string    `json:"storage_key"`
	Timestamp  time.Time `json:"timestamp"`
}

// Validate reports the first required field that is absent.
func (n Notification) Validate() error {
	switch {
	case n.DocumentID == "":
		return fmt.Errorf("missing required field: document_id")
	case n.Bucket == "":
		return fmt.Errorf("missing required field: storage_bucket")
	case n.Key == "":
		return fmt.Errorf("missing required field: storage_key")
	case n.Timestamp.IsZero():
		return fmt.Errorf("missing required field: timestamp")
	}
	return nil
}
