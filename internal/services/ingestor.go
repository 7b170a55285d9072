package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agarridoh/candidateflow/internal/extract"
	"github.com/agarridoh/candidateflow/internal/gcp"
	"github.com/agarridoh/candidateflow/internal/models"
)

// Collaborator contracts for stage A. The gcp package provides the real
// implementations; tests substitute doubles.
type (
	// Renderer rasterizes the first page of a PDF.
	Renderer interface {
		Render(pdf []byte) ([]byte, error)
	}
	// TextSource reduces a page image to an ordered text blob.
	TextSource interface {
		Extract(ctx context.Context, image []byte) (string, error)
	}
	// FieldSource turns the text blob into a candidate field map.
	FieldSource interface {
		Extract(ctx context.Context, text string) (map[string]string, error)
	}
	// Stager durably persists a staged record.
	Stager interface {
		Put(ctx context.Context, bucket, key string, data []byte) error
	}
	// Notifier emits the staged-record notification.
	Notifier interface {
		Publish(ctx context.Context, n models.Notification) error
	}
)

// IngestorConfig holds all configuration for the ingestion function.
type IngestorConfig struct {
	ProjectID       string
	VertexAIRegion  string
	ModelName       string
	MaxOutputTokens int32
	StagingBucket   string
	StagingPrefix   string
	NotifyTopic     string
}

const (
	rawTextPreviewLimit = 500
	recordSource        = "web_upload"
	extractionVersion   = "1.0"
)

// IngestorFunction sequences render, OCR, model extraction, normalization,
// staging and notification for one submission. All steps are strictly
// sequential; concurrency across submissions is the platform's business.
type IngestorFunction struct {
	renderer Renderer
	texts    TextSource
	fields   FieldSource
	schema   extract.Schema
	stager   Stager
	notifier Notifier
	config   IngestorConfig
}

func loadIngestorConfig() (*IngestorConfig, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	stagingBucket := gcp.GetEnv("STAGING_BUCKET", "")
	if stagingBucket == "" {
		return nil, fmt.Errorf("STAGING_BUCKET environment variable must be set")
	}
	notifyTopic := gcp.GetEnv("NOTIFY_TOPIC", "")
	if notifyTopic == "" {
		return nil, fmt.Errorf("NOTIFY_TOPIC environment variable must be set")
	}

	maxTokens, err := strconv.ParseInt(gcp.GetEnv("MAX_OUTPUT_TOKENS", "1024"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("MAX_OUTPUT_TOKENS must be an integer: %w", err)
	}

	return &IngestorConfig{
		ProjectID:       projectID,
		VertexAIRegion:  gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		ModelName:       gcp.GetEnv("EXTRACTOR_MODEL", "gemini-1.5-flash"),
		MaxOutputTokens: int32(maxTokens),
		StagingBucket:   stagingBucket,
		StagingPrefix:   gcp.GetEnv("STAGING_PREFIX", "cv_extractions"),
		NotifyTopic:     notifyTopic,
	}, nil
}

// NewIngestor creates an IngestorFunction wired to the real collaborators.
// The four clients are independent, so they are dialed concurrently.
func NewIngestor(ctx context.Context) (*IngestorFunction, error) {
	config, err := loadIngestorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	schema := extract.DefaultSchema()

	var (
		objectStore  *gcp.ObjectStore
		visionOCR    *gcp.VisionOCR
		vertexClient *gcp.VertexClient
		publisher    *gcp.Publisher
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		objectStore, err = gcp.NewObjectStore(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		visionOCR, err = gcp.NewVisionOCR(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		vertexClient, err = gcp.NewVertexClient(egCtx, gcp.VertexConfig{
			ProjectID:       config.ProjectID,
			Region:          config.VertexAIRegion,
			ModelName:       config.ModelName,
			SystemPrompt:    extract.SystemPrompt(schema),
			MaxOutputTokens: config.MaxOutputTokens,
		})
		return err
	})
	eg.Go(func() (err error) {
		publisher, err = gcp.NewPublisher(egCtx, config.ProjectID, config.NotifyTopic)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to create collaborator clients: %w", err)
	}

	slog.Info("Ingestor initialized.", "model", config.ModelName, "stagingBucket", config.StagingBucket)
	return &IngestorFunction{
		renderer: extract.Renderer{DPI: extract.DefaultRenderDPI},
		texts:    extract.NewTextExtractor(visionOCR),
		fields:   extract.NewStructuredExtractor(vertexClient, schema),
		schema:   schema,
		stager:   objectStore,
		notifier: publisher,
		config:   *config,
	}, nil
}

// HandleExtract is the HTTP handler for CV submissions. Responses always
// carry permissive CORS headers; the upload form is served from a different
// origin.
func (f *IngestorFunction) HandleExtract(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pdf, err := decodeSubmission(r)
	if err != nil {
		slog.Warn("Rejected submission.", "error", err)
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   err.Error(),
			Message: "Error processing document",
		})
		return
	}

	resp, err := f.Process(r.Context(), pdf)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   err.Error(),
			Message: "Error processing document",
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeSubmission extracts the PDF bytes from the request body. An optional
// data-URL scheme prefix is stripped before base64 decoding.
func decodeSubmission(r *http.Request) ([]byte, error) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrDecode, err)
	}

	payload := req.File
	if payload == "" {
		payload = req.Base64PDF
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: no file found in request body", extract.ErrDecode)
	}

	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}

	pdf, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrDecode, err)
	}
	return pdf, nil
}

// Process runs the extraction pipeline on the decoded PDF bytes. A model
// parse failure degrades to an all-empty field map; staging and notification
// failures are logged and swallowed so the caller still gets its fields.
func (f *IngestorFunction) Process(ctx context.Context, pdf []byte) (*models.ExtractResponse, error) {
	logCtx := slog.With("pdfBytes", len(pdf))

	image, err := f.renderer.Render(pdf)
	if err != nil {
		logCtx.Error("Render failed.", "error", err)
		return nil, err
	}

	rawText, err := f.texts.Extract(ctx, image)
	if err != nil {
		logCtx.Error("Text extraction failed.", "error", err)
		return nil, err
	}
	logCtx.Info("Text extracted.", "textLength", len(rawText), "textPreview", truncate(rawText, 200))

	info, err := f.fields.Extract(ctx, rawText)
	if err != nil {
		if !errors.Is(err, extract.ErrParse) {
			logCtx.Error("Field extraction failed.", "error", err)
			return nil, err
		}
		// OCR succeeded, so a human can still review the raw text; the
		// request stays a success with empty fields.
		logCtx.Warn("Model output unparseable, degrading to empty fields.", "error", err)
		info = nil
	}
	info = f.schema.Normalize(info)

	resp := &models.ExtractResponse{
		PersonalInfo: info,
		RawText:      truncate(rawText, rawTextPreviewLimit),
	}

	now := time.Now().UTC()
	documentID := uuid.NewString()
	record := models.ExtractionRecord{
		ExtractedInfo: info,
		RawText:       rawText,
		Metadata: models.RecordMetadata{
			DocumentID:        documentID,
			CreatedAt:         now,
			Source:            recordSource,
			ExtractionVersion: extractionVersion,
		},
	}

	key := fmt.Sprintf("%s/%s/%s.json", f.config.StagingPrefix, now.Format("2006/01/02"), documentID)
	if err := f.stage(ctx, key, record); err != nil {
		// User-facing success is decoupled from back-office durability: the
		// caller keeps its fields, but no record id is handed out.
		logCtx.Error("Staging failed, response carries no document id.", "error", fmt.Errorf("%w: %v", extract.ErrStaging, err))
		return resp, nil
	}
	resp.DocumentID = documentID

	notification := models.Notification{
		DocumentID: documentID,
		Bucket:     f.config.StagingBucket,
		Key:        key,
		Timestamp:  now,
	}
	if err := f.notifier.Publish(ctx, notification); err != nil {
		logCtx.Error("Notification failed, record staged but not announced.", "documentId", documentID,
			"error", fmt.Errorf("%w: %v", extract.ErrNotify, err))
		return resp, nil
	}

	logCtx.Info("Record staged and announced.", "documentId", documentID, "stagingKey", key)
	return resp, nil
}

func (f *IngestorFunction) stage(ctx context.Context, key string, record models.ExtractionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return f.stager.Put(ctx, f.config.StagingBucket, key, data)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response.", "error", err)
	}
}
