package extract

import (
	"context"
	"fmt"
	"strings"
)

// LineDetector is the OCR collaborator, reduced to plain line-level detection.
// Lines arrive in the service's reading order.
type LineDetector interface {
	DetectLines(ctx context.Context, image []byte) ([]string, error)
}

// TextExtractor drives the OCR collaborator and reduces its output into a
// single newline-joined text blob.
type TextExtractor struct {
	detector LineDetector
}

func NewTextExtractor(detector LineDetector) *TextExtractor {
	return &TextExtractor{detector: detector}
}

// Extract returns the detected lines joined by newlines, with blank lines
// dropped and surrounding whitespace trimmed. No retry on failure; the retry
// policy belongs to the infrastructure layer.
func (e *TextExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	lines, err := e.detector.DetectLines(ctx, image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCR, err)
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n"), nil
}
