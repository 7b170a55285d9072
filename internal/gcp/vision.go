package gcp

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// VisionOCR adapts the Cloud Vision document text detector to the pipeline's
// line-level contract. Only plain text detection is requested; form and table
// analysis is deliberately avoided to bound latency.
type VisionOCR struct {
	client *vision.ImageAnnotatorClient
}

func NewVisionOCR(ctx context.Context) (*VisionOCR, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionOCR{client: client}, nil
}

// DetectLines runs document text detection on the image and returns the
// detected lines in reading order.
func (o *VisionOCR) DetectLines(ctx context.Context, image []byte) ([]string, error) {
	annotation, err := o.client.DetectDocumentText(ctx, &visionpb.Image{Content: image}, nil)
	if err != nil {
		return nil, fmt.Errorf("document text detection failed: %w", err)
	}
	if annotation == nil {
		return nil, nil
	}
	return assembleLines(annotation), nil
}

func (o *VisionOCR) Close() error {
	return o.client.Close()
}

// assembleLines rebuilds reading-order lines from the annotation hierarchy.
// Vision reports symbols with detected breaks instead of line strings, so we
// concatenate symbols and split on the line-break markers.
func assembleLines(annotation *visionpb.TextAnnotation) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, page := range annotation.GetPages() {
		for _, block := range page.GetBlocks() {
			for _, paragraph := range block.GetParagraphs() {
				for _, word := range paragraph.GetWords() {
					for _, symbol := range word.GetSymbols() {
						current.WriteString(symbol.GetText())
						switch symbol.GetProperty().GetDetectedBreak().GetType() {
						case visionpb.TextAnnotation_DetectedBreak_SPACE,
							visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
							current.WriteString(" ")
						case visionpb.TextAnnotation_DetectedBreak_HYPHEN:
							current.WriteString("-")
							flush()
						case visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE,
							visionpb.TextAnnotation_DetectedBreak_LINE_BREAK:
							flush()
						}
					}
				}
			}
			flush()
		}
	}
	flush()
	return lines
}
