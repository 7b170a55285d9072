package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Generator is the language-model collaborator. Implementations send the text
// as the sole user turn under a fixed system instruction and return the raw
// textual completion.
type Generator interface {
	GenerateText(ctx context.Context, input string) (string, error)
}

// StructuredExtractor turns an OCR text blob into a candidate field map by
// asking the model for a JSON object matching the schema.
type StructuredExtractor struct {
	gen    Generator
	schema Schema
}

func NewStructuredExtractor(gen Generator, schema Schema) *StructuredExtractor {
	return &StructuredExtractor{gen: gen, schema: schema}
}

// Extract returns the parsed field map. A collaborator failure or an empty
// completion is ErrModel; a completion that is not valid JSON after fence
// stripping is ErrParse, which the orchestrator downgrades to empty fields.
func (e *StructuredExtractor) Extract(ctx context.Context, text string) (map[string]string, error) {
	raw, err := e.gen.GenerateText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}

	clean := StripFences(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrModel)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// Non-string values are dropped; the normalizer defaults those keys.
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

// StripFences removes markdown code-fence markers the model sometimes wraps
// around its JSON output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
