package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// VertexClient holds the pre-configured extractor model.
type VertexClient struct {
	extractorModel *genai.GenerativeModel
	baseClient     *genai.Client
}

// VertexConfig selects the model and its inference parameters. The low
// temperature and tight sampling bias the model toward deterministic, literal
// extraction rather than creative completion.
type VertexConfig struct {
	ProjectID       string
	Region          string
	ModelName       string
	SystemPrompt    string
	MaxOutputTokens int32
}

// NewVertexClient creates a client holding the extractor model.
func NewVertexClient(ctx context.Context, cfg VertexConfig) (*VertexClient, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel(cfg.ModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(cfg.SystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: genai.Ptr[int32](cfg.MaxOutputTokens),
		Temperature:     genai.Ptr[float32](0.1),
		TopP:            genai.Ptr[float32](0.1),
		TopK:            genai.Ptr[int32](10),
	}

	return &VertexClient{
		extractorModel: model,
		baseClient:     baseClient,
	}, nil
}

// GenerateText sends the input as the sole user turn and returns the
// concatenated text parts of the first candidate.
func (c *VertexClient) GenerateText(ctx context.Context, input string) (string, error) {
	resp, err := c.extractorModel.GenerateContent(ctx, genai.Text(input))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content.WriteString(string(txt))
		}
	}
	return content.String(), nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
