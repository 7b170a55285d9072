package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/agarridoh/candidateflow/internal/services"
)

var (
	consumerInstance *services.ConsumerFunction
	once             sync.Once
	initErr          error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("ConsumeExtraction", consumeExtraction)
}

// main is required by the Go Functions Framework.
func main() {}

// pubSubEnvelope is the CloudEvent data payload of a Pub/Sub-triggered
// function. Message data arrives base64-encoded and is decoded by
// encoding/json into the byte slice.
type pubSubEnvelope struct {
	Message struct {
		Data      []byte `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// consumeExtraction is the CloudEvent entry point for staged-record
// notifications. Per-item failures are swallowed inside ProcessBatch; only a
// failure to read the delivery itself is returned, since without a payload
// there is nothing to attempt.
func consumeExtraction(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		consumerInstance, initErr = services.NewConsumer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var envelope pubSubEnvelope
	if err := json.Unmarshal(e.Data(), &envelope); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	consumerInstance.ProcessBatch(ctx, e.ID(), []services.InboundMessage{{
		ID:   envelope.Message.MessageID,
		Data: envelope.Message.Data,
	}})
	return nil
}
