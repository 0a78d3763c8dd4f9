// Package anthropic provides an implementation of facultysnipe.AIExtractor
// backed by the Anthropic Messages API. It is the most expensive extraction
// backend and is only consulted when DOM-based strategies come up short.
package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/eflotty/facultysnipe"
)

// DefaultModel is the model used when none is configured. Haiku-class
// models are accurate enough for structured extraction at a fraction of
// the cost of larger models.
const DefaultModel = "claude-haiku-4-5-20251001"

// DefaultMaxTokens bounds the response size.
const DefaultMaxTokens = 4096

// Per-million-token pricing used for cost estimates.
const (
	inputCostPerMTok  = 0.80
	outputCostPerMTok = 4.00
)

// Ensure Extractor implements facultysnipe.AIExtractor at compile time.
var _ facultysnipe.AIExtractor = (*Extractor)(nil)

// Extractor extracts personnel records from HTML using Claude.
type Extractor struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel overrides the model used for extraction.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// NewExtractor creates a new Claude-backed Extractor.
func NewExtractor(apiKey string, opts ...Option) *Extractor {
	e := &Extractor{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract sends the cleaned HTML to the model and parses the JSON array it
// returns. The second return value is the estimated request cost in USD.
func (e *Extractor) Extract(ctx context.Context, html string) ([]facultysnipe.Record, float64, error) {
	msg, err := e.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(e.model),
		MaxTokens: e.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(extractionPrompt(html))),
		},
	})
	if err != nil {
		return nil, 0, facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "anthropic: %v", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	cost := float64(msg.Usage.InputTokens)/1e6*inputCostPerMTok +
		float64(msg.Usage.OutputTokens)/1e6*outputCostPerMTok

	records, err := parseRecords(text.String())
	if err != nil {
		return nil, cost, err
	}
	return records, cost, nil
}
