// Package gemini provides an implementation of facultysnipe.AIExtractor
// using Google Gemini. It is an alternative to the anthropic backend for
// deployments with Google API access.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/eflotty/facultysnipe"
)

const model = "gemini-2.5-flash"

// Per-million-token pricing used for cost estimates.
const (
	inputCostPerMTok  = 0.30
	outputCostPerMTok = 2.50
)

// Ensure Extractor implements facultysnipe.AIExtractor at compile time.
var _ facultysnipe.AIExtractor = (*Extractor)(nil)

// Extractor extracts personnel records from HTML using Gemini.
type Extractor struct {
	client *genai.Client
}

// NewExtractor creates a new Gemini-backed Extractor.
func NewExtractor(client *genai.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract sends the cleaned HTML to the model and parses the JSON array it
// returns. The second return value is the estimated request cost in USD.
func (e *Extractor) Extract(ctx context.Context, html string) ([]facultysnipe.Record, float64, error) {
	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: buildUserPrompt(html)}},
		}},
		buildConfig(),
	)
	if err != nil {
		return nil, 0, facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, 0, facultysnipe.Errorf(facultysnipe.EINTERNAL, "gemini returned nil result")
	}

	var cost float64
	if result.UsageMetadata != nil {
		cost = float64(result.UsageMetadata.PromptTokenCount)/1e6*inputCostPerMTok +
			float64(result.UsageMetadata.CandidatesTokenCount)/1e6*outputCostPerMTok
	}

	records, err := parseRecords(result.Text())
	if err != nil {
		return nil, cost, err
	}
	return records, cost, nil
}

// buildConfig returns the GenerateContentConfig for Gemini API calls.
func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract structured personnel data from university directory pages. Respond with a JSON array only, no prose.",
			}},
		},
		Temperature: &temp,
	}
}

// buildUserPrompt wraps the page HTML with extraction instructions. The
// field names mirror the Record JSON tags so the response unmarshals
// directly.
func buildUserPrompt(html string) string {
	return `Extract every person listed on this personnel directory page.

Respond with a JSON array only. Each element must be an object with these
keys (use an empty string when a value is not present): "name", "title",
"email", "profileUrl", "department", "phone", "researchInterests".

Do not invent values. Skip entries that are clearly not people
(departments, offices, generic contact addresses).

HTML:
` + html
}

// parseRecords unmarshals the model's response, tolerating markdown code
// fences around the JSON array, and drops entries that fail validation.
func parseRecords(text string) ([]facultysnipe.Record, error) {
	body := strings.TrimSpace(text)
	start := strings.Index(body, "[")
	end := strings.LastIndex(body, "]")
	if start == -1 || end == -1 || end < start {
		return nil, facultysnipe.Errorf(facultysnipe.EINTERNAL, "no JSON array in model response")
	}

	var records []facultysnipe.Record
	if err := json.Unmarshal([]byte(body[start:end+1]), &records); err != nil {
		return nil, facultysnipe.Errorf(facultysnipe.EINTERNAL, "parse model response: %v", err)
	}

	valid := records[:0]
	for _, rec := range records {
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.Valid() {
			valid = append(valid, rec)
		}
	}
	return valid, nil
}
