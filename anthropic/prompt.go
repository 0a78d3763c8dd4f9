package anthropic

import (
	"encoding/json"
	"strings"

	"github.com/eflotty/facultysnipe"
)

// extractionPrompt wraps the page HTML with extraction instructions. The
// field names mirror the Record JSON tags so the response unmarshals
// directly.
func extractionPrompt(html string) string {
	return `Extract every person listed on this personnel directory page.

Respond with a JSON array only, no prose. Each element must be an object
with these keys (use an empty string when a value is not present):
"name", "title", "email", "profileUrl", "department", "phone",
"researchInterests".

Do not invent values. Skip entries that are clearly not people
(departments, offices, generic contact addresses).

HTML:
` + html
}

// parseRecords unmarshals the model's response, tolerating markdown code
// fences around the JSON array, and drops entries that fail validation.
func parseRecords(text string) ([]facultysnipe.Record, error) {
	body := stripFences(text)

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

func stripFences(text string) string {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		if i := strings.LastIndex(body, "```"); i != -1 {
			body = body[:i]
		}
	}
	return strings.TrimSpace(body)
}
