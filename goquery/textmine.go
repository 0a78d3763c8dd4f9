package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.Strategy = (*TextMineStrategy)(nil)

// TextMineStrategy is the last-resort strategy: it finds every
// email-shaped substring in the document text and pairs each with the
// nearest span of two or more consecutive capitalized words as the name.
type TextMineStrategy struct{}

// NewTextMineStrategy creates a new TextMineStrategy.
func NewTextMineStrategy() *TextMineStrategy {
	return &TextMineStrategy{}
}

// Name returns the strategy's identifier.
func (s *TextMineStrategy) Name() string {
	return "text-mining"
}

// Extract parses the HTML and returns name+email pairs mined from raw
// text. Confidence grows slowly with result count, capped at 50.
func (s *TextMineStrategy) Extract(html string, baseURL string) ([]facultysnipe.Record, int, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, 0, err
	}

	emails := emailRE.FindAllString(doc.Text(), -1)

	var records []facultysnipe.Record
	seen := make(map[string]bool)

	for _, email := range emails {
		if !validEmail(email) {
			continue
		}
		name := nameNearEmail(doc, email)
		if name == "" {
			continue
		}
		rec := facultysnipe.Record{
			Name:  name,
			Email: strings.ToLower(email),
			RawData: map[string]string{
				"strategy": s.Name(),
				"source":   baseURL,
			},
		}
		if id := rec.ID(); !seen[id] {
			seen[id] = true
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, 0, nil
	}
	confidence := 20 + len(records)*3
	if confidence > 50 {
		confidence = 50
	}
	return records, confidence, nil
}

// nameNearEmail finds the block element containing the email text and
// extracts a capitalized-words name span from it.
func nameNearEmail(doc *goquery.Document, email string) string {
	var name string
	doc.Find("div, p, li, td").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), email) {
			return true
		}
		// Prefer the innermost block: skip nodes whose child blocks also
		// contain the email.
		if sel.Find("div, p, li, td").FilterFunction(func(_ int, child *goquery.Selection) bool {
			return strings.Contains(child.Text(), email)
		}).Length() > 0 {
			return true
		}
		name = nameFromText(sel.Text())
		return name == ""
	})
	return name
}
