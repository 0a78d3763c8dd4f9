package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.Strategy = (*TitleStrategy)(nil)

var titleVocabularyRE = regexp.MustCompile(`(?i)\b(Professor|Associate Professor|Assistant Professor|Dr\.|Ph\.?D\.?|Faculty)\b`)

// TitleStrategy locates text matching the academic-title vocabulary and
// extracts a record from the enclosing block element. It only engages when
// the page holds at least three title matches.
type TitleStrategy struct{}

// NewTitleStrategy creates a new TitleStrategy.
func NewTitleStrategy() *TitleStrategy {
	return &TitleStrategy{}
}

// Name returns the strategy's identifier.
func (s *TitleStrategy) Name() string {
	return "title-keyword"
}

// Extract parses the HTML and returns one candidate record per block
// containing an academic title. Confidence grows with result count,
// capped at 75.
func (s *TitleStrategy) Extract(html string, baseURL string) ([]facultysnipe.Record, int, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, 0, err
	}

	// Collect elements whose direct text (not descendants') contains an
	// academic title, so each match points at the innermost node.
	var matches []*goquery.Selection
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if ownTextMatches(sel, titleVocabularyRE) {
			matches = append(matches, sel)
		}
	})

	if len(matches) < 3 {
		return nil, 0, nil
	}

	var records []facultysnipe.Record
	seen := make(map[string]bool)

	for _, m := range matches {
		parent := m.Closest(blockAncestors + ", p")
		if parent.Length() == 0 {
			continue
		}
		rec := extractFromContainer(parent, baseURL, "")
		if rec == nil {
			continue
		}
		rec.RawData = provenance(s.Name(), baseURL, parent)
		if id := rec.ID(); !seen[id] {
			seen[id] = true
			records = append(records, *rec)
		}
	}

	if len(records) == 0 {
		return nil, 0, nil
	}
	confidence := 30 + len(records)*5
	if confidence > 75 {
		confidence = 75
	}
	return records, confidence, nil
}

// ownTextMatches reports whether any direct text-node child of sel matches
// the pattern.
func ownTextMatches(sel *goquery.Selection, re *regexp.Regexp) bool {
	matched := false
	sel.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if goquery.NodeName(c) != "#text" {
			return true
		}
		if re.MatchString(c.Text()) {
			matched = true
			return false
		}
		return true
	})
	return matched
}
