package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

// Compile-time interface verification.
var _ facultysnipe.Strategy = (*ContainerStrategy)(nil)

// personnelKeywords match class/id/data-* attribute values on DOM nodes
// that typically wrap one person's entry.
var personnelKeywords = []string{
	"faculty", "professor", "people", "person", "staff",
	"member", "team", "bio", "profile", "card", "researcher",
	"investigator", "scientist", "personnel", "directory",
	"employee", "academic", "scholar", "expert",
}

var personnelKeywordRE = regexp.MustCompile(`(?i)(` + strings.Join(personnelKeywords, "|") + `)`)

var deptClassRE = regexp.MustCompile(`(?i)(biology|chemistry|physics|engineering|mathematics|computer|medicine|microbiology)`)

// ContainerStrategy locates DOM nodes whose class, id, or data attributes
// match a vocabulary of personnel-related keywords and extracts one record
// per matched node.
type ContainerStrategy struct{}

// NewContainerStrategy creates a new ContainerStrategy.
func NewContainerStrategy() *ContainerStrategy {
	return &ContainerStrategy{}
}

// Name returns the strategy's identifier.
func (s *ContainerStrategy) Name() string {
	return "container"
}

// Extract parses the HTML and returns one candidate record per matched
// personnel container. Confidence grows with result count, capped at 90.
func (s *ContainerStrategy) Extract(html string, baseURL string) ([]facultysnipe.Record, int, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, 0, err
	}

	var records []facultysnipe.Record
	seen := make(map[string]bool)

	doc.Find("[class], [id], [data-type], [data-role], [data-category]").Each(func(_ int, sel *goquery.Selection) {
		if !matchesPersonnelKeyword(sel) {
			return
		}
		rec := extractFromContainer(sel, baseURL, "")
		if rec == nil {
			return
		}
		rec.RawData = provenance(s.Name(), baseURL, sel)
		if id := rec.ID(); !seen[id] {
			seen[id] = true
			records = append(records, *rec)
		}
	})

	if len(records) == 0 {
		return nil, 0, nil
	}
	confidence := 50 + len(records)*5
	if confidence > 90 {
		confidence = 90
	}
	return records, confidence, nil
}

// matchesPersonnelKeyword checks the node's class, id, and data attributes
// against the personnel keyword vocabulary.
func matchesPersonnelKeyword(sel *goquery.Selection) bool {
	for _, attr := range []string{"class", "id", "data-type", "data-role", "data-category"} {
		if val, ok := sel.Attr(attr); ok && personnelKeywordRE.MatchString(val) {
			return true
		}
	}
	return false
}

// extractFromContainer pulls a record's fields out of one container node.
// knownEmail, when non-empty, is used instead of searching the node.
// Returns nil when no name is found or the record would have no contact
// method at all (no email, profile link, or phone).
func extractFromContainer(sel *goquery.Selection, baseURL string, knownEmail string) *facultysnipe.Record {
	name := extractName(sel)
	if name == "" {
		return nil
	}

	email := knownEmail
	if email == "" {
		email = extractEmail(sel)
	}

	var profileURL string
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(strings.ToLower(href), "mailto:") {
			return true
		}
		if resolved := resolveURL(baseURL, href); resolved != "" {
			profileURL = resolved
			return false
		}
		return true
	})

	department := departmentFromContainer(sel)
	phone := extractPhone(sel)

	if email == "" && profileURL == "" && phone == "" {
		return nil
	}

	return &facultysnipe.Record{
		Name:              name,
		Title:             extractTitle(sel),
		Email:             email,
		ProfileURL:        profileURL,
		Department:        department,
		Phone:             phone,
		ResearchInterests: extractResearchInterests(sel),
	}
}

// departmentFromContainer checks the node's class names for a discipline
// keyword, then scans nearby text for "X Department"-style phrases.
func departmentFromContainer(sel *goquery.Selection) string {
	if class, ok := sel.Attr("class"); ok {
		if m := deptClassRE.FindString(class); m != "" {
			return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
		}
	}

	text := sel.Text()
	lower := strings.ToLower(text)
	for _, keyword := range []string{"department", "dept", "division", "school of", "college of"} {
		idx := strings.Index(lower, keyword)
		if idx == -1 {
			continue
		}
		lo := idx - 30
		if lo < 0 {
			lo = 0
		}
		hi := idx + 50
		if hi > len(text) {
			hi = len(text)
		}
		re := regexp.MustCompile(`(?i)([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)\s+` + regexp.QuoteMeta(keyword))
		if m := re.FindStringSubmatch(text[lo:hi]); m != nil {
			return m[1]
		}
	}
	return ""
}

// provenance builds the RawData map recording where a record came from.
func provenance(strategy, sourceURL string, sel *goquery.Selection) map[string]string {
	raw := map[string]string{
		"strategy": strategy,
		"source":   sourceURL,
	}
	if class, ok := sel.Attr("class"); ok && class != "" {
		raw["container"] = class
	}
	return raw
}
