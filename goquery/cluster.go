package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.Strategy = (*ContactClusterStrategy)(nil)

// blockAncestors is the selector used to walk from an inline match up to
// the enclosing block-level node that likely wraps one person's entry.
const blockAncestors = "div, li, tr, article, section"

// ContactClusterStrategy finds every mailto: anchor on the page and treats
// its nearest block-level ancestor as a personnel container. It only
// engages when the page holds at least three email links; sparse pages are
// left to other strategies.
type ContactClusterStrategy struct{}

// NewContactClusterStrategy creates a new ContactClusterStrategy.
func NewContactClusterStrategy() *ContactClusterStrategy {
	return &ContactClusterStrategy{}
}

// Name returns the strategy's identifier.
func (s *ContactClusterStrategy) Name() string {
	return "contact-cluster"
}

// Extract parses the HTML and returns one candidate record per clustered
// email link. Confidence grows with result count, capped at 85.
func (s *ContactClusterStrategy) Extract(html string, baseURL string) ([]facultysnipe.Record, int, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, 0, err
	}

	var mailtos []*goquery.Selection
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(strings.ToLower(href), "mailto:") {
			mailtos = append(mailtos, a)
		}
	})

	if len(mailtos) < 3 {
		return nil, 0, nil
	}

	var records []facultysnipe.Record
	seen := make(map[string]bool)

	for _, a := range mailtos {
		email := mailtoAddress(a)
		if email == "" {
			continue
		}
		parent := a.Closest(blockAncestors)
		if parent.Length() == 0 {
			continue
		}
		rec := extractFromContainer(parent, baseURL, email)
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
	confidence := 40 + len(records)*5
	if confidence > 85 {
		confidence = 85
	}
	return records, confidence, nil
}

// mailtoAddress extracts and validates the address from a mailto: anchor.
func mailtoAddress(a *goquery.Selection) string {
	href, _ := a.Attr("href")
	email := strings.ToLower(strings.TrimSpace(href))
	email = strings.TrimPrefix(email, "mailto:")
	if i := strings.IndexAny(email, "?#"); i != -1 {
		email = email[:i]
	}
	if unescaped, err := url.QueryUnescape(email); err == nil {
		email = unescaped
	}
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return ""
	}
	return email
}
