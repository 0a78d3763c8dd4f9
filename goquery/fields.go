// Package goquery provides DOM-based extraction strategies for personnel
// directory pages. Each strategy independently proposes candidate records
// from parsed HTML with an advisory confidence score; the scrape package
// merges their outputs.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

var (
	emailRE      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	emailShapeRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Handles "name [at] host [dot] edu" obfuscation.
	obfuscatedEmailRE = regexp.MustCompile(`(?i)([a-zA-Z0-9._%+-]+)\s*\[at\]\s*([a-zA-Z0-9.-]+)\s*\[dot\]\s*([a-zA-Z]{2,})`)

	phoneREs = []*regexp.Regexp{
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{4}`),
	}

	// Two or more consecutive capitalized words.
	nameSpanRE = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)

	academicTitleRE = regexp.MustCompile(`(?i)\b(Associate Professor|Assistant Professor|Professor|Lecturer|Instructor|Research Scientist)\b`)

	degreeParenRE = regexp.MustCompile(`(?i)\s*\([^)]*(?:PhD|Ph\.D|MD|M\.D|ScD|DPhil)[^)]*\)`)
)

var namePrefixes = []string{
	"Dr.", "Dr", "Professor", "Prof.", "Prof",
	"Mr.", "Mr", "Ms.", "Ms", "Mrs.", "Mrs",
	"Mx.", "Mx", "Rev.", "Rev",
}

var nameSuffixes = []string{
	", Ph.D.", ", PhD", ", Ph.D", ", M.D.", ", MD",
	", D.Phil.", ", DPhil", ", Sc.D.", ", ScD",
	", Jr.", ", Jr", ", Sr.", ", Sr", ", II", ", III", ", IV",
}

// normalizeSpace collapses runs of whitespace into single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanName normalizes a person's name: collapses whitespace and strips
// honorific prefixes, degree suffixes, and parenthesized degree lists.
func cleanName(s string) string {
	s = normalizeSpace(s)
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(s, prefix+" ") {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
		}
	}
	s = degreeParenRE.ReplaceAllString(s, "")
	return normalizeSpace(s)
}

// validEmail rejects malformed addresses and common placeholder artifacts.
func validEmail(email string) bool {
	if len(email) < 5 {
		return false
	}
	lower := strings.ToLower(email)
	for _, bad := range []string{"example.com", "test.com", "mailto:", "javascript:", "[at]", "[dot]", "noreply", "webmaster"} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return emailShapeRE.MatchString(email)
}

// extractEmail finds an email inside the selection, trying mailto: links,
// data-email attributes, text pattern matches, and de-obfuscation.
func extractEmail(sel *goquery.Selection) string {
	var found string
	sel.Find(`a[href]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(strings.ToLower(href), "mailto:") {
			return true
		}
		email := strings.ToLower(href)
		email = strings.TrimPrefix(email, "mailto:")
		if i := strings.IndexAny(email, "?#"); i != -1 {
			email = email[:i]
		}
		if unescaped, err := url.QueryUnescape(email); err == nil {
			email = unescaped
		}
		email = strings.TrimSpace(email)
		if validEmail(email) {
			found = email
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	// Some sites hide addresses in data attributes.
	if attr, ok := sel.Find("[data-email]").Attr("data-email"); ok {
		if email := strings.TrimSpace(attr); validEmail(email) {
			return email
		}
	}

	text := sel.Text()
	for _, match := range emailRE.FindAllString(text, -1) {
		if validEmail(match) {
			return strings.ToLower(match)
		}
	}

	if m := obfuscatedEmailRE.FindStringSubmatch(text); m != nil {
		email := strings.ToLower(m[1] + "@" + m[2] + "." + m[3])
		if validEmail(email) {
			return email
		}
	}

	return ""
}

// extractPhone finds a phone number inside the selection, skipping numbers
// labeled as fax and falling back to tel: links.
func extractPhone(sel *goquery.Selection) string {
	text := sel.Text()
	for _, re := range phoneREs {
		for _, match := range re.FindAllString(text, -1) {
			idx := strings.Index(text, match)
			lo := idx - 20
			if lo < 0 {
				lo = 0
			}
			hi := idx + len(match) + 20
			if hi > len(text) {
				hi = len(text)
			}
			if strings.Contains(strings.ToLower(text[lo:hi]), "fax") {
				continue
			}
			return strings.TrimSpace(match)
		}
	}

	if href, ok := sel.Find(`a[href^="tel:"], a[href^="Tel:"], a[href^="TEL:"]`).Attr("href"); ok {
		phone := href
		phone = strings.TrimPrefix(phone, "tel:")
		phone = strings.TrimPrefix(phone, "Tel:")
		phone = strings.TrimPrefix(phone, "TEL:")
		return strings.TrimSpace(phone)
	}

	return ""
}

// extractName finds a person's name inside the selection via prioritized
// sub-selectors, falling back to capitalized-word spans in the text.
func extractName(sel *goquery.Selection) string {
	for _, selector := range []string{".name", ".person-name", "h2", "h3", "h4", ".title a", "strong", "b"} {
		elem := sel.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		name := cleanName(elem.Text())
		if name != "" && len(strings.Fields(name)) >= 2 {
			return name
		}
	}
	return nameFromText(sel.Text())
}

// nameFromText extracts the first span of two or more consecutive
// capitalized words that plausibly forms a name.
func nameFromText(text string) string {
	for _, match := range nameSpanRE.FindAllString(text, -1) {
		if len(strings.Fields(match)) >= 2 && len(match) < 50 {
			return match
		}
	}
	return ""
}

// extractTitle finds an academic title via prioritized sub-selectors,
// falling back to a keyword scan of the text.
func extractTitle(sel *goquery.Selection) string {
	for _, selector := range []string{".title", ".position", ".rank", ".job-title", "h4", "em", "i"} {
		elem := sel.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		title := normalizeSpace(elem.Text())
		if title == "" {
			continue
		}
		lower := strings.ToLower(title)
		for _, keyword := range []string{"professor", "dr", "faculty", "lecturer", "instructor"} {
			if strings.Contains(lower, keyword) {
				return title
			}
		}
	}
	if m := academicTitleRE.FindString(sel.Text()); m != "" {
		return m
	}
	return ""
}

var researchKeywords = []string{"research", "interests", "focus", "areas", "specialization", "expertise"}

// extractResearchInterests looks for research-related labels inside the
// selection and returns the surrounding text, truncated to 500 runes.
func extractResearchInterests(sel *goquery.Selection) string {
	var found string
	sel.Find("p, div, span").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		text := normalizeSpace(elem.Text())
		lower := strings.ToLower(text)
		for _, keyword := range researchKeywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			cleaned := regexp.MustCompile(`(?i)(research interests?:?|research focus:?)`).ReplaceAllString(text, "")
			cleaned = normalizeSpace(cleaned)
			if len(cleaned) > 10 {
				found = truncate(cleaned, 500)
				return false
			}
		}
		return true
	})
	return found
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var (
	deptOfRE  = regexp.MustCompile(`Department of ([A-Z][a-zA-Z\s&]+)`)
	deptPreRE = regexp.MustCompile(`([A-Z][a-zA-Z\s&]+) Department`)
)

// ExtractDepartment infers the department name from the page title or
// top-level headings ("Department of X" / "X Department" patterns).
// Returns the empty string when no pattern matches.
func ExtractDepartment(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return extractDepartment(doc)
}

func extractDepartment(doc *goquery.Document) string {
	var texts []string
	if title := doc.Find("title").First(); title.Length() > 0 {
		texts = append(texts, title.Text())
	}
	doc.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
		texts = append(texts, h.Text())
	})

	for _, text := range texts {
		if m := deptOfRE.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		if m := deptPreRE.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// resolveURL resolves an href against a base URL. Returns the empty string
// for unparseable or non-HTTP links.
func resolveURL(baseURL, href string) string {
	lower := strings.ToLower(strings.TrimSpace(href))
	if href == "" || href == "#" ||
		strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// parse wraps goquery parsing with an application error code.
func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, facultysnipe.Errorf(facultysnipe.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
