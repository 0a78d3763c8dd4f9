package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nextTextRE = regexp.MustCompile(`(?i)\bnext\b`)

var pageNumberREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[?&]page=(\d+)`),
	regexp.MustCompile(`(?i)[?&]p=(\d+)`),
	regexp.MustCompile(`(?i)/page/(\d+)`),
	regexp.MustCompile(`(?i)/p/(\d+)`),
}

// NextPageURL finds the next-page link on a directory page, trying in
// order: rel="next" attributes, anchor/button text or aria-label matching
// "next", class names containing "next", and finally a link whose numeric
// page/p parameter is the current page number plus one.
// Returns the absolute next URL or the empty string when none is found.
func NextPageURL(html string, currentURL string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	if next := relNextLink(doc, currentURL); next != "" {
		return next, nil
	}
	if next := labeledNextLink(doc, currentURL); next != "" {
		return next, nil
	}
	if next := classNextLink(doc, currentURL); next != "" {
		return next, nil
	}
	return numberedNextLink(doc, currentURL), nil
}

func relNextLink(doc *goquery.Document, currentURL string) string {
	var next string
	doc.Find(`a[rel="next"], link[rel="next"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if resolved := resolveURL(currentURL, href); resolved != "" {
			next = resolved
			return false
		}
		return true
	})
	return next
}

func labeledNextLink(doc *goquery.Document, currentURL string) string {
	var next string
	doc.Find("a[href], button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := sel.Text()
		if aria, ok := sel.Attr("aria-label"); ok {
			label += " " + aria
		}
		if title, ok := sel.Attr("title"); ok {
			label += " " + title
		}
		if !nextTextRE.MatchString(label) {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok {
			// Buttons drive JS pagination; nothing to follow statically.
			return true
		}
		if resolved := resolveURL(currentURL, href); resolved != "" {
			next = resolved
			return false
		}
		return true
	})
	return next
}

func classNextLink(doc *goquery.Document, currentURL string) string {
	var next string
	doc.Find("a[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		lower := strings.ToLower(class)
		if !strings.Contains(lower, "next") && !strings.Contains(lower, "pagination-next") {
			return true
		}
		href, _ := sel.Attr("href")
		if resolved := resolveURL(currentURL, href); resolved != "" {
			next = resolved
			return false
		}
		return true
	})
	return next
}

// numberedNextLink engages only when the current URL carries a page
// number; it then looks for a link carrying that number plus one.
func numberedNextLink(doc *goquery.Document, currentURL string) string {
	current, ok := pageNumber(currentURL)
	if !ok {
		return ""
	}
	want := current + 1

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if n, ok := pageNumber(href); ok && n == want {
			if resolved := resolveURL(currentURL, href); resolved != "" {
				next = resolved
				return false
			}
		}
		return true
	})
	return next
}

// pageNumber extracts a numeric page indicator from a URL.
func pageNumber(url string) (int, bool) {
	for _, re := range pageNumberREs {
		if m := re.FindStringSubmatch(url); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
