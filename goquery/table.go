package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.Strategy = (*TableStrategy)(nil)

// TableStrategy extracts records from HTML tables. It infers a
// column-to-field mapping from header text and falls back to generic
// per-row container extraction when no headers match.
type TableStrategy struct{}

// NewTableStrategy creates a new TableStrategy.
func NewTableStrategy() *TableStrategy {
	return &TableStrategy{}
}

// Name returns the strategy's identifier.
func (s *TableStrategy) Name() string {
	return "table"
}

// columnMap holds inferred column indices; -1 means not identified.
type columnMap struct {
	name, email, title, phone, dept int
}

// Extract parses the HTML and returns candidate records from every table
// on the page. Confidence is 75 with three or more results, 50 otherwise.
func (s *TableStrategy) Extract(html string, baseURL string) ([]facultysnipe.Record, int, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, 0, err
	}

	var records []facultysnipe.Record
	seen := make(map[string]bool)

	add := func(rec *facultysnipe.Record, row *goquery.Selection) {
		rec.RawData = provenance(s.Name(), baseURL, row)
		if id := rec.ID(); !seen[id] {
			seen[id] = true
			records = append(records, *rec)
		}
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		cols := inferColumns(rows.First())

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}

			name := cellText(cells, cols.name)
			if name != "" {
				name = cleanName(name)
			}

			// Without an identified name column, fall back to generic
			// container extraction over the whole row.
			if name == "" {
				if rec := extractFromContainer(row, baseURL, ""); rec != nil {
					add(rec, row)
				}
				return
			}

			email := ""
			if cols.email >= 0 && cols.email < cells.Length() {
				email = extractEmail(cells.Eq(cols.email))
			}
			if email == "" {
				email = extractEmail(row)
			}

			phone := ""
			if cols.phone >= 0 && cols.phone < cells.Length() {
				phone = extractPhone(cells.Eq(cols.phone))
			}
			if phone == "" {
				phone = extractPhone(row)
			}

			// Need name plus some evidence this is a data row.
			if email == "" && phone == "" && cells.Length() < 3 {
				return
			}

			rec := facultysnipe.Record{
				Name:       name,
				Title:      normalizeSpace(cellText(cells, cols.title)),
				Email:      email,
				Phone:      phone,
				Department: normalizeSpace(cellText(cells, cols.dept)),
				ProfileURL: rowProfileURL(cells, baseURL),
			}
			if !rec.Valid() {
				return
			}
			add(&rec, row)
		})
	})

	if len(records) == 0 {
		return nil, 0, nil
	}
	if len(records) >= 3 {
		return records, 75, nil
	}
	return records, 50, nil
}

// inferColumns maps header cells to record fields by keyword.
func inferColumns(headerRow *goquery.Selection) columnMap {
	cols := columnMap{name: -1, email: -1, title: -1, phone: -1, dept: -1}
	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(cell.Text()))
		switch {
		case strings.Contains(header, "name") || strings.Contains(header, "faculty"):
			if cols.name == -1 {
				cols.name = i
			}
		case strings.Contains(header, "email") || strings.Contains(header, "e-mail") || strings.Contains(header, "contact"):
			if cols.email == -1 {
				cols.email = i
			}
		case strings.Contains(header, "title") || strings.Contains(header, "position") || strings.Contains(header, "rank"):
			if cols.title == -1 {
				cols.title = i
			}
		case strings.Contains(header, "phone") || strings.Contains(header, "tel"):
			if cols.phone == -1 {
				cols.phone = i
			}
		case strings.Contains(header, "department") || strings.Contains(header, "dept"):
			if cols.dept == -1 {
				cols.dept = i
			}
		}
	})
	return cols
}

// cellText returns the trimmed text of the cell at index i, or "" when the
// index is unidentified or out of range.
func cellText(cells *goquery.Selection, i int) string {
	if i < 0 || i >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(i).Text())
}

// rowProfileURL finds the first non-mailto link across the row's cells.
func rowProfileURL(cells *goquery.Selection, baseURL string) string {
	var profileURL string
	cells.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
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
	return profileURL
}
