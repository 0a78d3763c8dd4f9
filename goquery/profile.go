package goquery

// ProfileDetails holds the contact fields that can be recovered from an
// individual profile page. Empty fields mean the page did not yield them.
type ProfileDetails struct {
	Email             string
	Phone             string
	Department        string
	ResearchInterests string
}

// ExtractProfileDetails applies the field-extraction rules to a profile
// page as a whole. It is used to backfill records discovered on directory
// pages without contact details.
func ExtractProfileDetails(html string) (*ProfileDetails, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	return &ProfileDetails{
		Email:             extractEmail(body),
		Phone:             extractPhone(body),
		Department:        extractDepartment(doc),
		ResearchInterests: extractResearchInterests(body),
	}, nil
}
