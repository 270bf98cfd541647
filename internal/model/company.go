package model

import "strings"

// CompanyRecord is one row of tabular company data.
type CompanyRecord struct {
	Name        string
	Domain      string
	YearFounded string
	Industry    string
	Locality    string
	Country     string
	ProfileURL  string
	Row         int
}

// Description synthesizes a free-text description from the populated attribute
// fields, e.g. "Domain: ibm.com. Founded: 1911. Industry: it services.".
// Blank fields are omitted; a record with no attributes yields "".
func (c CompanyRecord) Description() string {
	fields := []struct {
		label string
		value string
	}{
		{"Domain", c.Domain},
		{"Founded", c.YearFounded},
		{"Industry", c.Industry},
		{"Locality", c.Locality},
		{"Country", c.Country},
		{"LinkedIn URL", c.ProfileURL},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		parts = append(parts, f.label+": "+v)
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

// OriginalIndustry returns the ground-truth label, if the record has one.
func (c CompanyRecord) OriginalIndustry() (string, bool) {
	v := strings.TrimSpace(c.Industry)
	if v == "" || strings.EqualFold(v, "n/a") {
		return "", false
	}
	return v, true
}

// Input converts the record to a classifier input.
func (c CompanyRecord) Input() ClassificationInput {
	known, _ := c.OriginalIndustry()
	return ClassificationInput{
		Name:          strings.TrimSpace(c.Name),
		Description:   c.Description(),
		KnownIndustry: known,
	}
}
