package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyRecord_Description(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		record CompanyRecord
	}{
		{
			name: "all fields",
			record: CompanyRecord{
				Name:        "ibm",
				Domain:      "ibm.com",
				YearFounded: "1911",
				Industry:    "information technology and services",
				Locality:    "new york, new york, united states",
				Country:     "united states",
				ProfileURL:  "linkedin.com/company/ibm",
			},
			want: "Domain: ibm.com. Founded: 1911. Industry: information technology and services. " +
				"Locality: new york, new york, united states. Country: united states. " +
				"LinkedIn URL: linkedin.com/company/ibm.",
		},
		{
			name:   "missing fields are omitted",
			record: CompanyRecord{Domain: " acme.io ", Country: "usa"},
			want:   "Domain: acme.io. Country: usa.",
		},
		{
			name:   "no fields",
			record: CompanyRecord{Name: "nothing"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Description())
		})
	}
}

func TestCompanyRecord_Input(t *testing.T) {
	rec := CompanyRecord{Name: " ey ", Industry: "accounting", Domain: "ey.com"}
	in := rec.Input()

	assert.Equal(t, "ey", in.Name)
	assert.Equal(t, "Domain: ey.com. Industry: accounting.", in.Description)
	assert.Equal(t, "accounting", in.KnownIndustry)

	_, ok := CompanyRecord{Industry: "N/A"}.OriginalIndustry()
	assert.False(t, ok)
}

func TestClassificationInput_Text(t *testing.T) {
	assert.Equal(t, "Acme cloud", ClassificationInput{Name: "Acme", Description: "cloud"}.Text())
	assert.Equal(t, "cloud", ClassificationInput{Name: "  ", Description: "cloud"}.Text())
}
