package batch

import "strings"

// Report summarizes prediction accuracy over records with a known label.
type Report struct {
	Labeled  int     `json:"labeled"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Accuracy counts predictions equal to the record's original industry. Records
// without an original industry, and records whose classification failed, are
// not counted.
func Accuracy(outcomes []Outcome) Report {
	var report Report
	for _, o := range outcomes {
		original, ok := o.Record.OriginalIndustry()
		if !ok || o.Err != nil {
			continue
		}
		report.Labeled++
		if SameIndustry(original, o.Result.Industry) {
			report.Correct++
		}
	}
	if report.Labeled > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Labeled)
	}
	return report
}

// itServices are spellings of the same industry across the LinkedIn taxonomy
// and the keyword rule table.
var itServices = []string{"information technology and services", "it services"}

// SameIndustry compares labels case-insensitively, treating the IT services
// spellings as equal.
func SameIndustry(original, predicted string) bool {
	o := strings.ToLower(strings.TrimSpace(original))
	p := strings.ToLower(strings.TrimSpace(predicted))
	if o == "" || p == "" {
		return false
	}
	if o == p {
		return true
	}
	return mentionsIT(o) && mentionsIT(p)
}

func mentionsIT(s string) bool {
	for _, alias := range itServices {
		if strings.Contains(s, alias) {
			return true
		}
	}
	return false
}
