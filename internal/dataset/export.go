package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/sector-sift/internal/model"
)

var resultHeader = []string{
	"row", "name", "description", "original_industry", "predicted_industry", "confidence", "matched_terms", "error",
}

// WriteResultsCSV writes classified rows as CSV, one line per result.
func WriteResultsCSV(w io.Writer, results []model.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		record := []string{
			strconv.Itoa(r.Row),
			r.CompanyName,
			r.Description,
			r.OriginalIndustry,
			r.PredictedIndustry,
			strconv.FormatFloat(r.Confidence, 'f', 4, 64),
			strings.Join(r.MatchedTerms, "; "),
			r.Error,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.Row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
