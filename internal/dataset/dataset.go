// Package dataset reads tabular company data (CSV or XLSX) into records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/sector-sift/internal/model"
)

var (
	// ErrMissingNameColumn is returned when the header row has no "name" column.
	ErrMissingNameColumn = errors.New("dataset has no name column")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrEmptyDataset is returned when the input has no header row.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// Recognized column headers, matched case-insensitively after trimming.
const (
	colName        = "name"
	colDomain      = "domain"
	colYearFounded = "year founded"
	colIndustry    = "industry"
	colLocality    = "locality"
	colCountry     = "country"
	colProfileURL  = "linkedin url"
)

// Load reads a dataset file, choosing the parser by extension.
func Load(path string) ([]model.CompanyRecord, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied dataset path
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, filepath.Ext(path))
}

// Read parses r as the format implied by ext (".csv", ".xlsx").
func Read(r io.Reader, ext string) ([]model.CompanyRecord, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return ReadCSV(r)
	case "xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV parses comma-separated company data with a header row.
func ReadCSV(r io.Reader) ([]model.CompanyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return fromRows(rows)
}

// ReadXLSX parses the first sheet of an Excel workbook with a header row.
func ReadXLSX(r io.Reader) ([]model.CompanyRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return fromRows(rows)
}

// fromRows maps a header row plus data rows to records. Row numbers are
// 1-based and count the header, so they match what a spreadsheet shows.
func fromRows(rows [][]string) ([]model.CompanyRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index[colName]; !ok {
		return nil, ErrMissingNameColumn
	}

	records := make([]model.CompanyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		records = append(records, model.CompanyRecord{
			Row:         i + 2,
			Name:        cell(colName),
			Domain:      cell(colDomain),
			YearFounded: cell(colYearFounded),
			Industry:    cell(colIndustry),
			Locality:    cell(colLocality),
			Country:     cell(colCountry),
			ProfileURL:  cell(colProfileURL),
		})
	}

	return records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Labels returns the distinct known industries of records in first-seen order.
func Labels(records []model.CompanyRecord) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, r := range records {
		label, ok := r.OriginalIndustry()
		if !ok {
			continue
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}
