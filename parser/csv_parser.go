// Package parser turns raw CSV bytes into header-keyed records.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// Parse reads a header-delimited CSV and returns one RawRow per data line,
// keyed by normalized header names (trimmed, lowercased, whitespace runs
// collapsed to underscores). Blank lines are skipped and short rows are
// tolerated: missing cells read back as "".
func Parse(r io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV must include a header row: %w", err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = NormalizeHeader(h)
	}

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", len(rows)+2, err)
		}
		if isBlank(record) {
			continue
		}

		row := make(models.RawRow, len(headers))
		for i, name := range headers {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// NormalizeHeader canonicalizes one header cell: "Merchant ID" -> "merchant_id".
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), "_")
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
