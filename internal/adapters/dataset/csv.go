// Package dataset provides read-only access to the processed CSV datasets
// the predictions are derived from. Stores are loaded once at startup and
// safe for concurrent reads; there is no file I/O after loading.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// header maps column names to indices, letting the loaders tolerate column
// reordering between dataset exports.
type header map[string]int

func readTable(r io.Reader) (header, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	h := make(header, len(cols))
	for i, name := range cols {
		h[strings.TrimSpace(name)] = i
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return h, rows, nil
}

func (h header) str(row []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// num parses a numeric cell, defaulting to 0 for blank or malformed values.
// The upstream exports carry NaN blanks the same way pandas writes them.
func (h header) num(row []string, col string) float64 {
	s := h.str(row, col)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (h header) integer(row []string, col string) int {
	return int(h.num(row, col))
}
