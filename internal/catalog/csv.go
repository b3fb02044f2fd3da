package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"baselineexplorer/pkg/models"
)

var csvHeader = []string{"id", "name", "category", "status", "description", "mdn_url"}

// ReadCSV decodes features from CSV with a header row. Columns are matched
// by name, in any order; rows without an id or name are skipped.
func ReadCSV(r io.Reader) ([]models.Feature, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, col := range []string{"id", "name"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing %q column", col)
		}
	}

	var out []models.Feature
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		f := models.Feature{
			ID:          valueAt(header, row, "id"),
			Name:        valueAt(header, row, "name"),
			Category:    models.Category(strings.ToLower(valueAt(header, row, "category"))),
			Status:      models.Status(strings.ToLower(valueAt(header, row, "status"))),
			Description: valueAt(header, row, "description"),
			MDNURL:      valueAt(header, row, "mdn_url"),
		}
		if f.ID == "" || f.Name == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteCSV encodes features with the header ReadCSV expects.
func WriteCSV(w io.Writer, features []models.Feature) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range features {
		if err := cw.Write([]string{
			f.ID,
			f.Name,
			string(f.Category),
			string(f.Status),
			f.Description,
			f.MDNURL,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
