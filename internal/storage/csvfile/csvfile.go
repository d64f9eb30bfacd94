// Package csvfile reads the review seed table from a local CSV file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"review_analyzer/internal/domain"
)

type Source struct{ path string }

func New(path string) *Source { return &Source{path: path} }

func (s *Source) ReadTable(ctx context.Context) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a comma-separated table whose first record is the header.
// Ragged rows are rejected by the csv reader.
func Parse(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("parse csv: empty file")
	}
	header := records[0]
	if len(header) > 0 {
		// Excel-style UTF-8 BOM
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return domain.Table{Header: header, Rows: records[1:]}, nil
}
