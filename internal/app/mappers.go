package app

import (
	"fmt"
	"strings"

	"review_analyzer/internal/domain"
)

/********** column alias registry **********/

// seedAliases maps each review field to the header names accepted for it.
// Matching is case-insensitive.
var seedAliases = map[string][]string{
	"id":        {"ReviewId", "review_id", "id"},
	"body":      {"ReviewBody", "review_body", "body", "text"},
	"location":  {"Location", "city"},
	"timestamp": {"Timestamp", "created_at"},
}

var requiredSeedColumns = []string{"body", "location", "timestamp"}

// columnIndex resolves field -> column position from a header row.
func columnIndex(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[string]int, len(seedAliases))
	for field, names := range seedAliases {
		for _, n := range names {
			if i, ok := pos[strings.ToLower(n)]; ok {
				out[field] = i
				break
			}
		}
	}
	return out
}

/********** table mapper **********/

// mapTable converts a seed table into reviews in row order. Any missing
// required column or unparseable timestamp fails the whole table.
func mapTable(t domain.Table) ([]domain.Review, error) {
	cols := columnIndex(t.Header)
	for _, f := range requiredSeedColumns {
		if _, ok := cols[f]; !ok {
			return nil, fmt.Errorf("%w: missing column %q (header %v)", domain.ErrSeed, seedAliases[f][0], t.Header)
		}
	}

	out := make([]domain.Review, 0, len(t.Rows))
	for i, row := range t.Rows {
		rv, err := mapRow(cols, row)
		if err != nil {
			// +2: 1-based and the header line
			return nil, fmt.Errorf("%w: row %d: %w", domain.ErrSeed, i+2, err)
		}
		out = append(out, rv)
	}
	return out, nil
}

func mapRow(cols map[string]int, row []string) (domain.Review, error) {
	cell := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	ts, err := domain.ParseTimestamp(strings.TrimSpace(cell("timestamp")))
	if err != nil {
		return domain.Review{}, err
	}
	rv := domain.Review{
		Body:      cell("body"),
		Location:  cell("location"),
		Timestamp: ts,
	}
	// Seeded rows without an identifier stay without one.
	if id := strings.TrimSpace(cell("id")); id != "" {
		rv.ID = &id
	}
	return rv, nil
}
