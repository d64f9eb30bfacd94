package mysql

import (
	"context"
	"database/sql"
	"strings"

	"review_analyzer/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is a MySQL-backed seed source for the in-memory store.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var seedHeader = []string{"ReviewId", "Location", "ReviewBody", "Timestamp"}

// ReadTable returns the reviews table in insertion order.
func (r *Repo) ReadTable(ctx context.Context) (domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	out := domain.Table{Header: seedHeader}
	for rows.Next() {
		var (
			id            sql.NullString
			loc, body, ts string
		)
		if err := rows.Scan(&id, &loc, &body, &ts); err != nil {
			return domain.Table{}, err
		}
		out.Rows = append(out.Rows, []string{id.String, loc, body, ts})
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, err
	}
	return out, nil
}

// UpsertReviews bulk-inserts reviews, updating rows that share a review_id.
func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?)")
		args = append(args,
			valStr(rv.ID),         // review_id
			rv.Body,               // review_body
			rv.Location,           // location
			rv.Timestamp.String(), // created_at
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
