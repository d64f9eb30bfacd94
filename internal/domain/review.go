package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Review is a stored customer review. Seeded rows may come without an ID;
// reviews created through the API always carry one.
type Review struct {
	ID        *string   `json:"ReviewId,omitempty"`
	Body      string    `json:"ReviewBody"`
	Location  string    `json:"Location"`
	Timestamp Timestamp `json:"Timestamp"`
}

// Sentiment holds lexicon polarity scores. Compound is in [-1, 1].
type Sentiment struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// ScoredReview is the read-side view: a review plus its freshly computed sentiment.
type ScoredReview struct {
	Review
	Sentiment Sentiment `json:"sentiment"`
}

// Timestamp is a local wall-clock time serialized as "YYYY-MM-DD HH:MM:SS".
type Timestamp struct{ time.Time }

func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) String() string { return t.Format(TimestampLayout) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// ReviewFilter selects reviews on the read path. Zero values mean "match all".
type ReviewFilter struct {
	Location string
	Start    *time.Time // inclusive, midnight of start_date
	End      *time.Time // inclusive, midnight of end_date
}

func (f ReviewFilter) Match(r Review) bool {
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.Start != nil && r.Timestamp.Before(*f.Start) {
		return false
	}
	if f.End != nil && r.Timestamp.After(*f.End) {
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD query value as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
