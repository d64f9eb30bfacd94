// Package sentiment adapts the VADER lexicon analyzer to domain.SentimentScorer.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"review_analyzer/internal/domain"
)

// Vader scores text with the VADER lexicon. The analyzer only reads its
// lexicon after construction, so one instance is shared across requests.
type Vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) PolarityScores(text string) domain.Sentiment {
	s := v.sia.PolarityScores(text)
	// Sub-scores to 3 places and compound to 4, so near-equal scores tie.
	return domain.Sentiment{
		Neg:      round(s.Negative, 1e3),
		Neu:      round(s.Neutral, 1e3),
		Pos:      round(s.Positive, 1e3),
		Compound: round(s.Compound, 1e4),
	}
}

func round(x, scale float64) float64 { return math.Round(x*scale) / scale }
