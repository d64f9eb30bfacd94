package sentiment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"review_analyzer/internal/adapters/sentiment"
)

func TestVader_Polarity(t *testing.T) {
	v := sentiment.NewVader()

	pos := v.PolarityScores("Great!")
	neg := v.PolarityScores("Terrible.")

	assert.Greater(t, pos.Compound, 0.0)
	assert.Less(t, neg.Compound, 0.0)
	assert.Greater(t, pos.Compound, neg.Compound)
}

func TestVader_Bounds(t *testing.T) {
	v := sentiment.NewVader()
	for _, text := range []string{
		"",
		"The room was fine.",
		"Absolutely amazing, wonderful, the best stay ever!!!",
		"Horrible, dirty, rude staff. Worst hotel ever.",
	} {
		s := v.PolarityScores(text)
		assert.GreaterOrEqual(t, s.Compound, -1.0, text)
		assert.LessOrEqual(t, s.Compound, 1.0, text)
		for _, x := range []float64{s.Neg, s.Neu, s.Pos} {
			assert.GreaterOrEqual(t, x, 0.0, text)
			assert.LessOrEqual(t, x, 1.0, text)
		}
	}
}

func TestVader_Rounding(t *testing.T) {
	v := sentiment.NewVader()
	s := v.PolarityScores("Great stay, friendly staff and a spotless room!")

	assert.InDelta(t, 0.8221, s.Compound, 1e-9)
	assert.Equal(t, math.Round(s.Compound*1e4)/1e4, s.Compound)
	for _, x := range []float64{s.Neg, s.Neu, s.Pos} {
		assert.Equal(t, math.Round(x*1e3)/1e3, x)
	}
}
