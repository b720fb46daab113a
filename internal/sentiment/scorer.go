/**
 * @description
 * Lexicon-based sentiment scorer.
 * Classifies free text into compound/positive/neutral/negative scores and a
 * discrete label using the VADER polarity model.
 *
 * @dependencies
 * - github.com/jonreiter/govader: VADER lexicon implementation
 *
 * @notes
 * - Deterministic for a given text and lexicon version; no side effects.
 * - Label thresholds: compound >= 0.05 positive, <= -0.05 negative, else neutral.
 */

package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Compound score thresholds that partition the label space
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// ScoreResult holds the four polarity scores and the derived label for one text
type ScoreResult struct {
	Compound float64 `json:"compound_score"`
	Positive float64 `json:"positive_score"`
	Neutral  float64 `json:"neutral_score"`
	Negative float64 `json:"negative_score"`
	Label    Label   `json:"sentiment_label"`
}

// Scorer wraps a VADER analyzer. Safe for concurrent use: PolarityScores
// only reads the lexicon.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a Scorer with the default lexicon
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score analyzes the given text. Returns nil for empty or whitespace-only input.
func (s *Scorer) Score(text string) *ScoreResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	scores := s.analyzer.PolarityScores(text)

	return &ScoreResult{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Neutral:  scores.Neutral,
		Negative: scores.Negative,
		Label:    LabelFor(scores.Compound),
	}
}

// LabelFor derives the discrete label from a compound score
func LabelFor(compound float64) Label {
	switch {
	case compound >= positiveThreshold:
		return LabelPositive
	case compound <= negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
