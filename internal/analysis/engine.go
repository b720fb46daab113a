/**
 * @description
 * Recommendation engine.
 * Combines aggregated sentiment, sentiment trend (early vs. late window) and
 * price trend into a classified buy/sell/hold recommendation with a
 * confidence score and rationale text.
 *
 * @dependencies
 * - internal/models: recommendation type and time frame enums
 *
 * @notes
 * - Pure and synchronous: no I/O, no shared state. The service layer fetches
 *   sentiment and price inputs before calling Recommend and persists the
 *   result afterward.
 * - Classification is an explicit ordered rule list; the first matching rule
 *   wins. Rule order matters, the conditions overlap.
 * - Confidence never exceeds maxConfidence.
 */

package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/stocksense-project/backend/internal/models"
)

const maxConfidence = 0.9

// SentimentPoint is one compound score with its publication time
type SentimentPoint struct {
	Compound    float64
	PublishedAt time.Time
}

// Input carries everything the engine needs for one instrument
type Input struct {
	Symbol       string
	CurrentPrice float64
	Sentiment    []SentimentPoint
	Closes       []float64 // chronological daily closes; ignored when HasPriceData is false
	HasPriceData bool
}

// SentimentAudit records the intermediate sentiment figures behind a decision
type SentimentAudit struct {
	Avg    float64 `json:"avg_sentiment"`
	Trend  float64 `json:"sentiment_trend"`
	Early  float64 `json:"early_sentiment"`
	Recent float64 `json:"recent_sentiment"`
}

// PriceAudit records the price figures behind a decision
type PriceAudit struct {
	ChangePct  float64 `json:"price_change_pct"`
	StartPrice float64 `json:"start_price"`
	EndPrice   float64 `json:"end_price"`
}

// Recommendation is the engine's output for one instrument
type Recommendation struct {
	Symbol      string                    `json:"symbol"`
	Type        models.RecommendationType `json:"type"`
	Confidence  float64                   `json:"confidence_score"`
	Reason      string                    `json:"reason"`
	PriceTarget *float64                  `json:"price_target,omitempty"`
	TimeFrame   models.TimeFrame          `json:"time_frame"`
	Sentiment   SentimentAudit            `json:"sentiment_data"`
	Price       *PriceAudit               `json:"price_data,omitempty"`
}

// signals are the derived figures the rules classify on
type signals struct {
	avg          float64
	trend        float64
	priceChange  float64
	currentPrice float64
}

// rule pairs a predicate with its outcome builder. Evaluated in order,
// first match wins.
type rule struct {
	match func(signals) bool
	build func(signals, *Recommendation)
}

var rules = []rule{
	{
		// strong positive sentiment confirmed by price
		match: func(s signals) bool { return s.avg > 0.25 && s.trend >= 0 && s.priceChange > 0 },
		build: func(s signals, r *Recommendation) {
			r.Type = models.RecommendationBuy
			r.Confidence = 0.5 + s.avg*0.5
			r.Reason = fmt.Sprintf("Positive sentiment (%.2f) with upward price trend (+%.2f%%).", s.avg, s.priceChange)
			r.PriceTarget = target(s.currentPrice * (1 + s.avg*0.2))
		},
	},
	{
		// strong negative sentiment confirmed by price
		match: func(s signals) bool { return s.avg < -0.25 && s.trend <= 0 && s.priceChange < 0 },
		build: func(s signals, r *Recommendation) {
			r.Type = models.RecommendationSell
			r.Confidence = 0.5 + math.Abs(s.avg)*0.5
			r.Reason = fmt.Sprintf("Negative sentiment (%.2f) with downward price trend (%.2f%%).", s.avg, s.priceChange)
			r.PriceTarget = target(s.currentPrice * (1 + s.avg*0.15))
		},
	},
	{
		// contrarian: sentiment still negative but improving fast
		match: func(s signals) bool { return s.avg < 0 && s.trend > 0.1 },
		build: func(s signals, r *Recommendation) {
			r.Type = models.RecommendationBuy
			r.Confidence = 0.5 + s.trend*0.5
			r.Reason = "Improving sentiment despite negativity. Potential value buy."
			r.PriceTarget = target(s.currentPrice * (1 + s.trend*0.3))
			r.TimeFrame = models.TimeFrameMedium
		},
	},
	{
		// momentum deteriorating while sentiment still positive
		match: func(s signals) bool { return s.avg > 0 && s.trend < -0.1 },
		build: func(s signals, r *Recommendation) {
			r.Type = models.RecommendationSell
			r.Confidence = 0.5 + math.Abs(s.trend)*0.5
			r.Reason = "Worsening sentiment despite positivity. Consider selling."
		},
	},
	{
		match: func(signals) bool { return true },
		build: func(s signals, r *Recommendation) {
			r.Type = models.RecommendationHold
			r.Confidence = 0.5
			r.Reason = fmt.Sprintf("Mixed sentiment (%.2f). Hold recommended.", s.avg)
		},
	},
}

// Recommend classifies one instrument. Returns a hold with an "insufficient
// data" rationale when no sentiment is available, and falls back to a
// sentiment-only classification when price history is missing.
func Recommend(in Input) *Recommendation {
	if len(in.Sentiment) == 0 {
		return &Recommendation{
			Symbol:     in.Symbol,
			Type:       models.RecommendationHold,
			Confidence: 0.5,
			Reason:     fmt.Sprintf("Insufficient live news for %s.", in.Symbol),
			TimeFrame:  models.TimeFrameShort,
		}
	}

	points := make([]SentimentPoint, len(in.Sentiment))
	copy(points, in.Sentiment)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].PublishedAt.Before(points[j].PublishedAt)
	})

	avg := meanCompound(points)

	// Split chronologically into halves; too few records means no trend signal
	early, recent, trend := avg, avg, 0.0
	if len(points) >= 4 {
		mid := len(points) / 2
		early = meanCompound(points[:mid])
		recent = meanCompound(points[mid:])
		trend = recent - early
	}

	audit := SentimentAudit{Avg: avg, Trend: trend, Early: early, Recent: recent}

	if !in.HasPriceData {
		return sentimentOnly(in, audit)
	}

	s := signals{
		avg:          avg,
		trend:        trend,
		priceChange:  PriceChangePct(in.Closes),
		currentPrice: in.CurrentPrice,
	}

	rec := &Recommendation{
		Symbol:    in.Symbol,
		TimeFrame: models.TimeFrameShort,
		Sentiment: audit,
		Price:     priceAudit(s.priceChange, in.Closes),
	}

	for _, rule := range rules {
		if rule.match(s) {
			rule.build(s, rec)
			break
		}
	}

	rec.Confidence = clampConfidence(rec.Confidence)
	return rec
}

// sentimentOnly classifies using sentiment alone when no price history is obtainable
func sentimentOnly(in Input, audit SentimentAudit) *Recommendation {
	rec := &Recommendation{
		Symbol:     in.Symbol,
		Type:       models.RecommendationHold,
		Confidence: 0.5,
		TimeFrame:  models.TimeFrameShort,
		Sentiment:  audit,
	}

	switch {
	case audit.Avg > 0.3:
		rec.Type = models.RecommendationBuy
		rec.Confidence = 0.5 + math.Min(0.3, audit.Avg*0.3)
		rec.Reason = fmt.Sprintf("Strong positive sentiment (%.2f).", audit.Avg)
	case audit.Avg < -0.3:
		rec.Type = models.RecommendationSell
		rec.Confidence = 0.5 + math.Min(0.3, math.Abs(audit.Avg)*0.3)
		rec.Reason = fmt.Sprintf("Strong negative sentiment (%.2f).", audit.Avg)
	default:
		rec.Reason = fmt.Sprintf("Neutral sentiment (%.2f).", audit.Avg)
	}

	rec.Confidence = clampConfidence(rec.Confidence)
	return rec
}

func meanCompound(points []SentimentPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Compound
	}
	return sum / float64(len(points))
}

func priceAudit(changePct float64, closes []float64) *PriceAudit {
	audit := &PriceAudit{ChangePct: changePct}
	if len(closes) > 0 {
		audit.StartPrice = closes[0]
		audit.EndPrice = closes[len(closes)-1]
	}
	return audit
}

func clampConfidence(c float64) float64 {
	if c > maxConfidence {
		return maxConfidence
	}
	if c < 0 {
		return 0
	}
	return c
}

func target(v float64) *float64 {
	return &v
}
