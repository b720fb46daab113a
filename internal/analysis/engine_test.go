package analysis

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stocksense-project/backend/internal/models"
)

// points builds chronologically ordered sentiment points an hour apart
func points(compounds ...float64) []SentimentPoint {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	pts := make([]SentimentPoint, len(compounds))
	for i, c := range compounds {
		pts[i] = SentimentPoint{Compound: c, PublishedAt: base.Add(time.Duration(i) * time.Hour)}
	}
	return pts
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecommendPositiveSentimentUpwardPrice(t *testing.T) {
	// avg 0.30, trend +0.05, price +2%
	rec := Recommend(Input{
		Symbol:       "AAPL",
		CurrentPrice: 102,
		Sentiment:    points(0.275, 0.275, 0.325, 0.325),
		Closes:       []float64{100, 101, 102},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationBuy {
		t.Fatalf("expected buy, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.65) {
		t.Fatalf("expected confidence 0.65, got %f", rec.Confidence)
	}
	if rec.PriceTarget == nil {
		t.Fatal("expected a price target")
	}
	if !almostEqual(*rec.PriceTarget, 102*(1+0.3*0.2)) {
		t.Fatalf("unexpected price target %f", *rec.PriceTarget)
	}
	if !strings.Contains(rec.Reason, "Positive sentiment") {
		t.Fatalf("unexpected reason %q", rec.Reason)
	}
	if rec.TimeFrame != models.TimeFrameShort {
		t.Fatalf("expected short-term, got %s", rec.TimeFrame)
	}
}

func TestRecommendNegativeSentimentDownwardPrice(t *testing.T) {
	// avg -0.40, trend -0.10, price -3%
	rec := Recommend(Input{
		Symbol:       "TSLA",
		CurrentPrice: 97,
		Sentiment:    points(-0.35, -0.35, -0.45, -0.45),
		Closes:       []float64{100, 98, 97},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationSell {
		t.Fatalf("expected sell, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.7) {
		t.Fatalf("expected confidence 0.7, got %f", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "Negative sentiment") {
		t.Fatalf("unexpected reason %q", rec.Reason)
	}
}

func TestRecommendContrarianBuy(t *testing.T) {
	// avg -0.10, trend +0.20: negative but improving fast
	rec := Recommend(Input{
		Symbol:       "NVDA",
		CurrentPrice: 101,
		Sentiment:    points(-0.2, -0.2, 0, 0),
		Closes:       []float64{100, 101},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationBuy {
		t.Fatalf("expected buy, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.6) {
		t.Fatalf("expected confidence 0.6, got %f", rec.Confidence)
	}
	if rec.TimeFrame != models.TimeFrameMedium {
		t.Fatalf("expected medium-term, got %s", rec.TimeFrame)
	}
}

func TestRecommendDeterioratingMomentumSell(t *testing.T) {
	// avg +0.125, trend -0.35: positive but worsening
	rec := Recommend(Input{
		Symbol:       "MSFT",
		CurrentPrice: 100,
		Sentiment:    points(0.3, 0.3, 0, -0.1),
		Closes:       []float64{100, 100},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationSell {
		t.Fatalf("expected sell, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.675) {
		t.Fatalf("expected confidence 0.675, got %f", rec.Confidence)
	}
}

func TestRecommendMixedSentimentHold(t *testing.T) {
	rec := Recommend(Input{
		Symbol:       "AMZN",
		CurrentPrice: 100,
		Sentiment:    points(0.02, 0.02, 0.02, 0.02),
		Closes:       []float64{100, 100},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationHold {
		t.Fatalf("expected hold, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.5) {
		t.Fatalf("expected confidence 0.5, got %f", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "Mixed sentiment") {
		t.Fatalf("unexpected reason %q", rec.Reason)
	}
}

func TestRecommendNoSentimentShortCircuits(t *testing.T) {
	rec := Recommend(Input{Symbol: "GOOG"})

	if rec.Type != models.RecommendationHold {
		t.Fatalf("expected hold, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.5) {
		t.Fatalf("expected confidence 0.5, got %f", rec.Confidence)
	}
	if !strings.Contains(rec.Reason, "Insufficient live news for GOOG") {
		t.Fatalf("unexpected reason %q", rec.Reason)
	}
	if rec.Price != nil {
		t.Fatal("expected no price audit without price data")
	}
}

func TestRecommendSentimentOnlyFallback(t *testing.T) {
	rec := Recommend(Input{
		Symbol:       "META",
		Sentiment:    points(0.5, 0.5, 0.5, 0.5),
		HasPriceData: false,
	})

	if rec.Type != models.RecommendationBuy {
		t.Fatalf("expected buy, got %s", rec.Type)
	}
	// 0.5 + min(0.3, 0.5*0.3)
	if !almostEqual(rec.Confidence, 0.65) {
		t.Fatalf("expected confidence 0.65, got %f", rec.Confidence)
	}
	if rec.Price != nil {
		t.Fatal("expected no price audit without price data")
	}
}

func TestRecommendSentimentOnlyNeutral(t *testing.T) {
	rec := Recommend(Input{
		Symbol:       "INTC",
		Sentiment:    points(0.1, 0.1, 0.1, 0.1),
		HasPriceData: false,
	})

	if rec.Type != models.RecommendationHold {
		t.Fatalf("expected hold, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.5) {
		t.Fatalf("expected confidence 0.5, got %f", rec.Confidence)
	}
}

func TestRecommendConfidenceClamped(t *testing.T) {
	// avg 0.85 would push raw confidence to 0.925
	rec := Recommend(Input{
		Symbol:       "AMD",
		CurrentPrice: 110,
		Sentiment:    points(0.85, 0.85, 0.85, 0.85),
		Closes:       []float64{100, 110},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationBuy {
		t.Fatalf("expected buy, got %s", rec.Type)
	}
	if !almostEqual(rec.Confidence, 0.9) {
		t.Fatalf("expected clamped confidence 0.9, got %f", rec.Confidence)
	}
}

func TestRecommendFewPointsNoTrendSignal(t *testing.T) {
	// 3 points: trend stays 0, so the contrarian rule cannot fire
	rec := Recommend(Input{
		Symbol:       "NFLX",
		CurrentPrice: 100,
		Sentiment:    points(-0.1, -0.1, -0.1),
		Closes:       []float64{100, 100},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationHold {
		t.Fatalf("expected hold, got %s", rec.Type)
	}
	if rec.Sentiment.Trend != 0 {
		t.Fatalf("expected zero trend for 3 points, got %f", rec.Sentiment.Trend)
	}
}

func TestRecommendSortsUnorderedPoints(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	// Same data as the contrarian case, delivered newest-first
	pts := []SentimentPoint{
		{Compound: 0, PublishedAt: base.Add(3 * time.Hour)},
		{Compound: 0, PublishedAt: base.Add(2 * time.Hour)},
		{Compound: -0.2, PublishedAt: base.Add(1 * time.Hour)},
		{Compound: -0.2, PublishedAt: base},
	}

	rec := Recommend(Input{
		Symbol:       "NVDA",
		CurrentPrice: 101,
		Sentiment:    pts,
		Closes:       []float64{100, 101},
		HasPriceData: true,
	})

	if rec.Type != models.RecommendationBuy {
		t.Fatalf("expected buy after chronological sort, got %s", rec.Type)
	}
	if !almostEqual(rec.Sentiment.Trend, 0.2) {
		t.Fatalf("expected trend 0.2, got %f", rec.Sentiment.Trend)
	}
}
