package analysis

import (
	"testing"

	"github.com/stocksense-project/backend/internal/models"
)

func rec(symbol string, typ models.RecommendationType, confidence float64) *Recommendation {
	return &Recommendation{Symbol: symbol, Type: typ, Confidence: confidence}
}

func TestRankTopBuysBeforeHigherConfidenceSells(t *testing.T) {
	recs := []*Recommendation{
		rec("A", models.RecommendationSell, 0.95),
		rec("B", models.RecommendationBuy, 0.8),
		rec("C", models.RecommendationHold, 0.6),
		rec("D", models.RecommendationBuy, 0.9),
		rec("E", models.RecommendationBuy, 0.7),
	}

	top := RankTop(recs, 2)

	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Symbol != "D" || top[1].Symbol != "B" {
		t.Fatalf("unexpected order: %s, %s", top[0].Symbol, top[1].Symbol)
	}
}

func TestRankTopNonBuysOrderedByConfidence(t *testing.T) {
	recs := []*Recommendation{
		rec("A", models.RecommendationHold, 0.5),
		rec("B", models.RecommendationSell, 0.9),
		rec("C", models.RecommendationBuy, 0.6),
	}

	top := RankTop(recs, 3)

	if top[0].Symbol != "C" {
		t.Fatalf("expected the buy first, got %s", top[0].Symbol)
	}
	if top[1].Symbol != "B" || top[2].Symbol != "A" {
		t.Fatalf("unexpected tail order: %s, %s", top[1].Symbol, top[2].Symbol)
	}
}

func TestRankTopStableOnTies(t *testing.T) {
	recs := []*Recommendation{
		rec("A", models.RecommendationBuy, 0.8),
		rec("B", models.RecommendationBuy, 0.8),
	}

	top := RankTop(recs, 2)
	if top[0].Symbol != "A" || top[1].Symbol != "B" {
		t.Fatalf("tie broke input order: %s, %s", top[0].Symbol, top[1].Symbol)
	}
}

func TestRankTopSkipsNilAndHandlesShortInput(t *testing.T) {
	recs := []*Recommendation{
		nil,
		rec("A", models.RecommendationHold, 0.5),
		nil,
	}

	top := RankTop(recs, 5)
	if len(top) != 1 || top[0].Symbol != "A" {
		t.Fatalf("unexpected result: %+v", top)
	}

	if got := RankTop(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %d", len(got))
	}
}
