package sentiment

import (
	"math"
	"testing"
	"time"
)

func ts(t time.Time) *time.Time { return &t }

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil, time.Now()); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}

func TestAggregateSingleRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []ScoredRecord{{
		Compound:    0.6,
		Positive:    0.7,
		Neutral:     0.2,
		Negative:    0.1,
		Label:       LabelPositive,
		PublishedAt: ts(now.Add(-2 * time.Hour)),
	}}

	agg := Aggregate(records, now)
	if agg == nil {
		t.Fatal("expected a result for one record")
	}
	// A single record's weight normalizes to 1, so scores pass through
	if math.Abs(agg.Compound-0.6) > 1e-9 {
		t.Fatalf("expected compound 0.6, got %f", agg.Compound)
	}
	if agg.Label != LabelPositive {
		t.Fatalf("expected positive label, got %q", agg.Label)
	}
	if agg.DataPoints != 1 {
		t.Fatalf("expected 1 data point, got %d", agg.DataPoints)
	}
	if agg.Percentages[LabelPositive] != 100 {
		t.Fatalf("expected 100%% positive, got %f", agg.Percentages[LabelPositive])
	}
}

func TestAggregateRecentRecordsWeighHeavier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []ScoredRecord{
		{Compound: -0.8, Label: LabelNegative, PublishedAt: ts(now.Add(-72 * time.Hour))},
		{Compound: 0.8, Label: LabelPositive, PublishedAt: ts(now.Add(-1 * time.Hour))},
	}

	agg := Aggregate(records, now)

	// The 1h-old positive record carries far more weight than the 72h-old
	// negative one, so the weighted compound lands clearly positive.
	if agg.Compound <= 0 {
		t.Fatalf("expected positive weighted compound, got %f", agg.Compound)
	}
	if agg.Label != LabelPositive {
		t.Fatalf("expected positive label, got %q", agg.Label)
	}
}

func TestAggregateWeights(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []ScoredRecord{
		{Compound: 1, Label: LabelPositive, PublishedAt: ts(now.Add(-1 * time.Hour))},
		{Compound: 0, Label: LabelNeutral, PublishedAt: ts(now.Add(-3 * time.Hour))},
	}

	// raw weights: 1/(1+1)=0.5 and 1/(1+3)=0.25; normalized: 2/3 and 1/3
	agg := Aggregate(records, now)
	if math.Abs(agg.Compound-2.0/3.0) > 1e-9 {
		t.Fatalf("expected weighted compound 2/3, got %f", agg.Compound)
	}
}

func TestAggregateFallsBackToMeanWithoutTimestamps(t *testing.T) {
	now := time.Now()
	records := []ScoredRecord{
		{Compound: 0.4, Label: LabelPositive, PublishedAt: ts(now.Add(-1 * time.Hour))},
		{Compound: -0.2, Label: LabelNegative, PublishedAt: nil},
	}

	agg := Aggregate(records, now)
	if math.Abs(agg.Compound-0.1) > 1e-9 {
		t.Fatalf("expected arithmetic mean 0.1, got %f", agg.Compound)
	}
}

func TestAggregateCountsAndPercentages(t *testing.T) {
	now := time.Now()
	records := []ScoredRecord{
		{Compound: 0.5, Label: LabelPositive},
		{Compound: 0.3, Label: LabelPositive},
		{Compound: -0.5, Label: LabelNegative},
		{Compound: 0, Label: LabelNeutral},
	}

	agg := Aggregate(records, now)
	if agg.Counts[LabelPositive] != 2 || agg.Counts[LabelNegative] != 1 || agg.Counts[LabelNeutral] != 1 {
		t.Fatalf("unexpected counts: %+v", agg.Counts)
	}
	if agg.Percentages[LabelPositive] != 50 {
		t.Fatalf("expected 50%% positive, got %f", agg.Percentages[LabelPositive])
	}
	if agg.DataPoints != 4 {
		t.Fatalf("expected 4 data points, got %d", agg.DataPoints)
	}
}

func TestAggregateFutureTimestampClampedToZeroAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []ScoredRecord{
		{Compound: 0.4, Label: LabelPositive, PublishedAt: ts(now.Add(30 * time.Minute))},
		{Compound: 0.4, Label: LabelPositive, PublishedAt: ts(now)},
	}

	// Both records get age 0, so weights are equal and the mean is exact
	agg := Aggregate(records, now)
	if math.Abs(agg.Compound-0.4) > 1e-9 {
		t.Fatalf("expected compound 0.4, got %f", agg.Compound)
	}
}
