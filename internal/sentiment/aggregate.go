/**
 * @description
 * Sentiment aggregator.
 * Combines multiple scored records into one summary using recency-weighted
 * averaging: each record's weight is inversely proportional to its age.
 *
 * @notes
 * - This is intentionally a distinct operation from the recommendation
 *   engine's simple mean; the two serve different call paths.
 */

package sentiment

import "time"

// ScoredRecord is one input data point for aggregation
type ScoredRecord struct {
	Compound    float64
	Positive    float64
	Neutral     float64
	Negative    float64
	Label       Label
	PublishedAt *time.Time
}

// AggregateResult summarizes a collection of scored records
type AggregateResult struct {
	Compound    float64           `json:"compound_score"`
	Positive    float64           `json:"positive_score"`
	Neutral     float64           `json:"neutral_score"`
	Negative    float64           `json:"negative_score"`
	Label       Label             `json:"sentiment_label"`
	Counts      map[Label]int     `json:"sentiment_counts"`
	Percentages map[Label]float64 `json:"sentiment_percentages"`
	DataPoints  int               `json:"data_points"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Aggregate combines records into one summary relative to `now`.
// Records with timestamps are weighted by 1/(1+age_hours), normalized;
// if any record lacks a timestamp, a plain arithmetic mean is used instead.
// Returns nil on empty input.
func Aggregate(records []ScoredRecord, now time.Time) *AggregateResult {
	if len(records) == 0 {
		return nil
	}

	weights := recencyWeights(records, now)

	agg := &AggregateResult{
		Counts:     map[Label]int{},
		DataPoints: len(records),
		Timestamp:  now,
	}

	for i, r := range records {
		w := weights[i]
		agg.Compound += r.Compound * w
		agg.Positive += r.Positive * w
		agg.Neutral += r.Neutral * w
		agg.Negative += r.Negative * w
		agg.Counts[r.Label]++
	}

	agg.Label = LabelFor(agg.Compound)

	total := float64(len(records))
	agg.Percentages = map[Label]float64{
		LabelPositive: float64(agg.Counts[LabelPositive]) / total * 100,
		LabelNeutral:  float64(agg.Counts[LabelNeutral]) / total * 100,
		LabelNegative: float64(agg.Counts[LabelNegative]) / total * 100,
	}

	return agg
}

// recencyWeights returns normalized weights summing to 1. Falls back to
// uniform weights (arithmetic mean) when any record has no timestamp.
func recencyWeights(records []ScoredRecord, now time.Time) []float64 {
	weights := make([]float64, len(records))

	uniform := false
	for _, r := range records {
		if r.PublishedAt == nil || r.PublishedAt.IsZero() {
			uniform = true
			break
		}
	}

	if uniform {
		w := 1.0 / float64(len(records))
		for i := range weights {
			weights[i] = w
		}
		return weights
	}

	sum := 0.0
	for i, r := range records {
		ageHours := now.Sub(*r.PublishedAt).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
		weights[i] = 1 / (1 + ageHours)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}
