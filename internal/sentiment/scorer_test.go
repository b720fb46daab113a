package sentiment

import "testing"

func TestScoreBlankInput(t *testing.T) {
	scorer := NewScorer()

	for _, text := range []string{"", "   ", "\n\t"} {
		if got := scorer.Score(text); got != nil {
			t.Fatalf("Score(%q) = %+v, want nil", text, got)
		}
	}
}

func TestScoreLabelMatchesCompound(t *testing.T) {
	scorer := NewScorer()

	texts := []string{
		"Company reports record earnings, stock soars on great results",
		"Massive losses and layoffs, the outlook is terrible",
		"The quarterly report was released on Tuesday",
		"Strong growth but serious regulatory concerns remain",
	}

	for _, text := range texts {
		result := scorer.Score(text)
		if result == nil {
			t.Fatalf("Score(%q) returned nil", text)
		}
		if result.Label != LabelFor(result.Compound) {
			t.Fatalf("label %q does not match compound %f for %q", result.Label, result.Compound, text)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer()
	text := "Shares jumped after the excellent earnings beat"

	first := scorer.Score(text)
	second := scorer.Score(text)
	if first.Compound != second.Compound || first.Label != second.Label {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		compound float64
		want     Label
	}{
		{0.5, LabelPositive},
		{0.05, LabelPositive},
		{0.049, LabelNeutral},
		{0, LabelNeutral},
		{-0.049, LabelNeutral},
		{-0.05, LabelNegative},
		{-0.8, LabelNegative},
	}

	for _, tt := range tests {
		if got := LabelFor(tt.compound); got != tt.want {
			t.Fatalf("LabelFor(%f) = %q, want %q", tt.compound, got, tt.want)
		}
	}
}
