/**
 * @description
 * Top-N recommendation ranker.
 * Orders recommendations by the composite key (is-buy, confidence), both
 * descending, and truncates to a limit.
 */

package analysis

import (
	"sort"

	"github.com/stocksense-project/backend/internal/models"
)

// RankTop sorts recommendations by (is-buy desc, confidence desc) and returns
// the first limit entries. The sort is stable, so ties keep input order.
// An empty input yields an empty slice, never an error.
func RankTop(recs []*Recommendation, limit int) []*Recommendation {
	ranked := make([]*Recommendation, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		bi := ranked[i].Type == models.RecommendationBuy
		bj := ranked[j].Type == models.RecommendationBuy
		if bi != bj {
			return bi
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
