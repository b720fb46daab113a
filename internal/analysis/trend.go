/**
 * @description
 * Price trend extraction over a historical window of daily closes.
 */

package analysis

// PriceChangePct computes the percentage change between the first and last
// close of a chronologically ordered series.
// Fewer than 2 data points yields 0 (flat), not an error: unknown history is
// deliberately treated the same as no movement.
func PriceChangePct(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	first := closes[0]
	last := closes[len(closes)-1]
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
