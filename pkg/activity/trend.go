package activity

// Trend classifies how a user's activity score moved between runs.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// EstimateTrend compares the current score against the previous run's score.
// Movement within ±10% of the previous score counts as stable. With no
// previous score there is nothing to compare against.
func EstimateTrend(current, previous float64, hasPrevious bool) Trend {
	if !hasPrevious {
		return TrendStable
	}
	if current > previous*1.1 {
		return TrendIncreasing
	}
	if current < previous*0.9 {
		return TrendDecreasing
	}
	return TrendStable
}
