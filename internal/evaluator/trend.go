package evaluator

import "math"

// Trend labels goal progress movement.
type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendDeclining Trend = "Declining"
	TrendStable    Trend = "Stable"
	TrendNoData    Trend = "No data"
)

// trendThreshold is the half-over-half change in mean progress needed to
// leave Stable.
const trendThreshold = 5.0

// GoalTrend is the classification of a chronological progress series.
// Average is nil when there are no points.
type GoalTrend struct {
	Average *int  `json:"average"`
	Trend   Trend `json:"trend"`
	Points  int   `json:"points"`
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ClassifyTrend compares the mean of the second half of values against the
// first half. For odd lengths the middle value belongs to the second half.
func ClassifyTrend(values []float64) GoalTrend {
	result := GoalTrend{Trend: TrendNoData, Points: len(values)}
	if len(values) == 0 {
		return result
	}

	avg := int(math.Round(mean(values)))
	result.Average = &avg
	if len(values) < 2 {
		return result
	}

	mid := len(values) / 2
	delta := mean(values[mid:]) - mean(values[:mid])
	switch {
	case delta > trendThreshold:
		result.Trend = TrendImproving
	case delta < -trendThreshold:
		result.Trend = TrendDeclining
	default:
		result.Trend = TrendStable
	}
	return result
}
