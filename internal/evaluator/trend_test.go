package evaluator

import "testing"

func TestClassifyTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   Trend
	}{
		{name: "improving", values: []float64{50, 50, 50, 80, 80, 80}, want: TrendImproving},
		{name: "declining", values: []float64{80, 80, 80, 50, 50, 50}, want: TrendDeclining},
		{name: "stable", values: []float64{60, 62, 59, 61}, want: TrendStable},
		{name: "single point", values: []float64{70}, want: TrendNoData},
		{name: "empty", values: nil, want: TrendNoData},
		{name: "exactly five is stable", values: []float64{50, 55}, want: TrendStable},
		{name: "odd length middle in second half", values: []float64{50, 58, 58}, want: TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyTrend(tt.values); got.Trend != tt.want {
				t.Fatalf("ClassifyTrend(%v) = %q, want %q", tt.values, got.Trend, tt.want)
			}
		})
	}
}

func TestClassifyTrendAverage(t *testing.T) {
	t.Parallel()

	if got := ClassifyTrend(nil); got.Average != nil {
		t.Fatalf("Average of empty = %d, want nil", *got.Average)
	}
	got := ClassifyTrend([]float64{70})
	if got.Average == nil || *got.Average != 70 {
		t.Fatalf("Average of [70] = %v, want 70", got.Average)
	}
	got = ClassifyTrend([]float64{60, 61})
	if got.Average == nil || *got.Average != 61 {
		t.Fatalf("Average of [60 61] = %v, want 61", got.Average)
	}
	if got.Points != 2 {
		t.Fatalf("Points = %d, want 2", got.Points)
	}
}
