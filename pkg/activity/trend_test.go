package activity

import "testing"

func TestEstimateTrend(t *testing.T) {
	tests := []struct {
		name        string
		current     float64
		previous    float64
		hasPrevious bool
		want        Trend
	}{
		{"no previous score", 50, 0, false, TrendStable},
		{"grew past 10%", 111, 100, true, TrendIncreasing},
		{"dropped past 10%", 89, 100, true, TrendDecreasing},
		{"unchanged", 100, 100, true, TrendStable},
		{"within band above", 105, 100, true, TrendStable},
		{"within band below", 95, 100, true, TrendStable},
		{"exactly at upper bound", 110, 100, true, TrendStable},
		{"exactly at lower bound", 90, 100, true, TrendStable},
		{"from zero to anything", 5, 0, true, TrendIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTrend(tt.current, tt.previous, tt.hasPrevious); got != tt.want {
				t.Errorf("EstimateTrend(%v, %v, %v) = %v, want %v",
					tt.current, tt.previous, tt.hasPrevious, got, tt.want)
			}
		})
	}
}
