package core

import (
	"errors"
	"testing"
)

func TestChartSeriesValidate(t *testing.T) {
	ok := ChartSeries{
		Labels: []string{"a", "b"},
		Points: []SeriesPoint{{Value: 1}, {Value: 2}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := ChartSeries{
		Labels: []string{"a"},
		Points: []SeriesPoint{{Value: 1}, {Value: 2}},
	}
	if err := bad.Validate(); !errors.Is(err, ErrSeriesShape) {
		t.Fatalf("got %v, want ErrSeriesShape", err)
	}

	var empty ChartSeries
	if err := empty.Validate(); err != nil {
		t.Fatalf("empty series is well formed, got %v", err)
	}
}

func TestChartSeriesTotalAndMax(t *testing.T) {
	s := ChartSeries{
		Labels: []string{"a", "b", "c"},
		Points: []SeriesPoint{{Value: 1.5}, {Value: 3}, {Value: 0.5}},
	}
	if got := s.Total(); got != 5 {
		t.Fatalf("Total = %v, want 5", got)
	}
	if got := s.Max(); got != 3 {
		t.Fatalf("Max = %v, want 3", got)
	}

	var empty ChartSeries
	if empty.Total() != 0 || empty.Max() != 0 {
		t.Fatalf("empty series should total and max to zero")
	}
}
