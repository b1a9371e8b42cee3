package core

import "errors"

// SeriesPoint is one value of a chart series with its display color.
type SeriesPoint struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ChartSeries is the chart-ready shape consumed by the renderer: an
// ordered label sequence and a value sequence of the same length, matched
// positionally.
type ChartSeries struct {
	Labels []string      `json:"labels"`
	Points []SeriesPoint `json:"points"`
}

var ErrSeriesShape = errors.New("chart series labels and points differ in length")

// Validate checks the positional-correspondence invariant.
func (s ChartSeries) Validate() error {
	if len(s.Labels) != len(s.Points) {
		return ErrSeriesShape
	}
	return nil
}

// Total returns the sum of all point values.
func (s ChartSeries) Total() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

// Max returns the largest point value, or 0 for an empty series.
func (s ChartSeries) Max() float64 {
	var max float64
	for _, p := range s.Points {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}
