package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// DailySeriesColor is the line/bar color of the daily spending chart.
const DailySeriesColor = "#10B981"

// CategoryPieSeries converts category totals into a chart series sorted
// by amount descending, largest slice first. Ties keep the canonical
// category order. Colors and labels come from the category metadata
// table; the renderer itself never sorts.
func CategoryPieSeries(totals map[core.Category]core.Money) core.ChartSeries {
	ordered := make([]core.Category, 0, len(totals))
	for _, c := range core.Categories() {
		if _, ok := totals[c]; ok {
			ordered = append(ordered, c)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return totals[ordered[i]].Cents > totals[ordered[j]].Cents
	})

	series := core.ChartSeries{
		Labels: make([]string, len(ordered)),
		Points: make([]core.SeriesPoint, len(ordered)),
	}
	for i, c := range ordered {
		info := c.Info()
		series.Labels[i] = info.Label
		series.Points[i] = core.SeriesPoint{
			Value: totals[c].Float(),
			Color: info.Color,
		}
	}
	return series
}

// DailySpendingSeries converts seven day buckets into a chart series with
// short weekday labels, suitable for the bar and line charts.
func DailySpendingSeries(days []DayTotal) core.ChartSeries {
	series := core.ChartSeries{
		Labels: make([]string, len(days)),
		Points: make([]core.SeriesPoint, len(days)),
	}
	for i, d := range days {
		series.Labels[i] = d.Date.Format("Mon")
		series.Points[i] = core.SeriesPoint{
			Value: d.Total.Float(),
			Color: DailySeriesColor,
		}
	}
	return series
}
