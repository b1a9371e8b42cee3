package chart

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// Layout constants shared by the chart kinds. The padding insets reserve
// room for axis labels on bar and line charts.
const (
	padTop    = 20.0
	padRight  = 20.0
	padBottom = 30.0
	padLeft   = 40.0

	pieInset          = 20.0 // gap between pie edge and surface edge
	pieLabelRadius    = 0.7  // label distance as a fraction of the radius
	pieMinLabelSpan   = 0.2  // radians below which a slice gets no label
	pieMinLabelShare  = 0.05 // share below which a slice gets no label
	barSlotFill       = 0.8  // bar width as a fraction of its slot
	barMinLabelHeight = 20.0 // px below which a bar gets no value label
	scaleHeadroom     = 1.1  // scale maximum relative to the largest value
	fallbackScaleMax  = 10.0 // scale maximum when every value is zero
	markerRadius      = 4.0

	axisColor      = "#ccc"
	axisLabelColor = "#888"
	valueColor     = "#333"
	sliceTextColor = "#fff"
	fallbackColor  = "#ccc"
	fallbackStroke = "#3b82f6"
)

// Render computes the drawing instructions for one redraw. The first
// instruction always clears the full surface, so re-rendering on data or
// kind change is idempotent. Render holds no state between calls.
func Render(series core.ChartSeries, kind Kind, dims Dimensions) ([]Op, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	ops := []Op{{Type: OpClear, W: dims.Width, H: dims.Height}}
	switch kind {
	case Pie:
		return renderPie(ops, series, dims), nil
	case Bar:
		return renderBar(ops, series, dims), nil
	case Line:
		return renderLine(ops, series, dims), nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}

// renderPie partitions a full turn proportionally to each value's share
// of the series total, in series order starting at angle 0 with no gaps.
// The caller controls visual order by pre-sorting the series.
func renderPie(ops []Op, series core.ChartSeries, dims Dimensions) []Op {
	cx := dims.Width / 2
	cy := dims.Height / 2
	radius := math.Min(cx, cy) - pieInset

	// A zero total would divide by zero; treating it as 1 yields only
	// zero-span slices, i.e. nothing visible.
	total := series.Total()
	if total == 0 {
		total = 1
	}

	start := 0.0
	for i, p := range series.Points {
		span := p.Value / total * 2 * math.Pi

		ops = append(ops, Op{
			Type:  OpSlice,
			CX:    cx,
			CY:    cy,
			R:     radius,
			Start: start,
			Span:  span,
			Color: colorOr(p.Color, fallbackColor),
		})

		// Thin slices get no label: both the angular span and the
		// proportional share must clear their thresholds.
		if span > pieMinLabelSpan && p.Value/total > pieMinLabelShare {
			mid := start + span/2
			ops = append(ops, Op{
				Type:     OpText,
				X:        cx + math.Cos(mid)*radius*pieLabelRadius,
				Y:        cy + math.Sin(mid)*radius*pieLabelRadius,
				Text:     series.Labels[i],
				Color:    sliceTextColor,
				Size:     12,
				Align:    "center",
				Baseline: "middle",
			})
		}

		start += span
	}
	return ops
}

// scaleMax returns the y-axis maximum: 10% headroom over the largest
// value, or a fixed fallback when every value is zero.
func scaleMax(series core.ChartSeries) float64 {
	max := series.Max() * scaleHeadroom
	if max == 0 {
		return fallbackScaleMax
	}
	return max
}

func axes(dims Dimensions) Op {
	return Op{
		Type: OpPolyline,
		Points: []Point{
			{X: padLeft, Y: padTop},
			{X: padLeft, Y: dims.Height - padBottom},
			{X: dims.Width - padRight, Y: dims.Height - padBottom},
		},
		Color: axisColor,
		Width: 1,
	}
}

// renderBar scales bar heights linearly against the headroom maximum.
// Each bar fills 80% of its slot, with the remaining 20% as gap.
func renderBar(ops []Op, series core.ChartSeries, dims Dimensions) []Op {
	plotW := dims.Width - padLeft - padRight
	plotH := dims.Height - padTop - padBottom
	baseY := dims.Height - padBottom

	n := len(series.Points)
	if n == 0 {
		return append(ops, axes(dims))
	}
	slot := plotW / float64(n)
	barW := slot * barSlotFill
	gap := slot * (1 - barSlotFill)
	max := scaleMax(series)

	ops = append(ops, axes(dims))

	for i, p := range series.Points {
		barH := p.Value / max * plotH
		x := padLeft + float64(i)*slot + gap/2
		y := baseY - barH

		ops = append(ops, Op{
			Type:  OpRect,
			X:     x,
			Y:     y,
			W:     barW,
			H:     barH,
			Color: colorOr(p.Color, fallbackColor),
		})

		ops = append(ops, Op{
			Type:     OpText,
			X:        x + barW/2,
			Y:        baseY + 5,
			Text:     series.Labels[i],
			Color:    axisLabelColor,
			Size:     10,
			Align:    "center",
			Baseline: "top",
		})

		// Value labels on short bars would collide with the axis.
		if barH > barMinLabelHeight {
			ops = append(ops, Op{
				Type:     OpText,
				X:        x + barW/2,
				Y:        y,
				Text:     formatValue(p.Value),
				Color:    valueColor,
				Size:     10,
				Align:    "center",
				Baseline: "bottom",
			})
		}
	}
	return ops
}

// renderLine places points at evenly spaced x positions spanning the
// plot edge to edge, draws a circular marker at each and connects them
// in label order, never sorted by value.
func renderLine(ops []Op, series core.ChartSeries, dims Dimensions) []Op {
	plotW := dims.Width - padLeft - padRight
	plotH := dims.Height - padTop - padBottom
	baseY := dims.Height - padBottom

	n := len(series.Points)
	ops = append(ops, axes(dims))
	if n == 0 {
		return ops
	}
	max := scaleMax(series)

	points := make([]Point, n)
	for i, p := range series.Points {
		x := padLeft
		if n > 1 {
			x = padLeft + float64(i)/float64(n-1)*plotW
		}
		points[i] = Point{X: x, Y: baseY - p.Value/max*plotH}
	}

	for i, pt := range points {
		ops = append(ops, Op{
			Type:  OpCircle,
			CX:    pt.X,
			CY:    pt.Y,
			R:     markerRadius,
			Color: colorOr(series.Points[i].Color, fallbackColor),
		})
		ops = append(ops, Op{
			Type:     OpText,
			X:        pt.X,
			Y:        baseY + 5,
			Text:     series.Labels[i],
			Color:    axisLabelColor,
			Size:     10,
			Align:    "center",
			Baseline: "top",
		})
	}

	stroke := fallbackStroke
	if series.Points[0].Color != "" {
		stroke = series.Points[0].Color
	}
	ops = append(ops, Op{
		Type:   OpPolyline,
		Points: points,
		Color:  stroke,
		Width:  2,
	})
	return ops
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
