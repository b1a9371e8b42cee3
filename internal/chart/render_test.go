package chart

import (
	"errors"
	"math"
	"testing"

	"fintrack/internal/core"
)

var testDims = Dimensions{Width: 600, Height: 300}

func opsOfType(ops []Op, t OpType) []Op {
	var out []Op
	for _, op := range ops {
		if op.Type == t {
			out = append(out, op)
		}
	}
	return out
}

func series(values ...float64) core.ChartSeries {
	s := core.ChartSeries{
		Labels: make([]string, len(values)),
		Points: make([]core.SeriesPoint, len(values)),
	}
	for i, v := range values {
		s.Labels[i] = string(rune('a' + i))
		s.Points[i] = core.SeriesPoint{Value: v, Color: "#3B82F6"}
	}
	return s
}

func TestRenderClearsFirst(t *testing.T) {
	for _, kind := range []Kind{Pie, Bar, Line} {
		ops, err := Render(series(1, 2, 3), kind, testDims)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if len(ops) == 0 || ops[0].Type != OpClear {
			t.Fatalf("%s: first op must clear, got %+v", kind, ops[0])
		}
		if ops[0].W != testDims.Width || ops[0].H != testDims.Height {
			t.Fatalf("%s: clear must cover the full surface", kind)
		}
	}
}

func TestRenderRejectsMalformedSeries(t *testing.T) {
	bad := core.ChartSeries{Labels: []string{"a"}, Points: nil}
	if _, err := Render(bad, Pie, testDims); !errors.Is(err, core.ErrSeriesShape) {
		t.Fatalf("got %v, want ErrSeriesShape", err)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Render(series(1), Kind("scatter"), testDims); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRenderPieSpans(t *testing.T) {
	ops, err := Render(series(1, 1, 2), Pie, testDims)
	if err != nil {
		t.Fatal(err)
	}
	slices := opsOfType(ops, OpSlice)
	if len(slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(slices))
	}

	const eps = 1e-9
	wantSpans := []float64{math.Pi / 2, math.Pi / 2, math.Pi}
	start := 0.0
	for i, s := range slices {
		if math.Abs(s.Span-wantSpans[i]) > eps {
			t.Fatalf("slice %d span = %v, want %v", i, s.Span, wantSpans[i])
		}
		if math.Abs(s.Start-start) > eps {
			t.Fatalf("slice %d start = %v, want %v (no gaps)", i, s.Start, start)
		}
		start += s.Span
	}
	if math.Abs(start-2*math.Pi) > eps {
		t.Fatalf("slices must partition the full turn, total %v", start)
	}

	// Geometry is centered with a fixed inset from the nearest edge.
	wantR := math.Min(testDims.Width/2, testDims.Height/2) - 20
	if slices[0].CX != testDims.Width/2 || slices[0].CY != testDims.Height/2 || slices[0].R != wantR {
		t.Fatalf("slice geometry = (%v,%v,%v)", slices[0].CX, slices[0].CY, slices[0].R)
	}
}

func TestRenderPieZeroTotal(t *testing.T) {
	ops, err := Render(series(0, 0, 0), Pie, testDims)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range opsOfType(ops, OpSlice) {
		if s.Span != 0 {
			t.Fatalf("zero total should yield zero-span slices, got %v", s.Span)
		}
	}
	if labels := opsOfType(ops, OpText); len(labels) != 0 {
		t.Fatalf("zero-span slices must not be labeled, got %d labels", len(labels))
	}
}

func TestRenderPieLabelGating(t *testing.T) {
	// All shares well above the thresholds: every slice is labeled.
	ops, _ := Render(series(1, 1, 2), Pie, testDims)
	if labels := opsOfType(ops, OpText); len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	// A 3% slice fails both the angular and the share threshold.
	ops, _ = Render(series(97, 3), Pie, testDims)
	labels := opsOfType(ops, OpText)
	if len(labels) != 1 {
		t.Fatalf("expected only the dominant slice labeled, got %d", len(labels))
	}
	if labels[0].Text != "a" {
		t.Fatalf("labeled slice = %q, want %q", labels[0].Text, "a")
	}
}

func TestRenderPieLabelPlacement(t *testing.T) {
	ops, _ := Render(series(1), Pie, testDims)
	labels := opsOfType(ops, OpText)
	if len(labels) != 1 {
		t.Fatalf("single slice should be labeled, got %d", len(labels))
	}
	l := labels[0]

	// Mid angle of a full-turn slice is pi; the label sits at 0.7r.
	cx, cy := testDims.Width/2, testDims.Height/2
	r := math.Min(cx, cy) - 20
	wantX := cx + math.Cos(math.Pi)*r*0.7
	wantY := cy + math.Sin(math.Pi)*r*0.7
	if math.Abs(l.X-wantX) > 1e-9 || math.Abs(l.Y-wantY) > 1e-9 {
		t.Fatalf("label at (%v,%v), want (%v,%v)", l.X, l.Y, wantX, wantY)
	}
	if l.Align != "center" || l.Baseline != "middle" {
		t.Fatalf("slice labels anchor center/middle, got %s/%s", l.Align, l.Baseline)
	}
}

func TestRenderBarScaling(t *testing.T) {
	ops, err := Render(series(5, 10), Bar, testDims)
	if err != nil {
		t.Fatal(err)
	}
	bars := opsOfType(ops, OpRect)
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}

	plotW := testDims.Width - 40 - 20
	plotH := testDims.Height - 20 - 30
	baseY := testDims.Height - 30
	slot := plotW / 2

	const eps = 1e-9
	if math.Abs(bars[0].W-slot*0.8) > eps {
		t.Fatalf("bar width = %v, want %v", bars[0].W, slot*0.8)
	}
	if math.Abs(bars[0].X-(40+slot*0.1)) > eps {
		t.Fatalf("bar x = %v, want %v", bars[0].X, 40+slot*0.1)
	}

	// Largest value reaches 1/1.1 of the plot height.
	wantH := 10.0 / (10 * 1.1) * plotH
	if math.Abs(bars[1].H-wantH) > eps {
		t.Fatalf("tall bar height = %v, want %v", bars[1].H, wantH)
	}
	if math.Abs(bars[1].Y-(baseY-wantH)) > eps {
		t.Fatalf("tall bar y = %v", bars[1].Y)
	}
	if math.Abs(bars[0].H-wantH/2) > eps {
		t.Fatalf("bars must scale linearly: %v vs %v", bars[0].H, wantH/2)
	}
}

func TestRenderBarZeroValues(t *testing.T) {
	ops, err := Render(series(0, 0, 0), Bar, testDims)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range opsOfType(ops, OpRect) {
		if b.H != 0 {
			t.Fatalf("zero value bar height = %v", b.H)
		}
	}
	// Axis labels remain; value labels are suppressed on short bars.
	texts := opsOfType(ops, OpText)
	if len(texts) != 3 {
		t.Fatalf("expected 3 axis labels only, got %d texts", len(texts))
	}
	for _, txt := range texts {
		if txt.Baseline != "top" {
			t.Fatalf("axis labels sit below the baseline, got %q", txt.Baseline)
		}
	}
}

func TestRenderBarValueLabels(t *testing.T) {
	ops, _ := Render(series(100), Bar, testDims)
	var valueLabels int
	for _, txt := range opsOfType(ops, OpText) {
		if txt.Baseline == "bottom" {
			valueLabels++
			if txt.Text != "100" {
				t.Fatalf("value label = %q, want 100", txt.Text)
			}
		}
	}
	if valueLabels != 1 {
		t.Fatalf("tall bar should carry a value label, got %d", valueLabels)
	}
}

func TestRenderLineSpacing(t *testing.T) {
	ops, err := Render(series(1, 2, 3), Line, testDims)
	if err != nil {
		t.Fatal(err)
	}
	markers := opsOfType(ops, OpCircle)
	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(markers))
	}

	plotW := testDims.Width - 40 - 20
	const eps = 1e-9
	for i, m := range markers {
		wantX := 40 + float64(i)/2*plotW
		if math.Abs(m.CX-wantX) > eps {
			t.Fatalf("marker %d x = %v, want %v", i, m.CX, wantX)
		}
		if m.R != 4 {
			t.Fatalf("marker radius = %v, want 4", m.R)
		}
	}

	lines := opsOfType(ops, OpPolyline)
	if len(lines) != 2 {
		t.Fatalf("expected axes plus one connecting line, got %d", len(lines))
	}
	connect := lines[1]
	if len(connect.Points) != 3 || connect.Width != 2 {
		t.Fatalf("connecting line = %+v", connect)
	}
	if connect.Color != "#3B82F6" {
		t.Fatalf("line stroke should take the first point color, got %q", connect.Color)
	}
}

func TestRenderLineSinglePoint(t *testing.T) {
	ops, err := Render(series(5), Line, testDims)
	if err != nil {
		t.Fatal(err)
	}
	markers := opsOfType(ops, OpCircle)
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	if markers[0].CX != 40 {
		t.Fatalf("single point sits at the left plot edge, got %v", markers[0].CX)
	}
}

func TestRenderEmptySeries(t *testing.T) {
	for _, kind := range []Kind{Pie, Bar, Line} {
		ops, err := Render(core.ChartSeries{}, kind, testDims)
		if err != nil {
			t.Fatalf("%s: empty series should render, got %v", kind, err)
		}
		if ops[0].Type != OpClear {
			t.Fatalf("%s: still clears on empty data", kind)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := series(3, 1, 4, 1, 5)
	a, _ := Render(s, Bar, testDims)
	b, _ := Render(s, Bar, testDims)
	if len(a) != len(b) {
		t.Fatalf("re-render changed op count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].X != b[i].X || a[i].H != b[i].H {
			t.Fatalf("op %d differs between renders", i)
		}
	}
}

func TestScaleMax(t *testing.T) {
	if got := scaleMax(series(0, 0, 0)); got != 10 {
		t.Fatalf("all-zero series scale = %v, want fallback 10", got)
	}
	if got := scaleMax(series(5, 100, 20)); math.Abs(got-110) > 1e-9 {
		t.Fatalf("scale = %v, want 110", got)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(12); got != "12" {
		t.Fatalf("formatValue(12) = %q", got)
	}
	if got := formatValue(12.5); got != "12.50" {
		t.Fatalf("formatValue(12.5) = %q", got)
	}
}
