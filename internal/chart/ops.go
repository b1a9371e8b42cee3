// Package chart turns chart-ready series into drawing instructions for a
// raster surface. Rendering is split in two: Render computes a pure
// instruction list from (series, kind, dimensions), and Rasterize
// executes such a list onto an RGBA canvas. The split keeps the geometry
// testable without any real canvas.
package chart

// Kind selects the chart type.
type Kind string

const (
	Pie  Kind = "pie"
	Bar  Kind = "bar"
	Line Kind = "line"
)

// Valid reports whether k is a known chart kind.
func (k Kind) Valid() bool {
	switch k {
	case Pie, Bar, Line:
		return true
	}
	return false
}

// Dimensions is the target surface size in pixels. Height is fixed by
// the caller; width follows the enclosing layout.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OpType discriminates drawing instructions.
type OpType string

const (
	OpClear    OpType = "clear"    // clear the rect X,Y,W,H
	OpSlice    OpType = "slice"    // fill a pie wedge at CX,CY radius R from Start spanning Span radians
	OpRect     OpType = "rect"     // fill the rect X,Y,W,H
	OpPolyline OpType = "polyline" // stroke Points in order with Width
	OpCircle   OpType = "circle"   // fill a circle at CX,CY radius R
	OpText     OpType = "text"     // draw Text anchored at X,Y
)

// Point is a 2D coordinate in surface space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op is a single drawing instruction. Only the fields relevant to its
// Type are set; the zero values of the rest are ignored by executors.
type Op struct {
	Type OpType `json:"type"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	CX    float64 `json:"cx,omitempty"`
	CY    float64 `json:"cy,omitempty"`
	R     float64 `json:"r,omitempty"`
	Start float64 `json:"start,omitempty"`
	Span  float64 `json:"span,omitempty"`

	Points []Point `json:"points,omitempty"`
	Width  float64 `json:"width,omitempty"`

	Text     string  `json:"text,omitempty"`
	Size     float64 `json:"size,omitempty"`
	Align    string  `json:"align,omitempty"`
	Baseline string  `json:"baseline,omitempty"`

	Color string `json:"color,omitempty"`
}
