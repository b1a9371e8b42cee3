package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// arcStep is the angular resolution used when approximating arcs and
// circles with line segments.
const arcStep = 0.02

// Rasterize executes a drawing instruction list onto a fresh RGBA
// surface of the given dimensions.
func Rasterize(ops []Op, dims Dimensions) *image.RGBA {
	w := int(math.Ceil(dims.Width))
	h := int(math.Ceil(dims.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for _, op := range ops {
		switch op.Type {
		case OpClear:
			draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
		case OpSlice:
			fillSlice(img, op)
		case OpRect:
			fillRect(img, op)
		case OpCircle:
			fillCircle(img, op)
		case OpPolyline:
			strokePolyline(img, op)
		case OpText:
			drawText(img, op)
		}
	}
	return img
}

// EncodePNG renders the instruction list and writes it as PNG.
func EncodePNG(w io.Writer, ops []Op, dims Dimensions) error {
	if err := png.Encode(w, Rasterize(ops, dims)); err != nil {
		return fmt.Errorf("encode chart png: %w", err)
	}
	return nil
}

func fillSlice(img *image.RGBA, op Op) {
	if op.Span <= 0 {
		return
	}
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(float32(op.CX), float32(op.CY))
	for a := 0.0; a <= op.Span; a += arcStep {
		angle := op.Start + a
		r.LineTo(
			float32(op.CX+math.Cos(angle)*op.R),
			float32(op.CY+math.Sin(angle)*op.R),
		)
	}
	end := op.Start + op.Span
	r.LineTo(float32(op.CX+math.Cos(end)*op.R), float32(op.CY+math.Sin(end)*op.R))
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(parseColor(op.Color)), image.Point{})
}

func fillRect(img *image.RGBA, op Op) {
	if op.W <= 0 || op.H <= 0 {
		return
	}
	rect := image.Rect(int(op.X), int(op.Y), int(math.Ceil(op.X+op.W)), int(math.Ceil(op.Y+op.H)))
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(parseColor(op.Color)), image.Point{}, draw.Over)
}

func fillCircle(img *image.RGBA, op Op) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(float32(op.CX+op.R), float32(op.CY))
	for a := arcStep; a < 2*math.Pi; a += arcStep {
		r.LineTo(
			float32(op.CX+math.Cos(a)*op.R),
			float32(op.CY+math.Sin(a)*op.R),
		)
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(parseColor(op.Color)), image.Point{})
}

// strokePolyline draws each segment as a filled quad of the stroke
// width. Joints are left unmitered, which is invisible at the 1-2 px
// widths the charts use.
func strokePolyline(img *image.RGBA, op Op) {
	if len(op.Points) < 2 {
		return
	}
	width := op.Width
	if width <= 0 {
		width = 1
	}
	src := image.NewUniform(parseColor(op.Color))
	for i := 1; i < len(op.Points); i++ {
		a, b := op.Points[i-1], op.Points[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// Perpendicular half-width offset.
		ox := -dy / length * width / 2
		oy := dx / length * width / 2

		r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
		r.MoveTo(float32(a.X+ox), float32(a.Y+oy))
		r.LineTo(float32(b.X+ox), float32(b.Y+oy))
		r.LineTo(float32(b.X-ox), float32(b.Y-oy))
		r.LineTo(float32(a.X-ox), float32(a.Y-oy))
		r.ClosePath()
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
}

// drawText renders with the fixed 7x13 basic font. The Size field is
// ignored by this backend; alignment and baseline are honored.
func drawText(img *image.RGBA, op Op) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(parseColor(op.Color)),
		Face: face,
	}
	width := d.MeasureString(op.Text)

	x := fixed.I(int(op.X))
	if op.Align == "center" {
		x -= width / 2
	}

	metrics := face.Metrics()
	y := fixed.I(int(op.Y))
	switch op.Baseline {
	case "top":
		y += metrics.Ascent
	case "middle":
		y += (metrics.Ascent - metrics.Descent) / 2
	}

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(op.Text)
}

// parseColor decodes #rgb and #rrggbb hex colors; anything unparsable
// falls back to mid gray.
func parseColor(s string) color.RGBA {
	gray := color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	if len(s) == 0 || s[0] != '#' {
		return gray
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		rv, ok1 := hexNibble(hex[0])
		gv, ok2 := hexNibble(hex[1])
		bv, ok3 := hexNibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return gray
		}
		r, g, b = rv*17, gv*17, bv*17
	case 6:
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return gray
			}
			vals[i] = hi<<4 | lo
		}
		r, g, b = vals[0], vals[1], vals[2]
	default:
		return gray
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
