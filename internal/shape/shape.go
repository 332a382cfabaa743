// Package shape draws ring-sector glyphs and the three-ring logo into OpenCV Mats.
//
// Every Draw function mutates the canvas it is given and keeps no reference
// to it after returning. Functions that return a Mat hand ownership to the
// caller, who must Close it.
package shape

import (
	"fmt"
	"image"

	"histlogo/internal/annulus"
	"histlogo/pkg/colorutil"
	"histlogo/pkg/geometry"

	"gocv.io/x/gocv"
)

// filled is the OpenCV thickness value for a filled primitive.
const filled = -1

// Default canvas layout.
const (
	DefaultCanvasWidth  = 300
	DefaultCanvasHeight = 300
)

// DefaultRedCenter is the base center of the red shape on a default canvas.
var DefaultRedCenter = geometry.NewPointInt(150, 90)

// Ring describes one ring-sector glyph.
type Ring struct {
	Center      image.Point
	OuterRadius int
	Color       colorutil.Channel
	SectorAngle float64 // span of the black wedge, degrees
	StartAngle  float64 // rotation of the wedge, degrees
}

// DrawRingSector draws the outer disc in the channel color, blacks out the
// inner disc and then cuts the wedge from StartAngle to StartAngle+SectorAngle.
// The sector angle is clamped to [0, 360] before drawing.
func DrawRingSector(canvas *gocv.Mat, ring Ring, aspect float64) {
	inner := annulus.Params{Aspect: aspect}.InnerRadius(ring.OuterRadius)
	axes := image.Pt(ring.OuterRadius, ring.OuterRadius)

	gocv.Circle(canvas, ring.Center, ring.OuterRadius, ring.Color.Color(), filled)
	gocv.Circle(canvas, ring.Center, inner, colorutil.Black, filled)
	gocv.Ellipse(canvas, ring.Center, axes, ring.StartAngle, 0, annulus.ClampAngle(ring.SectorAngle), colorutil.Black, filled)
}

// Renderer draws logos with a fixed geometry and canvas layout.
type Renderer struct {
	Params    annulus.Params
	Canvas    geometry.Size
	RedCenter geometry.PointInt
}

// NewRenderer creates a renderer. A zero canvas or center falls back to the defaults.
func NewRenderer(params annulus.Params, canvas geometry.Size, redCenter geometry.PointInt) *Renderer {
	if canvas.Empty() {
		canvas = geometry.Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
	if redCenter == (geometry.PointInt{}) {
		redCenter = DefaultRedCenter
	}
	return &Renderer{Params: params, Canvas: canvas, RedCenter: redCenter}
}

// DefaultRenderer returns a renderer for the stock logo.
func DefaultRenderer() *Renderer {
	return NewRenderer(annulus.DefaultParams(), geometry.Size{}, geometry.PointInt{})
}

// NewCanvas allocates a black canvas of the renderer's size.
func (r *Renderer) NewCanvas() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), r.Canvas.Height, r.Canvas.Width, gocv.MatTypeCV8UC3)
}

// Center returns the center of ch's shape for a given spacing between shapes.
func (r *Renderer) Center(ch colorutil.Channel, distance int) image.Point {
	height := geometry.TriangleHeight(distance)
	center := r.RedCenter
	switch ch.Offset() {
	case colorutil.OffsetLeftDown:
		center = center.Add(geometry.NewPointInt(-floorDiv(distance, 2), height))
	case colorutil.OffsetRightDown:
		center = center.Add(geometry.NewPointInt(floorDiv(distance, 2), height))
	}
	return center.Image()
}

// DrawDefaultLogo draws the three-ring logo on a new canvas. Spacing stays at
// the reference distance whatever the radius.
func (r *Renderer) DrawDefaultLogo(outerRadius int, angle float64) gocv.Mat {
	canvas := r.NewCanvas()
	for _, ch := range logoOrder {
		DrawRingSector(&canvas, Ring{
			Center:      r.Center(ch, r.Params.Distance),
			OuterRadius: outerRadius,
			Color:       ch,
			SectorAngle: angle,
			StartAngle:  ch.StartAngle(angle),
		}, r.Params.Aspect)
	}
	return canvas
}

// DefaultLogo draws the reference logo at the reference radius and angle.
func (r *Renderer) DefaultLogo() gocv.Mat {
	return r.DrawDefaultLogo(r.Params.OuterRadius, r.Params.Angle)
}

// DrawChannelShape draws the shape of one channel into canvas. The spacing
// follows the radius through DistanceForRadius.
func (r *Renderer) DrawChannelShape(canvas *gocv.Mat, ch colorutil.Channel, outerRadius int, angle float64) error {
	if !ch.Valid() {
		return fmt.Errorf("draw channel shape: invalid channel %d", int(ch))
	}
	distance := r.Params.DistanceForRadius(outerRadius)
	DrawRingSector(canvas, Ring{
		Center:      r.Center(ch, distance),
		OuterRadius: outerRadius,
		Color:       ch,
		SectorAngle: angle,
		StartAngle:  ch.StartAngle(angle),
	}, r.Params.Aspect)
	return nil
}

// logoOrder is the draw order of the reference logo.
var logoOrder = [...]colorutil.Channel{colorutil.ChannelRed, colorutil.ChannelGreen, colorutil.ChannelBlue}

// floorDiv divides rounding toward negative infinity, like a Python // on ints.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
