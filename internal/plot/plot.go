// Package plot renders histogram plots into Mats for display and exports
// them as interactive HTML charts.
package plot

import (
	"fmt"
	"image"
	"math"

	"histlogo/internal/histogram"
	"histlogo/pkg/colorutil"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Plot frame margins in pixels.
const (
	marginLeft   = 60
	marginRight  = 16
	marginTop    = 28
	marginBottom = 32
)

// Options controls the look of a plot surface.
type Options struct {
	Width     int
	Height    int
	YMax      float64 // fixed y limit, ignored when AutoScale is set
	AutoScale bool
	BarWidth  float64 // relative bar width for bar plots
}

// surface is the shared frame of both plot kinds. The Mat is reused for
// every render.
type surface struct {
	title string
	opts  Options
	img   gocv.Mat
}

func newSurface(title string, opts Options) surface {
	return surface{
		title: title,
		opts:  opts,
		img:   gocv.NewMatWithSize(opts.Height, opts.Width, gocv.MatTypeCV8UC3),
	}
}

func (s *surface) area() image.Rectangle {
	return image.Rect(marginLeft, marginTop, s.opts.Width-marginRight, s.opts.Height-marginBottom)
}

// begin clears the surface and draws title, frame and y limit label.
func (s *surface) begin(yMax float64) {
	s.img.SetTo(gocv.NewScalar(255, 255, 255, 0))
	area := s.area()
	gocv.Rectangle(&s.img, area, colorutil.Black, 1)
	gocv.PutText(&s.img, s.title, image.Pt(marginLeft, marginTop-8), gocv.FontHersheySimplex, 0.5, colorutil.Black, 1)
	gocv.PutText(&s.img, fmt.Sprintf("%.0f", yMax), image.Pt(4, marginTop+10), gocv.FontHersheyPlain, 0.9, colorutil.Black, 1)
	gocv.PutText(&s.img, "0", image.Pt(marginLeft-14, area.Max.Y), gocv.FontHersheyPlain, 0.9, colorutil.Black, 1)
}

// legend draws one label per channel in the top right corner.
func (s *surface) legend() {
	area := s.area()
	for i, ch := range colorutil.Channels {
		y := area.Min.Y + 14 + i*16
		x := area.Max.X - 70
		gocv.Line(&s.img, image.Pt(x, y-4), image.Pt(x+16, y-4), ch.Color(), 2)
		gocv.PutText(&s.img, ch.String(), image.Pt(x+20, y), gocv.FontHersheyPlain, 0.9, colorutil.Black, 1)
	}
}

// yPixel maps a count to a row inside the plot area, clipped to the area.
func (s *surface) yPixel(v, yMax float64) int {
	area := s.area()
	if yMax <= 0 {
		return area.Max.Y
	}
	frac := math.Min(math.Max(v/yMax, 0), 1)
	return area.Max.Y - int(math.Round(frac*float64(area.Dy())))
}

func (s *surface) close() error {
	return s.img.Close()
}

// Line is a line histogram with one series per channel, updated in place.
type Line struct {
	surface
	data histogram.Channels
}

// NewLine creates a line plot for histograms with the given bin count.
func NewLine(bins int, opts Options) *Line {
	l := &Line{surface: newSurface("Line histogram (BGR)", opts)}
	for _, ch := range colorutil.Channels {
		l.data[ch] = make([]float64, bins)
	}
	return l
}

// SetData replaces the series values without reallocating them.
func (l *Line) SetData(h histogram.Channels) {
	for _, ch := range colorutil.Channels {
		copy(l.data[ch], h[ch])
	}
}

// Data returns the current series.
func (l *Line) Data() histogram.Channels {
	return l.data
}

// Render draws the plot and returns its Mat. The Mat stays owned by the plot
// and is overwritten by the next Render.
func (l *Line) Render() gocv.Mat {
	yMax := l.opts.YMax
	if l.opts.AutoScale {
		yMax = seriesMax(l.data)
	}
	l.begin(yMax)

	area := l.area()
	bins := l.data.Bins()
	for _, ch := range colorutil.Channels {
		prev := image.Point{}
		for i, v := range l.data[ch] {
			x := area.Min.X
			if bins > 1 {
				x += i * area.Dx() / (bins - 1)
			}
			pt := image.Pt(x, l.yPixel(v, yMax))
			if i > 0 {
				gocv.Line(&l.img, prev, pt, ch.Color(), 1)
			}
			prev = pt
		}
	}
	l.legend()
	return l.img
}

// Close releases the plot Mat.
func (l *Line) Close() error {
	return l.close()
}

// StackedBars is a bar histogram with the three channels stacked per bin:
// blue at the bottom, green on blue, red on top.
type StackedBars struct {
	surface
	data histogram.Channels
}

// NewStackedBars creates a stacked bar plot with the given bin count.
func NewStackedBars(bins int, opts Options) *StackedBars {
	b := &StackedBars{surface: newSurface("Stacked bar plot histogram (BGR)", opts)}
	for _, ch := range colorutil.Channels {
		b.data[ch] = make([]float64, bins)
	}
	return b
}

// SetData replaces the bar heights without reallocating them.
func (b *StackedBars) SetData(h histogram.Channels) {
	for _, ch := range colorutil.Channels {
		copy(b.data[ch], h[ch])
	}
}

// Data returns the current bar heights.
func (b *StackedBars) Data() histogram.Channels {
	return b.data
}

// Segment is one drawn bar piece, bottom and top in data units.
type Segment struct {
	Channel colorutil.Channel
	Bottom  float64
	Top     float64
}

// Stack returns the stacked segments of a bin in draw order.
func (b *StackedBars) Stack(bin int) [colorutil.NumChannels]Segment {
	var segs [colorutil.NumChannels]Segment
	base := 0.0
	for i, ch := range colorutil.Channels {
		v := b.data[ch][bin]
		segs[i] = Segment{Channel: ch, Bottom: base, Top: base + v}
		base += v
	}
	return segs
}

// Render draws the plot and returns its Mat, owned by the plot.
func (b *StackedBars) Render() gocv.Mat {
	bins := b.data.Bins()
	yMax := b.opts.YMax
	if b.opts.AutoScale {
		yMax = 0
		for i := 0; i < bins; i++ {
			yMax = math.Max(yMax, b.Stack(i)[colorutil.NumChannels-1].Top)
		}
	}
	b.begin(yMax)

	area := b.area()
	if bins == 0 {
		return b.img
	}
	slot := float64(area.Dx()) / float64(bins)
	width := slot * b.opts.BarWidth
	for i := 0; i < bins; i++ {
		x0 := area.Min.X + int(slot*float64(i)+(slot-width)/2)
		x1 := x0 + int(width)
		for _, seg := range b.Stack(i) {
			if seg.Top <= seg.Bottom {
				continue
			}
			rect := image.Rect(x0, b.yPixel(seg.Top, yMax), x1, b.yPixel(seg.Bottom, yMax))
			gocv.Rectangle(&b.img, rect, seg.Channel.Color(), -1)
		}
		gocv.PutText(&b.img, fmt.Sprintf("%d", i), image.Pt((x0+x1)/2-4, area.Max.Y+16), gocv.FontHersheyPlain, 0.9, colorutil.Black, 1)
	}
	b.legend()
	return b.img
}

// Close releases the plot Mat.
func (b *StackedBars) Close() error {
	return b.close()
}

func seriesMax(h histogram.Channels) float64 {
	m := 0.0
	for _, ch := range colorutil.Channels {
		if len(h[ch]) > 0 {
			m = math.Max(m, floats.Max(h[ch]))
		}
	}
	return m
}
