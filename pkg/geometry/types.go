// Package geometry provides basic geometric types used by the shape renderer.
package geometry

import (
	"image"
	"math"
)

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// NewPointInt creates a new PointInt.
func NewPointInt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// Image converts to an image.Point for drawing calls.
func (p PointInt) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Size represents integer pixel dimensions.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Image converts to an image.Point (width, height) as used by resize calls.
func (s Size) Image() image.Point {
	return image.Point{X: s.Width, Y: s.Height}
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ScaleToHeight returns the size scaled to height while keeping the aspect
// ratio. The width is truncated like an integer pixel conversion.
func (s Size) ScaleToHeight(height int) Size {
	if s.Height == 0 {
		return Size{Width: 0, Height: height}
	}
	width := int(float64(height) / float64(s.Height) * float64(s.Width))
	return Size{Width: width, Height: height}
}

// TriangleHeight returns the truncated height of an equilateral triangle
// with the given side length.
func TriangleHeight(side int) int {
	return int(float64(side) / 2 * math.Sqrt(3))
}
