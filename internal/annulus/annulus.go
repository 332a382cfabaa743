// Package annulus maps histogram statistics to ring-sector shape parameters.
//
// All functions are pure. Radii are rounded half-to-even before squaring so
// that areas agree with what the pixel renderer actually draws.
package annulus

import "math"

// Default geometry of one shape in the reference logo.
const (
	DefaultOuterRadius = 50
	DefaultAngle       = 60.0
	InnerCircleAspect  = 0.75
	DefaultDistance    = 120
)

// Params holds the reference geometry every mapping is relative to.
type Params struct {
	OuterRadius int     // R0, outer radius of the reference shape
	Angle       float64 // sector angle of the reference shape, degrees
	Aspect      float64 // inner/outer radius ratio, constant for all shapes
	Distance    int     // center spacing of the reference trefoil
}

// DefaultParams returns the geometry of the stock logo.
func DefaultParams() Params {
	return Params{
		OuterRadius: DefaultOuterRadius,
		Angle:       DefaultAngle,
		Aspect:      InnerCircleAspect,
		Distance:    DefaultDistance,
	}
}

// InnerRadius returns the inner ring radius for an outer radius.
func (p Params) InnerRadius(outerRadius int) int {
	return int(math.RoundToEven(float64(outerRadius) * p.Aspect))
}

// ringArea is the unrounded area between the outer and inner circles.
func (p Params) ringArea(outerRadius int) float64 {
	r := float64(outerRadius)
	ri := float64(p.InnerRadius(outerRadius))
	return math.Pi * (r*r - ri*ri)
}

// AnnulusArea returns the area of the full ring, rounded to an integer value.
func (p Params) AnnulusArea(outerRadius int) float64 {
	return math.RoundToEven(p.ringArea(outerRadius))
}

// SectorArea returns the area of the ring wedge spanning angle degrees.
// The ring area is not rounded first so small sectors keep their precision.
func (p Params) SectorArea(outerRadius int, angle float64) float64 {
	return (angle / 360) * p.ringArea(outerRadius)
}

// DistanceForRadius scales the reference center spacing by the same
// relative change that was applied to the radius.
func (p Params) DistanceForRadius(outerRadius int) int {
	r0 := float64(p.OuterRadius)
	change := (float64(outerRadius) - r0) / r0
	d0 := float64(p.Distance)
	return int(math.RoundToEven(d0*change + d0))
}

// RadiusForArea returns the outer radius for a shape of newArea relative to
// a shape of referenceArea: R0 + R0·(new/ref).
//
// This is a linear stylized mapping, not the square-root inverse of circle
// area. The visual output depends on it, keep it linear.
func (p Params) RadiusForArea(referenceArea, newArea float64) int {
	r0 := float64(p.OuterRadius)
	change := newArea / referenceArea
	return int(math.RoundToEven(r0*change + r0))
}

// AngleForArea returns the sector angle in degrees that covers area on a
// full disc of the given radius. The result is not clamped.
func (p Params) AngleForArea(area float64, radius int) float64 {
	r := float64(radius)
	return (area / (r * r * math.Pi)) * 360
}

// ReferenceShapeArea is the area of one reference shape: the ring minus
// its reference sector.
func (p Params) ReferenceShapeArea() float64 {
	area := p.AnnulusArea(p.OuterRadius)
	sector := p.SectorArea(p.OuterRadius, p.Angle)
	return math.RoundToEven(area - sector)
}

// ClampAngle limits a sector angle to [0, 360]. NaN becomes 0.
func ClampAngle(angle float64) float64 {
	switch {
	case math.IsNaN(angle), angle < 0:
		return 0
	case angle > 360:
		return 360
	}
	return angle
}

var defaults = DefaultParams()

// AnnulusArea computes Params.AnnulusArea with the default geometry.
func AnnulusArea(outerRadius int) float64 { return defaults.AnnulusArea(outerRadius) }

// SectorArea computes Params.SectorArea with the default geometry.
func SectorArea(outerRadius int, angle float64) float64 {
	return defaults.SectorArea(outerRadius, angle)
}

// DistanceForRadius computes Params.DistanceForRadius with the default geometry.
func DistanceForRadius(outerRadius int) int { return defaults.DistanceForRadius(outerRadius) }

// RadiusForArea computes Params.RadiusForArea with the default geometry.
func RadiusForArea(referenceArea, newArea float64) int {
	return defaults.RadiusForArea(referenceArea, newArea)
}

// AngleForArea computes Params.AngleForArea with the default geometry.
func AngleForArea(area float64, radius int) float64 { return defaults.AngleForArea(area, radius) }

// ReferenceShapeArea computes Params.ReferenceShapeArea with the default geometry.
func ReferenceShapeArea() float64 { return defaults.ReferenceShapeArea() }
