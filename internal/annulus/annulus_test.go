package annulus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInnerRadiusRoundsHalfToEven(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		outer, want int
	}{
		{50, 38}, // 37.5
		{2, 2},   // 1.5
		{6, 4},   // 4.5
		{10, 8},  // 7.5
		{4, 3},
		{100, 75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.InnerRadius(tt.outer), "outer %d", tt.outer)
	}
}

func TestAnnulusArea(t *testing.T) {
	// π·(50² - 38²) = π·1056 = 3317.52
	assert.Equal(t, 3318.0, AnnulusArea(50))
	assert.Equal(t, 0.0, AnnulusArea(1))
	assert.Equal(t, 0.0, AnnulusArea(0))
}

func TestAnnulusAreaMonotonic(t *testing.T) {
	prev := AnnulusArea(1)
	for r := 2; r <= 1000; r++ {
		area := AnnulusArea(r)
		require.GreaterOrEqual(t, area, prev, "radius %d", r)
		if r > 2 {
			require.Greater(t, area, prev, "radius %d", r)
		}
		prev = area
	}
}

func TestSectorAreaUsesUnroundedRing(t *testing.T) {
	ring := math.Pi * 1056
	assert.InDelta(t, ring/6, SectorArea(50, 60), 1e-9)
	assert.InDelta(t, ring, SectorArea(50, 360), 1e-9)
	assert.Equal(t, 0.0, SectorArea(50, 0))
	// rounding the ring first would give 3318/360
	assert.NotEqual(t, 3318.0/360, SectorArea(50, 1))
}

func TestDistanceForRadius(t *testing.T) {
	tests := []struct {
		radius, want int
	}{
		{50, 120},
		{100, 240},
		{75, 180},
		{25, 60},
		{51, 122}, // 122.4
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DistanceForRadius(tt.radius), "radius %d", tt.radius)
	}
}

func TestRadiusForAreaIsLinear(t *testing.T) {
	ref := ReferenceShapeArea()

	// equal areas double the radius: R0 + R0·1
	assert.Equal(t, 2*DefaultOuterRadius, RadiusForArea(ref, ref))
	assert.Equal(t, DefaultOuterRadius, RadiusForArea(ref, 0))
	assert.Equal(t, 3*DefaultOuterRadius, RadiusForArea(ref, 2*ref))
	// 50 + 50·64/2765 = 51.157
	assert.Equal(t, 51, RadiusForArea(ref, 64))
}

func TestReferenceShapeArea(t *testing.T) {
	// round(3318 - 552.92)
	assert.Equal(t, 2765.0, ReferenceShapeArea())
}

func TestAngleForArea(t *testing.T) {
	assert.Equal(t, 0.0, AngleForArea(0, 50))
	assert.InDelta(t, 360, AngleForArea(math.Pi*2500, 50), 1e-9)
	// not clamped
	assert.InDelta(t, 720, AngleForArea(2*math.Pi*2500, 50), 1e-9)
}

func TestAngleRoundTrip(t *testing.T) {
	p := DefaultParams()
	r := float64(p.OuterRadius)
	ri := float64(p.InnerRadius(p.OuterRadius))

	// AngleForArea divides by the full disc, so scale by the ring fraction
	// to recover the visible part of the reference ring.
	fraction := (r*r - ri*ri) / (r * r)
	angle := p.AngleForArea(p.ReferenceShapeArea(), p.OuterRadius) / fraction
	assert.InDelta(t, 360-p.Angle, angle, 0.5)
}

func TestClampAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-10, 0},
		{0, 0},
		{60, 60},
		{360, 360},
		{420, 360},
		{math.NaN(), 0},
		{math.Inf(1), 360},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampAngle(tt.in), "in %v", tt.in)
	}
}

func TestCustomParams(t *testing.T) {
	p := Params{OuterRadius: 100, Angle: 90, Aspect: 0.5, Distance: 200}
	assert.Equal(t, 50, p.InnerRadius(100))
	assert.Equal(t, math.RoundToEven(math.Pi*7500), p.AnnulusArea(100))
	assert.Equal(t, 300, p.DistanceForRadius(150))
	assert.Equal(t, 200, p.RadiusForArea(10, 10))
}
