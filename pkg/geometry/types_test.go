package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleToHeight(t *testing.T) {
	tests := []struct {
		in     Size
		height int
		want   Size
	}{
		{Size{640, 480}, 360, Size{480, 360}},
		{Size{1920, 1080}, 360, Size{640, 360}},
		{Size{8, 8}, 360, Size{360, 360}},
		{Size{101, 100}, 50, Size{50, 50}}, // 50.5 truncated
		{Size{10, 0}, 20, Size{0, 20}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.ScaleToHeight(tt.height), "%+v", tt.in)
	}
}

func TestTriangleHeight(t *testing.T) {
	assert.Equal(t, 103, TriangleHeight(120)) // 103.92
	assert.Equal(t, 0, TriangleHeight(0))
	assert.Equal(t, 207, TriangleHeight(240))
}

func TestPointInt(t *testing.T) {
	p := NewPointInt(150, 90).Add(NewPointInt(-60, 103))
	assert.Equal(t, image.Pt(90, 193), p.Image())
	assert.True(t, Size{}.Empty())
	assert.False(t, Size{1, 1}.Empty())
}
