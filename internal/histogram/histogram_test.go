package histogram

import (
	"math/rand"
	"testing"

	"histlogo/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, b, g, r float64) gocv.Mat {
	t.Helper()
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), 8, 8, gocv.MatTypeCV8UC3)
}

func TestComputeAllBlue(t *testing.T) {
	frame := solidFrame(t, 255, 0, 0)
	defer frame.Close()

	h, err := Compute(frame, CoarseBins)
	require.NoError(t, err)
	require.Equal(t, CoarseBins, h.Bins())

	assert.Equal(t, []float64{0, 0, 0, 0, 64}, h[colorutil.ChannelBlue])
	assert.Equal(t, []float64{64, 0, 0, 0, 0}, h[colorutil.ChannelGreen])
	assert.Equal(t, []float64{64, 0, 0, 0, 0}, h[colorutil.ChannelRed])
	assert.Equal(t, 64.0, h.Total(colorutil.ChannelBlue))
}

func TestComputeFullResolution(t *testing.T) {
	frame := solidFrame(t, 10, 128, 255)
	defer frame.Close()

	h, err := Compute(frame, FullBins)
	require.NoError(t, err)
	require.Equal(t, FullBins, h.Bins())
	assert.Equal(t, 64.0, h[colorutil.ChannelBlue][10])
	assert.Equal(t, 64.0, h[colorutil.ChannelGreen][128])
	assert.Equal(t, 64.0, h[colorutil.ChannelRed][255])
	for _, ch := range colorutil.Channels {
		assert.Equal(t, 64.0, h.Total(ch))
	}
}

func TestComputeRejectsBadInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	_, err := Compute(empty, CoarseBins)
	assert.Error(t, err)

	gray := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer gray.Close()
	_, err = Compute(gray, CoarseBins)
	assert.Error(t, err)

	frame := solidFrame(t, 0, 0, 0)
	defer frame.Close()
	_, err = Compute(frame, 0)
	assert.Error(t, err)
}

func TestDifferentialsAcrossChannels(t *testing.T) {
	h := Channels{
		{0, 0, 0, 0, 64},
		{64, 0, 0, 0, 0},
		{64, 0, 0, 0, 0},
	}
	d := Differentials(h, DiffAcrossChannels)

	assert.Equal(t, []float64{64, 0, 0, 0, 0}, d[colorutil.ChannelBlue])
	assert.Equal(t, []float64{0, 0, 0, 0, 64}, d[colorutil.ChannelGreen])
	assert.Equal(t, []float64{0, 0, 0, 0, 64}, d[colorutil.ChannelRed])
}

func TestDifferentialsWithinChannel(t *testing.T) {
	h := Channels{
		{1, 5, 3},
		{4, 4, 4},
		{0, 2, 9},
	}
	d := Differentials(h, DiffWithinChannel)

	assert.Equal(t, []float64{4, 0, 2}, d[colorutil.ChannelBlue])
	assert.Equal(t, []float64{0, 0, 0}, d[colorutil.ChannelGreen])
	assert.Equal(t, []float64{9, 7, 0}, d[colorutil.ChannelRed])
}

func TestDifferentialsBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, mode := range []DiffMode{DiffAcrossChannels, DiffWithinChannel} {
		for iter := 0; iter < 50; iter++ {
			var h Channels
			maxCount := 0.0
			for _, ch := range colorutil.Channels {
				h[ch] = make([]float64, CoarseBins)
				for i := range h[ch] {
					h[ch][i] = float64(rng.Intn(100000))
					if h[ch][i] > maxCount {
						maxCount = h[ch][i]
					}
				}
			}
			d := Differentials(h, mode)
			for _, ch := range colorutil.Channels {
				for i, v := range d[ch] {
					require.GreaterOrEqual(t, v, 0.0, "mode %s channel %s bin %d", mode, ch, i)
					require.LessOrEqual(t, v, maxCount, "mode %s channel %s bin %d", mode, ch, i)
				}
			}
		}
	}
}

func TestRankAscending(t *testing.T) {
	diffs := Channels{{30}, {10}, {20}}
	r := Rank(diffs, 0)

	assert.Equal(t, Entry{Value: 10, Channel: colorutil.ChannelGreen}, r.Smallest())
	assert.Equal(t, Entry{Value: 20, Channel: colorutil.ChannelRed}, r.Middle())
	assert.Equal(t, Entry{Value: 30, Channel: colorutil.ChannelBlue}, r.Largest())
}

func TestRankTieKeepsChannelOrder(t *testing.T) {
	tests := []struct {
		name    string
		diffs   Channels
		largest colorutil.Channel
		middle  colorutil.Channel
	}{
		{"green and red tied high", Channels{{0}, {64}, {64}}, colorutil.ChannelRed, colorutil.ChannelGreen},
		{"all equal", Channels{{5}, {5}, {5}}, colorutil.ChannelRed, colorutil.ChannelGreen},
		{"blue and green tied high", Channels{{9}, {9}, {1}}, colorutil.ChannelGreen, colorutil.ChannelBlue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rank(tt.diffs, 0)
			assert.Equal(t, tt.largest, r.Largest().Channel)
			assert.Equal(t, tt.middle, r.Middle().Channel)
		})
	}
}

func TestRecords(t *testing.T) {
	h := Channels{
		{0, 0, 0, 0, 64},
		{64, 0, 0, 0, 0},
		{64, 0, 0, 0, 0},
	}
	recs := Records(h, DiffAcrossChannels)
	require.Len(t, recs, 5)

	last := recs[4]
	assert.Equal(t, 4, last.Bin)
	assert.Equal(t, [3]float64{64, 0, 0}, last.Counts)
	assert.Equal(t, [3]float64{0, 64, 64}, last.Diffs)
	assert.Equal(t, colorutil.ChannelBlue, last.Ranked.Smallest().Channel)
	assert.Equal(t, colorutil.ChannelRed, last.Ranked.Largest().Channel)

	first := recs[0]
	assert.Equal(t, colorutil.ChannelBlue, first.Ranked.Largest().Channel)
	assert.Equal(t, 64.0, first.Ranked.Largest().Value)
}

func TestDiffModeValid(t *testing.T) {
	assert.True(t, DiffAcrossChannels.Valid())
	assert.True(t, DiffWithinChannel.Valid())
	assert.False(t, DiffMode("peak").Valid())
}
