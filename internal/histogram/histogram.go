// Package histogram computes per-channel histograms of BGR frames and ranks
// channels by their per-bin differential.
package histogram

import (
	"fmt"
	"sort"

	"histlogo/pkg/colorutil"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Value range of an 8-bit channel.
var pixelRange = []float64{0, 256}

// Default bin counts.
const (
	FullBins   = 256
	CoarseBins = 5
)

// Channels holds one histogram per color channel, indexed by colorutil.Channel.
type Channels [colorutil.NumChannels][]float64

// Bins returns the number of bins of the histograms.
func (c Channels) Bins() int {
	return len(c[colorutil.ChannelBlue])
}

// Total returns the summed counts of one channel.
func (c Channels) Total(ch colorutil.Channel) float64 {
	return floats.Sum(c[ch])
}

// Compute calculates a bins-sized histogram for every channel of a BGR frame.
func Compute(frame gocv.Mat, bins int) (Channels, error) {
	var out Channels
	if frame.Empty() {
		return out, fmt.Errorf("histogram: empty frame")
	}
	if frame.Channels() != colorutil.NumChannels {
		return out, fmt.Errorf("histogram: expected %d channels, got %d", colorutil.NumChannels, frame.Channels())
	}
	if bins <= 0 {
		return out, fmt.Errorf("histogram: invalid bin count %d", bins)
	}

	mask := gocv.NewMat()
	defer mask.Close()

	for _, ch := range colorutil.Channels {
		hist := gocv.NewMat()
		gocv.CalcHist([]gocv.Mat{frame}, []int{int(ch)}, mask, &hist, []int{bins}, pixelRange, false)
		counts := make([]float64, bins)
		for i := 0; i < bins && i < hist.Rows(); i++ {
			counts[i] = float64(hist.GetFloatAt(i, 0))
		}
		hist.Close()
		out[ch] = counts
	}
	return out, nil
}

// DiffMode selects what a channel count is subtracted from.
type DiffMode string

const (
	// DiffAcrossChannels uses the largest of the three channel counts at the same bin.
	DiffAcrossChannels DiffMode = "bin"
	// DiffWithinChannel uses the peak of the channel's own histogram.
	DiffWithinChannel DiffMode = "channel"
)

// Valid reports whether m is a known mode.
func (m DiffMode) Valid() bool {
	return m == DiffAcrossChannels || m == DiffWithinChannel
}

// Differentials returns max-minus-count for every channel and bin. Results
// are never negative: the subtrahend is always one of the values the max ran over.
func Differentials(h Channels, mode DiffMode) Channels {
	var out Channels
	bins := h.Bins()
	for _, ch := range colorutil.Channels {
		out[ch] = make([]float64, bins)
	}

	switch mode {
	case DiffWithinChannel:
		for _, ch := range colorutil.Channels {
			if len(h[ch]) == 0 {
				continue
			}
			peak := floats.Max(h[ch])
			for i, v := range h[ch] {
				out[ch][i] = peak - v
			}
		}
	default:
		column := make([]float64, colorutil.NumChannels)
		for i := 0; i < bins; i++ {
			for _, ch := range colorutil.Channels {
				column[ch] = h[ch][i]
			}
			peak := floats.Max(column)
			for _, ch := range colorutil.Channels {
				out[ch][i] = peak - column[ch]
			}
		}
	}
	return out
}

// Entry pairs a differential with the channel it belongs to.
type Entry struct {
	Value   float64
	Channel colorutil.Channel
}

// Ranked holds the three entries of one bin sorted ascending by value.
type Ranked [colorutil.NumChannels]Entry

// Smallest returns the entry with the lowest differential.
func (r Ranked) Smallest() Entry { return r[0] }

// Middle returns the entry in the middle.
func (r Ranked) Middle() Entry { return r[1] }

// Largest returns the entry with the highest differential.
func (r Ranked) Largest() Entry { return r[2] }

// Rank sorts the three differentials of a bin ascending. Ties keep the
// blue, green, red order, so red wins a tie for the largest slot.
func Rank(diffs Channels, bin int) Ranked {
	var r Ranked
	for _, ch := range colorutil.Channels {
		r[ch] = Entry{Value: diffs[ch][bin], Channel: ch}
	}
	s := r[:]
	sort.SliceStable(s, func(i, j int) bool { return s[i].Value < s[j].Value })
	return r
}

// Record is the histogram state of a single bin in a single frame.
type Record struct {
	Bin    int
	Counts [colorutil.NumChannels]float64
	Diffs  [colorutil.NumChannels]float64
	Ranked Ranked
}

// Records builds the per-bin records of a coarse histogram.
func Records(h Channels, mode DiffMode) []Record {
	diffs := Differentials(h, mode)
	records := make([]Record, h.Bins())
	for i := range records {
		rec := Record{Bin: i, Ranked: Rank(diffs, i)}
		for _, ch := range colorutil.Channels {
			rec.Counts[ch] = h[ch][i]
			rec.Diffs[ch] = diffs[ch][i]
		}
		records[i] = rec
	}
	return records
}
