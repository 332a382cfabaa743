// Package colorutil provides the channel palette shared by the histogram and shape code.
package colorutil

import (
	"fmt"
	"image/color"
)

// Common drawing colors.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Channel identifies one color channel of a BGR frame.
// The values equal the OpenCV channel index.
type Channel int

const (
	ChannelBlue Channel = iota
	ChannelGreen
	ChannelRed
)

// NumChannels is the number of color channels in a frame.
const NumChannels = 3

// Channels lists every channel in frame (BGR) order.
var Channels = [NumChannels]Channel{ChannelBlue, ChannelGreen, ChannelRed}

// Offset describes where a channel's shape sits relative to the red center.
type Offset int

const (
	OffsetNone      Offset = iota // at the base center
	OffsetLeftDown                // half a distance left, one triangle height down
	OffsetRightDown               // half a distance right, one triangle height down
)

// channelInfo is the per-channel lookup table entry.
type channelInfo struct {
	name     string
	short    string
	color    color.RGBA
	offset   Offset
	rotation int // multiple of the sector angle subtracted from 360 for the wedge start
}

var channelTable = [NumChannels]channelInfo{
	ChannelBlue:  {name: "Blue", short: "B", color: Blue, offset: OffsetRightDown, rotation: 2},
	ChannelGreen: {name: "Green", short: "G", color: Green, offset: OffsetLeftDown, rotation: 1},
	ChannelRed:   {name: "Red", short: "R", color: Red, offset: OffsetNone, rotation: 0},
}

// Valid reports whether c is one of the three channels.
func (c Channel) Valid() bool {
	return c >= ChannelBlue && c <= ChannelRed
}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelTable[c].name
}

// Short returns the one-letter tag of the channel (B, G or R).
func (c Channel) Short() string {
	if !c.Valid() {
		return "?"
	}
	return channelTable[c].short
}

// Color returns the RGB drawing color of the channel.
func (c Channel) Color() color.RGBA {
	if !c.Valid() {
		return Black
	}
	return channelTable[c].color
}

// Offset returns the center offset rule of the channel.
func (c Channel) Offset() Offset {
	if !c.Valid() {
		return OffsetNone
	}
	return channelTable[c].offset
}

// StartAngle returns the wedge start for a shape with the given sector angle.
// Red starts at the angle itself, green at 360-angle, blue at 360-2·angle,
// which staggers the gaps of the three shapes into a pinwheel.
func (c Channel) StartAngle(angle float64) float64 {
	if c == ChannelRed || !c.Valid() {
		return angle
	}
	return 360 - float64(channelTable[c].rotation)*angle
}

// HexColor returns the channel color as a #rrggbb string for chart output.
func (c Channel) HexColor() string {
	col := c.Color()
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}
