package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"histlogo/internal/annulus"
	"histlogo/internal/capture"
	"histlogo/internal/display"
	"histlogo/internal/histogram"
	"histlogo/pkg/geometry"

	"gocv.io/x/gocv"
)

// Interpolation picks cubic interpolation when a frame is enlarged and
// linear when it is shrunk.
func Interpolation(originalHeight, targetHeight int) gocv.InterpolationFlags {
	if originalHeight <= targetHeight {
		return gocv.InterpolationCubic
	}
	return gocv.InterpolationLinear
}

// Resize scales src to height keeping its aspect ratio and returns the new size.
func Resize(src gocv.Mat, dst *gocv.Mat, height int) geometry.Size {
	orig := geometry.Size{Width: src.Cols(), Height: src.Rows()}
	size := orig.ScaleToHeight(height)
	if size.Width < 1 {
		size.Width = 1
	}
	gocv.Resize(src, dst, size.Image(), 0, 0, Interpolation(orig.Height, height))
	return size
}

// PlanBin derives the three shapes of one bin from its ranked differentials.
//
// The largest differential sets the common radius and its shape keeps the
// reference angle. The middle shape's wedge covers the area largest-middle and
// the smallest shape's wedge covers the area smallest, each plus angleOffset.
func PlanBin(params annulus.Params, referenceArea float64, ranked histogram.Ranked, angleOffset float64) [3]ShapeDraw {
	largest, middle, smallest := ranked.Largest(), ranked.Middle(), ranked.Smallest()

	radius := params.RadiusForArea(referenceArea, largest.Value)
	return [3]ShapeDraw{
		{Channel: largest.Channel, Radius: radius, Angle: params.Angle},
		{Channel: middle.Channel, Radius: radius, Angle: params.AngleForArea(largest.Value-middle.Value, radius) + angleOffset},
		{Channel: smallest.Channel, Radius: radius, Angle: params.AngleForArea(smallest.Value, radius) + angleOffset},
	}
}

// Run processes frames from src until the stream ends, the display reports
// ESC, or ctx is cancelled. Cancellation is only observed between frames.
// End of stream and ESC are not errors.
func (s *Session) Run(ctx context.Context, src capture.Source) error {
	frame := gocv.NewMat()
	defer frame.Close()

	log.Printf("Pipeline: streaming from %s", src.Name())
	for {
		if err := ctx.Err(); err != nil {
			log.Printf("Pipeline: stopped after %d frames: %v", s.frames, err)
			return err
		}

		if err := src.Read(&frame); err != nil {
			if errors.Is(err, capture.ErrEndOfStream) {
				log.Printf("Pipeline: end of stream after %d frames", s.frames)
				return nil
			}
			return fmt.Errorf("read %s: %w", src.Name(), err)
		}

		if _, err := s.ProcessFrame(frame); err != nil {
			return err
		}

		if key := s.display.WaitKey(1); key == display.KeyEscape {
			log.Printf("Pipeline: ESC pressed after %d frames", s.frames)
			return nil
		}
	}
}

// RunSingle processes the first frame of src and then waits for a key.
func (s *Session) RunSingle(src capture.Source) (*FrameResult, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	if err := src.Read(&frame); err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}

	result, err := s.ProcessFrame(frame)
	if err != nil {
		return nil, err
	}
	s.display.WaitKey(0)
	return result, nil
}
