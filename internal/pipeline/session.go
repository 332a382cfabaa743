// Package pipeline turns video frames into histogram plots and a row of
// histogram-shaped logos, one logo per coarse bin.
package pipeline

import (
	"errors"
	"fmt"
	"log"

	"histlogo/internal/config"
	"histlogo/internal/display"
	"histlogo/internal/histogram"
	"histlogo/internal/plot"
	"histlogo/internal/shape"
	"histlogo/pkg/colorutil"
	"histlogo/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when a frame without pixels is processed.
var ErrEmptyFrame = errors.New("empty frame")

// Session owns everything that lives across frames: the reference area,
// the per-bin canvases and the plot surfaces. It is not safe for
// concurrent use.
type Session struct {
	cfg      *config.Config
	renderer *shape.Renderer
	display  display.Display

	referenceArea float64

	// One canvas per coarse bin, drawn in place every frame and cleared
	// after display. Nothing outside the session holds them across frames.
	canvases  []gocv.Mat
	composite gocv.Mat
	resized   gocv.Mat

	line *plot.Line
	bars *plot.StackedBars

	stage  Stage
	trail  []Stage
	frames int

	lastFull   histogram.Channels
	lastCoarse histogram.Channels
}

// NewSession validates cfg and allocates the session resources.
func NewSession(cfg *config.Config, disp display.Display) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if disp == nil {
		return nil, fmt.Errorf("new session: display is required")
	}

	s := &Session{
		cfg:       cfg,
		renderer:  cfg.Renderer(),
		display:   disp,
		composite: gocv.NewMat(),
		resized:   gocv.NewMat(),
	}
	s.referenceArea = s.renderer.Params.ReferenceShapeArea()

	s.canvases = make([]gocv.Mat, cfg.Histogram.Bins)
	for i := range s.canvases {
		s.canvases[i] = s.renderer.NewCanvas()
	}

	s.line = plot.NewLine(cfg.Histogram.FullBins, plot.Options{
		Width:     cfg.Plot.Width,
		Height:    cfg.Plot.Height,
		YMax:      cfg.Plot.LineYMax,
		AutoScale: cfg.Plot.AutoScale,
	})
	s.bars = plot.NewStackedBars(cfg.Histogram.Bins, plot.Options{
		Width:     cfg.Plot.Width,
		Height:    cfg.Plot.Height,
		YMax:      cfg.Plot.BarYMax,
		AutoScale: cfg.Plot.AutoScale,
		BarWidth:  cfg.Plot.BarWidth,
	})

	log.Printf("Pipeline: session ready (%d bins, reference area %.0f, canvas %dx%d)",
		len(s.canvases), s.referenceArea, s.renderer.Canvas.Width, s.renderer.Canvas.Height)
	return s, nil
}

// ReferenceArea returns the area of one shape of the reference logo.
func (s *Session) ReferenceArea() float64 {
	return s.referenceArea
}

// Renderer returns the shape renderer used by the session.
func (s *Session) Renderer() *shape.Renderer {
	return s.renderer
}

// Stage returns the current state machine stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Trail returns the stages visited by the last processed frame.
func (s *Session) Trail() []Stage {
	out := make([]Stage, len(s.trail))
	copy(out, s.trail)
	return out
}

// Frames returns the number of frames processed.
func (s *Session) Frames() int {
	return s.frames
}

// Canvases exposes the per-bin canvases. They are owned by the session.
func (s *Session) Canvases() []gocv.Mat {
	return s.canvases
}

// LastHistograms returns the full and coarse histograms of the last frame.
func (s *Session) LastHistograms() (full, coarse histogram.Channels) {
	return s.lastFull, s.lastCoarse
}

// ShowReference draws the reference logo and shows it once.
func (s *Session) ShowReference() {
	logo := s.renderer.DefaultLogo()
	defer logo.Close()
	s.display.Show(display.DefaultLogo, logo)
}

// enter moves the state machine to stage.
func (s *Session) enter(stage Stage) {
	if stage != s.stage.next() && stage != StageClear {
		log.Printf("Pipeline: unexpected transition %s -> %s", s.stage, stage)
	}
	s.stage = stage
	s.trail = append(s.trail, stage)
	if s.cfg.Debug {
		log.Printf("Pipeline: frame %d %s", s.frames, stage)
	}
}

// ShapeDraw is one shape drawn into a bin's canvas.
type ShapeDraw struct {
	Channel colorutil.Channel
	Radius  int
	Angle   float64
}

// BinResult describes what was drawn for one coarse bin.
type BinResult struct {
	Record histogram.Record
	// Shapes in draw order: largest differential first, then middle, then smallest.
	Shapes [3]ShapeDraw
}

// FrameResult summarises one processed frame.
type FrameResult struct {
	Index  int
	Size   geometry.Size
	Full   histogram.Channels
	Coarse histogram.Channels
	Bins   []BinResult
}

// ProcessFrame runs one frame through the state machine. The frame is not
// modified.
func (s *Session) ProcessFrame(frame gocv.Mat) (*FrameResult, error) {
	if frame.Empty() {
		return nil, ErrEmptyFrame
	}
	s.trail = s.trail[:0]
	defer s.enter(StageIdle)

	s.enter(StageResize)
	size := Resize(frame, &s.resized, s.cfg.ResizeHeight)

	s.enter(StageHistogram)
	full, err := histogram.Compute(s.resized, s.cfg.Histogram.FullBins)
	if err != nil {
		return nil, s.abort(err)
	}
	coarse, err := histogram.Compute(s.resized, s.cfg.Histogram.Bins)
	if err != nil {
		return nil, s.abort(err)
	}
	s.line.SetData(full)
	s.bars.SetData(coarse)
	s.lastFull, s.lastCoarse = full, coarse

	s.enter(StageRank)
	records := histogram.Records(coarse, s.cfg.Histogram.DiffMode)

	s.enter(StageDraw)
	result := &FrameResult{
		Index:  s.frames,
		Size:   size,
		Full:   full,
		Coarse: coarse,
		Bins:   make([]BinResult, len(records)),
	}
	for i, rec := range records {
		shapes := PlanBin(s.renderer.Params, s.referenceArea, rec.Ranked, s.cfg.Logo.AngleOffset)
		for _, sh := range shapes {
			if err := s.renderer.DrawChannelShape(&s.canvases[i], sh.Channel, sh.Radius, sh.Angle); err != nil {
				return nil, s.abort(fmt.Errorf("bin %d: %w", i, err))
			}
		}
		result.Bins[i] = BinResult{Record: rec, Shapes: shapes}
		if s.cfg.Debug {
			log.Printf("Pipeline: bin %d diffs B=%.0f G=%.0f R=%.0f radius %d",
				i, rec.Diffs[0], rec.Diffs[1], rec.Diffs[2], shapes[0].Radius)
		}
	}

	s.enter(StageDisplay)
	if err := s.stack(); err != nil {
		return nil, s.abort(err)
	}
	s.display.Show(display.Video, s.resized)
	s.display.Show(display.Logos, s.composite)
	s.display.Show(display.LinePlot, s.line.Render())
	s.display.Show(display.BarPlot, s.bars.Render())

	s.enter(StageClear)
	s.clear()

	s.frames++
	return result, nil
}

// abort clears whatever was drawn so the next frame starts from black.
func (s *Session) abort(err error) error {
	s.enter(StageClear)
	s.clear()
	return fmt.Errorf("frame %d: %w", s.frames, err)
}

// stack concatenates the canvases left to right into the composite.
func (s *Session) stack() error {
	if len(s.canvases) == 0 {
		return fmt.Errorf("no canvases to stack")
	}
	s.canvases[0].CopyTo(&s.composite)
	for i := 1; i < len(s.canvases); i++ {
		joined := gocv.NewMat()
		gocv.Hconcat(s.composite, s.canvases[i], &joined)
		s.composite.Close()
		s.composite = joined
	}
	return nil
}

// clear paints every canvas black.
func (s *Session) clear() {
	black := gocv.NewScalar(0, 0, 0, 0)
	for i := range s.canvases {
		s.canvases[i].SetTo(black)
	}
}

// Close releases every Mat owned by the session. The display is left to
// its owner.
func (s *Session) Close() error {
	for i := range s.canvases {
		s.canvases[i].Close()
	}
	s.canvases = nil
	s.composite.Close()
	s.resized.Close()
	s.line.Close()
	s.bars.Close()
	log.Printf("Pipeline: session closed after %d frames", s.frames)
	return nil
}
