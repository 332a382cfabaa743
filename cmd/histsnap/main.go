// Command histsnap processes a single frame without opening windows and
// writes the logo row, the reference logo and both histogram plots as PNG
// files. With -html it also writes the plots as an interactive page.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"histlogo/internal/capture"
	"histlogo/internal/config"
	"histlogo/internal/display"
	"histlogo/internal/pipeline"
	"histlogo/internal/plot"
	"histlogo/internal/version"

	"gocv.io/x/gocv"
)

type options struct {
	file       string
	img        string
	frameNo    int
	height     int
	configPath string
	out        string
	html       string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "f", "", "Path to video file")
	flag.StringVar(&opts.img, "img", "", "Path to image")
	flag.IntVar(&opts.frameNo, "frame_no", 0, "Frame index in the video file")
	flag.IntVar(&opts.height, "height", 0, "Resize height in pixels (default from configuration)")
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML configuration")
	flag.StringVar(&opts.out, "o", "logos.png", "Output image for the logo row")
	flag.StringVar(&opts.html, "html", "", "Optional HTML page with the histogram plots")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if (opts.file == "") == (opts.img == "") {
		fmt.Println("Usage: histsnap (-f <video> [-frame_no n] | -img <image>) [-o logos.png] [-html plots.html]")
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}
	if opts.height > 0 {
		cfg.ResizeHeight = opts.height
	}

	var src capture.Source
	var err error
	if opts.img != "" {
		src, err = capture.OpenImage(opts.img)
	} else {
		src, err = capture.OpenFileAt(opts.file, opts.frameNo)
	}
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	recorder := display.NewRecorder()
	defer recorder.Close()

	session, err := pipeline.NewSession(cfg, recorder)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.Close()

	session.ShowReference()
	result, err := session.RunSingle(src)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Printf("histsnap %s\n", version.String())
	fmt.Printf("Frame %d resized to %dx%d\n", result.Index, result.Size.Width, result.Size.Height)
	fmt.Printf("%-4s %10s %10s %10s  %-6s %6s %8s %8s\n", "Bin", "Blue", "Green", "Red", "Lead", "Radius", "Angle2", "Angle3")
	for _, bin := range result.Bins {
		c := bin.Record.Counts
		fmt.Printf("%-4d %10.0f %10.0f %10.0f  %-6s %6d %8.1f %8.1f\n",
			bin.Record.Bin, c[0], c[1], c[2],
			bin.Shapes[0].Channel, bin.Shapes[0].Radius, bin.Shapes[1].Angle, bin.Shapes[2].Angle)
	}

	for _, o := range outputs(opts.out) {
		if err := writeSurface(recorder, o.surface, o.path); err != nil {
			return err
		}
	}

	if opts.html != "" {
		if err := plot.SaveHTML(opts.html, result.Full, result.Coarse); err != nil {
			return fmt.Errorf("failed to write plots: %w", err)
		}
		fmt.Printf("Plots written to %s\n", opts.html)
	}
	return nil
}

// output pairs a recorded surface with the file it is written to.
type output struct {
	surface string
	path    string
}

// outputs derives the PNG files written next to the logo row at out.
func outputs(out string) []output {
	base := strings.TrimSuffix(out, filepath.Ext(out))
	return []output{
		{display.Logos, out},
		{display.DefaultLogo, base + "_default.png"},
		{display.LinePlot, base + "_line.png"},
		{display.BarPlot, base + "_bars.png"},
	}
}

func writeSurface(rec *display.Recorder, name, path string) error {
	img, ok := rec.Last(name)
	defer img.Close()
	if !ok {
		return fmt.Errorf("nothing was shown on %s", name)
	}
	if !gocv.IMWrite(path, img) {
		return fmt.Errorf("failed to write %s", path)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", path, img.Cols(), img.Rows())
	return nil
}
