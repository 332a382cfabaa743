// Package main provides the entry point for the histogram logo viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"histlogo/internal/capture"
	"histlogo/internal/config"
	"histlogo/internal/display"
	"histlogo/internal/pipeline"
	"histlogo/internal/plot"
	"histlogo/internal/version"
)

const appTitle = "Histogram Logo Viewer"

type options struct {
	file       string
	height     int
	image      string
	frameNo    int
	configPath string
	camera     int
	plotHTML   string
	debug      bool
}

func parseArguments() options {
	var opts options
	flag.StringVar(&opts.file, "f", "", "Path to video file (if empty, using camera)")
	flag.IntVar(&opts.height, "height", 0, "Resize video to specified height in pixels (maintains aspect). Default value is 360px")
	flag.StringVar(&opts.image, "img", "", "Path to image")
	flag.IntVar(&opts.frameNo, "frame_no", -1, "Number of the frame")
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML configuration")
	flag.IntVar(&opts.camera, "camera", -1, "Camera device id (overrides configuration)")
	flag.StringVar(&opts.plotHTML, "plot-html", "", "Write the last frame's histograms as an HTML page on exit")
	flag.BoolVar(&opts.debug, "debug", false, "Log every pipeline stage")
	flag.Parse()
	return opts
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	opts := parseArguments()
	if opts.image != "" && opts.frameNo >= 0 {
		fmt.Fprintln(os.Stderr, "-img and -frame_no are mutually exclusive")
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// run owns every resource of the viewer so that all of them are released
// before main exits.
func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	src, single, err := openSource(opts, cfg)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer src.Close()

	windows := display.NewWindows()
	defer windows.Close()

	session, err := pipeline.NewSession(cfg, windows)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	defer session.Close()

	session.ShowReference()

	if single {
		if _, err := session.RunSingle(src); err != nil {
			log.Printf("Pipeline: %v", err)
		}
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := session.Run(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Pipeline: %v", err)
		}
	}

	if opts.plotHTML != "" && session.Frames() > 0 {
		full, coarse := session.LastHistograms()
		if err := plot.SaveHTML(opts.plotHTML, full, coarse); err != nil {
			log.Printf("Plot: %v", err)
		} else {
			log.Printf("Plot: histograms written to %s", opts.plotHTML)
		}
	}
	return nil
}

// loadConfig reads the optional configuration file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.height > 0 {
		cfg.ResizeHeight = opts.height
	}
	if opts.camera >= 0 {
		cfg.Capture.CameraID = opts.camera
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, config.Validate(cfg)
}

// openSource picks the frame source from the flags. The bool reports
// single-frame mode.
func openSource(opts options, cfg *config.Config) (capture.Source, bool, error) {
	switch {
	case opts.image != "":
		if !capture.IsSupportedFormat(opts.image) {
			log.Printf("Capture: %s has an unrecognised extension, trying to decode anyway", opts.image)
		}
		src, err := capture.OpenImage(opts.image)
		return src, true, err
	case opts.frameNo >= 0 && opts.file != "":
		src, err := capture.OpenFileAt(opts.file, opts.frameNo)
		return src, true, err
	case opts.frameNo >= 0:
		return nil, false, fmt.Errorf("-frame_no needs a video file (-f)")
	case opts.file != "":
		src, err := capture.OpenFile(opts.file)
		return src, false, err
	default:
		src, err := capture.OpenCamera(cfg.Capture.CameraID)
		return src, false, err
	}
}
