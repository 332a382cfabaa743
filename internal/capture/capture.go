// Package capture opens the frame sources the viewer can read from.
package capture

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	// ErrUnavailable is returned when a camera or file cannot be opened.
	ErrUnavailable = errors.New("cannot open camera or find file on given path")
	// ErrEndOfStream is returned by Read once no more frames are available.
	ErrEndOfStream = errors.New("end of stream")
)

// Source yields BGR frames in capture order.
type Source interface {
	// Read decodes the next frame into dst.
	Read(dst *gocv.Mat) error
	// Name describes the source for log output.
	Name() string
	Close() error
}

// Video reads frames from a gocv.VideoCapture.
type Video struct {
	capture *gocv.VideoCapture
	name    string
	frames  int
}

// OpenCamera opens a live camera by device id.
func OpenCamera(id int) (*Video, error) {
	return openVideo(id, fmt.Sprintf("camera %d", id))
}

// OpenFile opens a video file.
func OpenFile(path string) (*Video, error) {
	return openVideo(path, path)
}

// OpenFileAt opens a video file positioned at frame index.
func OpenFileAt(path string, index int) (*Video, error) {
	if index < 0 {
		return nil, fmt.Errorf("open %s: negative frame index %d", path, index)
	}
	v, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	v.capture.Set(gocv.VideoCapturePosFrames, float64(index))
	v.name = fmt.Sprintf("%s@%d", path, index)
	return v, nil
}

func openVideo(device interface{}, name string) (*Video, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", name, ErrUnavailable, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open %s: %w", name, ErrUnavailable)
	}
	return &Video{capture: vc, name: name}, nil
}

// Read grabs the next frame.
func (v *Video) Read(dst *gocv.Mat) error {
	if ok := v.capture.Read(dst); !ok || dst.Empty() {
		return ErrEndOfStream
	}
	v.frames++
	return nil
}

// Name describes the source.
func (v *Video) Name() string {
	return v.name
}

// Frames returns the number of frames read so far.
func (v *Video) Frames() int {
	return v.frames
}

// Close releases the capture device.
func (v *Video) Close() error {
	return v.capture.Close()
}
