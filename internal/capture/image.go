package capture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Still yields a single decoded image, then end of stream.
type Still struct {
	frame gocv.Mat
	path  string
	done  bool
}

// OpenImage loads a still image. OpenCV decodes it when it can; otherwise the
// Go decoders (PNG, JPEG, TIFF) are tried.
func OpenImage(path string) (*Still, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, ErrUnavailable, err)
	}

	frame := gocv.IMRead(path, gocv.IMReadColor)
	if frame.Empty() {
		frame.Close()
		var err error
		frame, err = decodeImage(path)
		if err != nil {
			return nil, err
		}
	}
	return &Still{frame: frame, path: path}, nil
}

// NewStill wraps an already decoded BGR frame. The Still takes ownership.
func NewStill(frame gocv.Mat, name string) *Still {
	return &Still{frame: frame, path: name}
}

// decodeImage converts a Go-decoded image into a BGR Mat.
func decodeImage(path string) (gocv.Mat, error) {
	file, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}
	return imageToMat(img), nil
}

// imageToMat converts a Go image.Image to a BGR OpenCV Mat.
func imageToMat(src image.Image) gocv.Mat {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}

// Read copies the image into dst the first time and reports end of stream after.
func (s *Still) Read(dst *gocv.Mat) error {
	if s.done || s.frame.Empty() {
		return ErrEndOfStream
	}
	s.frame.CopyTo(dst)
	s.done = true
	return nil
}

// Name returns the image path.
func (s *Still) Name() string {
	return s.path
}

// Close releases the decoded image.
func (s *Still) Close() error {
	return s.frame.Close()
}

// SupportedFormats returns the still image extensions the viewer accepts.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}
}

// IsSupportedFormat checks if path has a supported still image extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
