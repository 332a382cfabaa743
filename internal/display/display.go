// Package display shows Mats on named surfaces.
package display

import (
	"gocv.io/x/gocv"
)

// Surface names used by the viewer.
const (
	Video       = "video"
	DefaultLogo = "opencv_logo_default"
	Logos       = "opencv_logo_draw"
	LinePlot    = "histogram_line"
	BarPlot     = "histogram_bars"
)

// KeyEscape is the key code that stops streaming.
const KeyEscape = 27

// Display is where processed images are shown.
// Show must not retain img after it returns.
type Display interface {
	Show(name string, img gocv.Mat)
	// WaitKey refreshes the surfaces and returns the pressed key or -1.
	// A delay of 0 blocks until a key is pressed.
	WaitKey(delay int) int
	Close() error
}

// Windows displays each surface in its own resizable OpenCV window.
type Windows struct {
	windows map[string]*gocv.Window
	order   []string
}

// NewWindows creates an empty window set; windows open on first Show.
func NewWindows() *Windows {
	return &Windows{windows: make(map[string]*gocv.Window)}
}

func (w *Windows) window(name string) *gocv.Window {
	win, ok := w.windows[name]
	if !ok {
		win = gocv.NewWindow(name)
		win.ResizeWindow(640, 480)
		w.windows[name] = win
		w.order = append(w.order, name)
	}
	return win
}

// Show draws img into the named window.
func (w *Windows) Show(name string, img gocv.Mat) {
	w.window(name).IMShow(img)
}

// WaitKey pumps the window event loop.
func (w *Windows) WaitKey(delay int) int {
	if len(w.order) == 0 {
		return -1
	}
	key := w.windows[w.order[0]].WaitKey(delay)
	if key < 0 {
		return -1
	}
	return key & 0xFF
}

// Close destroys every window.
func (w *Windows) Close() error {
	var firstErr error
	for _, name := range w.order {
		if err := w.windows[name].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.windows = make(map[string]*gocv.Window)
	w.order = nil
	return firstErr
}

// Recorder keeps a copy of the last image shown on each surface.
// It replays a scripted key sequence from WaitKey, then returns -1.
// Like the session it serves, it is not safe for concurrent use.
type Recorder struct {
	frames map[string]gocv.Mat
	shows  map[string]int
	keys   []int
}

// NewRecorder creates a recorder that answers WaitKey with keys in order.
func NewRecorder(keys ...int) *Recorder {
	return &Recorder{
		frames: make(map[string]gocv.Mat),
		shows:  make(map[string]int),
		keys:   keys,
	}
}

// Show stores a clone of img under name.
func (r *Recorder) Show(name string, img gocv.Mat) {
	if old, ok := r.frames[name]; ok {
		old.Close()
	}
	r.frames[name] = img.Clone()
	r.shows[name]++
}

// WaitKey returns the next scripted key.
func (r *Recorder) WaitKey(delay int) int {
	if len(r.keys) == 0 {
		return -1
	}
	key := r.keys[0]
	r.keys = r.keys[1:]
	return key
}

// Last returns a clone of the last image shown on name. The caller owns it.
func (r *Recorder) Last(name string) (gocv.Mat, bool) {
	img, ok := r.frames[name]
	if !ok {
		return gocv.NewMat(), false
	}
	return img.Clone(), true
}

// Shows returns how many times name was shown.
func (r *Recorder) Shows(name string) int {
	return r.shows[name]
}

// Close releases the stored images.
func (r *Recorder) Close() error {
	for name, img := range r.frames {
		img.Close()
		delete(r.frames, name)
	}
	return nil
}
