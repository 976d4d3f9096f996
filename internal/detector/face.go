package detector

import (
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

const (
	// MinFaceRatio is the smallest face-to-frame area ratio that counts as a
	// usable face.
	MinFaceRatio = 0.02

	// LossTolerance is how long a face stays "present" after the cascade
	// last saw it, so single-frame dropouts do not flicker the wizard.
	LossTolerance = time.Second
)

// FaceDetector wraps a Haar cascade classifier and debounces its output.
// Not safe for concurrent use.
type FaceDetector struct {
	classifier gocv.CascadeClassifier
	loaded     bool

	lastSeen time.Time
	seen     bool

	now func() time.Time
}

// NewFaceDetector creates a detector with no cascade loaded.
func NewFaceDetector() *FaceDetector {
	return &FaceDetector{
		classifier: gocv.NewCascadeClassifier(),
		now:        time.Now,
	}
}

// Load reads the cascade description from the given file.
func (d *FaceDetector) Load(path string) error {
	if !d.classifier.Load(path) {
		return fmt.Errorf("load cascade %s", path)
	}
	d.loaded = true
	return nil
}

// Observe runs the cascade on a frame and returns the debounced presence
// flag. Without a loaded cascade every frame reports absent.
func (d *FaceDetector) Observe(frame *gocv.Mat) bool {
	if !d.loaded || frame == nil || frame.Empty() {
		return d.update(false)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)

	rects := d.classifier.DetectMultiScaleWithParams(
		gray, 1.1, 5, 0, image.Pt(100, 100), image.Pt(0, 0))

	found := false
	frameArea := frame.Cols() * frame.Rows()
	for _, r := range rects {
		if frameArea > 0 && float64(r.Dx()*r.Dy()) >= MinFaceRatio*float64(frameArea) {
			found = true
			break
		}
	}

	return d.update(found)
}

// update folds one raw detection result into the debounced state: a hit
// refreshes the timestamp, a miss only flips to absent once the tolerance
// window has passed.
func (d *FaceDetector) update(found bool) bool {
	now := d.now()
	if found {
		d.seen = true
		d.lastSeen = now
		return true
	}
	if d.seen && now.Sub(d.lastSeen) <= LossTolerance {
		return true
	}
	d.seen = false
	return false
}

// Close releases the classifier.
func (d *FaceDetector) Close() error {
	return d.classifier.Close()
}
