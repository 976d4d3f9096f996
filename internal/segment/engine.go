// Package segment composites the segmented person over a virtual backdrop.
package segment

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrNoBackdrop is returned when compositing is requested before a backdrop
// has been set.
var ErrNoBackdrop = errors.New("no backdrop set")

// Engine blends camera frames with a backdrop image using a person
// probability mask. The backdrop is cached, resized once per frame geometry.
// Not safe for concurrent use.
type Engine struct {
	backdropPath string
	backdrop     gocv.Mat
	scaled       gocv.Mat
	scaledSize   image.Point
	loaded       bool
	hasScaled    bool
}

// NewEngine creates an engine with no backdrop.
func NewEngine() *Engine {
	return &Engine{}
}

// SetBackdrop loads the backdrop image at the given path, replacing any
// previous one. Setting the same path again is a no-op.
func (e *Engine) SetBackdrop(path string) error {
	if e.loaded && path == e.backdropPath {
		return nil
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return fmt.Errorf("read backdrop %s", path)
	}

	e.dropCached()
	e.backdrop = img
	e.backdropPath = path
	e.loaded = true
	return nil
}

// SetBackdropMat installs an in-memory backdrop, taking ownership of the Mat.
// Used for generated gradient scenes that never touch disk.
func (e *Engine) SetBackdropMat(img gocv.Mat) error {
	if img.Empty() {
		img.Close()
		return errors.New("empty backdrop")
	}
	e.dropCached()
	e.backdrop = img
	e.backdropPath = ""
	e.loaded = true
	return nil
}

// HasBackdrop reports whether a backdrop is loaded.
func (e *Engine) HasBackdrop() bool {
	return e.loaded
}

// Apply composites the person in frame over the backdrop and returns a new
// frame the caller must close. A nil mask means segmentation produced
// nothing this frame; the original frame is returned unblended.
func (e *Engine) Apply(frame *gocv.Mat, mask *gocv.Mat) (gocv.Mat, error) {
	if frame == nil || frame.Empty() {
		return gocv.Mat{}, errors.New("empty frame")
	}
	if !e.loaded {
		return gocv.Mat{}, ErrNoBackdrop
	}
	if mask == nil || mask.Empty() {
		return frame.Clone(), nil
	}

	rows, cols := frame.Rows(), frame.Cols()
	backdrop := e.scaledBackdrop(cols, rows)

	// Match the mask to the frame and soften its edges so the person does
	// not get a hard cut-out border.
	var softMask gocv.Mat
	if mask.Rows() != rows || mask.Cols() != cols {
		softMask = gocv.NewMat()
		gocv.Resize(*mask, &softMask, image.Pt(cols, rows), 0, 0, gocv.InterpolationLinear)
	} else {
		softMask = mask.Clone()
	}
	defer softMask.Close()
	Soften(&softMask)

	// alpha in [0,1], expanded to three channels.
	alpha1 := gocv.NewMat()
	defer alpha1.Close()
	softMask.ConvertToWithParams(&alpha1, gocv.MatTypeCV32F, 1.0/255.0, 0)

	alpha := gocv.NewMat()
	defer alpha.Close()
	gocv.Merge([]gocv.Mat{alpha1, alpha1, alpha1}, &alpha)

	frameF := gocv.NewMat()
	defer frameF.Close()
	frame.ConvertTo(&frameF, gocv.MatTypeCV32FC3)

	backdropF := gocv.NewMat()
	defer backdropF.Close()
	backdrop.ConvertTo(&backdropF, gocv.MatTypeCV32FC3)

	fg := gocv.NewMat()
	defer fg.Close()
	gocv.Multiply(frameF, alpha, &fg)

	ones := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 1, 1, 0), rows, cols, gocv.MatTypeCV32FC3)
	defer ones.Close()
	inverse := gocv.NewMat()
	defer inverse.Close()
	gocv.Subtract(ones, alpha, &inverse)

	bg := gocv.NewMat()
	defer bg.Close()
	gocv.Multiply(backdropF, inverse, &bg)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.Add(fg, bg, &blended)

	out := gocv.NewMat()
	blended.ConvertTo(&out, gocv.MatTypeCV8UC3)
	return out, nil
}

// Soften smooths a mask in place to feather the segmentation boundary.
func Soften(mask *gocv.Mat) {
	if mask == nil || mask.Empty() {
		return
	}
	gocv.MedianBlur(*mask, mask, 5)
	gocv.GaussianBlur(*mask, mask, image.Pt(3, 3), 0, 0, gocv.BorderDefault)
}

// scaledBackdrop returns the backdrop resized to the given frame geometry,
// reusing the cached copy when the size has not changed.
func (e *Engine) scaledBackdrop(cols, rows int) *gocv.Mat {
	want := image.Pt(cols, rows)
	if e.hasScaled && e.scaledSize == want {
		return &e.scaled
	}
	if e.hasScaled {
		e.scaled.Close()
	}
	e.scaled = gocv.NewMat()
	gocv.Resize(e.backdrop, &e.scaled, want, 0, 0, gocv.InterpolationLinear)
	e.scaledSize = want
	e.hasScaled = true
	return &e.scaled
}

func (e *Engine) dropCached() {
	if e.loaded {
		e.backdrop.Close()
		e.loaded = false
	}
	if e.hasScaled {
		e.scaled.Close()
		e.hasScaled = false
	}
}

// Close releases the cached backdrop.
func (e *Engine) Close() {
	e.dropCached()
}
