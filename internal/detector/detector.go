// Package detector turns camera frames into the signals the makeover
// pipeline consumes: an index fingertip position, a face-presence flag and a
// person segmentation mask.
package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// Observation is the per-frame detection result. Finger is nil when no hand
// is tracked. Mask is a single-channel person probability mask owned by the
// caller once returned; it may be nil when segmentation produced nothing.
type Observation struct {
	Finger      *image.Point
	FacePresent bool
	Mask        *gocv.Mat
}

// Close releases the mask, if any.
func (o *Observation) Close() {
	if o.Mask != nil {
		o.Mask.Close()
		o.Mask = nil
	}
}

// Detector defines the interface for fingertip and segmentation backends.
type Detector interface {
	// Detect analyzes a video frame and returns the observation for it.
	Detect(frame *gocv.Mat) (Observation, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for detection.
type Config struct {
	// MaxHands is the maximum number of hands to track (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
