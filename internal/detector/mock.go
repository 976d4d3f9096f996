package detector

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, including while
// the pipeline is running.
type MockDetector struct {
	mu  sync.Mutex
	obs Observation
	err error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFinger sets the fingertip position Detect reports; nil means no hand.
func (m *MockDetector) SetFinger(p *image.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs.Finger = p
}

// SetFacePresent sets the face flag Detect reports.
func (m *MockDetector) SetFacePresent(present bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs.FacePresent = present
}

// SetMask sets the segmentation mask Detect reports. The mock does not take
// ownership; each Detect call hands out a clone, so the test keeps closing
// rights on the original.
func (m *MockDetector) SetMask(mask *gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs.Mask = mask
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured observation or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Observation{}, m.err
	}
	obs := m.obs
	if m.obs.Mask != nil {
		clone := m.obs.Mask.Clone()
		obs.Mask = &clone
	}
	return obs, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
