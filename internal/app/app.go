// Package app provides the main application logic for the Makeover photo booth.
package app

import (
	"image"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/assets"
	"github.com/ayusman/makeover/internal/capture"
	"github.com/ayusman/makeover/internal/detector"
	"github.com/ayusman/makeover/internal/hittest"
	"github.com/ayusman/makeover/internal/overlay"
	"github.com/ayusman/makeover/internal/pointer"
	"github.com/ayusman/makeover/internal/segment"
	"github.com/ayusman/makeover/internal/store"
	"github.com/ayusman/makeover/internal/workflow"
)

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	Assets          *assets.Library
	CameraID        int
	FPS             int
	SaveDir         string
	CascadeFile     string
	HoldSeconds     float64
	StabilityRadius float64
}

// Snapshot is the externally visible application state, broadcast to UI
// clients and returned by the API.
type Snapshot struct {
	State           workflow.State `json:"state"`
	TrackingEnabled bool           `json:"tracking_enabled"`
	Pointer         *image.Point   `json:"pointer,omitempty"`
	DwellProgress   float64        `json:"dwell_progress"`
	FaceProgress    float64        `json:"face_progress"`
	EmptyCategory   bool           `json:"empty_category"`
	LastSavePath    string         `json:"last_save_path,omitempty"`
}

// App orchestrates the camera, detection, the wizard and rendering.
type App struct {
	config    Config
	camera    capture.Camera
	detector  detector.Detector
	face      *detector.FaceDetector
	tracker   *pointer.Tracker
	registry  *hittest.Registry
	wizard    *workflow.Workflow
	segmenter *segment.Engine
	renderer  *overlay.Renderer

	enabled bool
	restart bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	frameMu     sync.RWMutex
	latest      gocv.Mat
	hasLatest   bool
	snapshot    Snapshot
	notice      string
	noticeUntil time.Time
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	registry := hittest.NewRegistry()

	a := &App{
		config:    config,
		camera:    capture.NewCamera(config.CameraID),
		face:      detector.NewFaceDetector(),
		tracker:   pointer.NewTracker(),
		registry:  registry,
		wizard:    workflow.New(registry, config.Assets),
		segmenter: segment.NewEngine(),
		renderer:  overlay.NewRenderer(),
		enabled:   true,
	}

	if config.HoldSeconds > 0 {
		a.tracker.SetHoldThreshold(time.Duration(config.HoldSeconds * float64(time.Second)))
	}
	if config.StabilityRadius > 0 {
		a.tracker.SetStabilityRadius(config.StabilityRadius)
	}

	if config.CascadeFile != "" {
		if err := a.face.Load(config.CascadeFile); err != nil {
			log.Printf("Face cascade not available (%v), relying on detector face flag", err)
		}
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand tracking and segmentation")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables pointer tracking. While disabled the
// pipeline keeps showing frames but the wizard sees no pointer, and any dwell
// in progress is dropped on the next frame.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether pointer tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// RestartWizard puts the selection wizard back on the welcome screen. The
// reset is applied at the top of the next frame; the wizard, tracker and
// registry are only ever touched from the pipeline goroutine.
func (a *App) RestartWizard() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restart = true
}

// Start opens the camera and begins the frame pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	fps := a.config.FPS
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	a.camera.SetFPS(fps)

	a.stopCh = make(chan struct{})
	go a.runPipeline(fps)

	log.Println("Makeover pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if err := a.face.Close(); err != nil {
		log.Printf("Error closing face detector: %v", err)
	}

	a.segmenter.Close()
	a.renderer.Close()

	a.frameMu.Lock()
	if a.hasLatest {
		a.latest.Close()
		a.hasLatest = false
	}
	a.frameMu.Unlock()

	log.Println("Makeover pipeline stopped")
}

// Snapshot returns the most recent published application state.
func (a *App) Snapshot() Snapshot {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.snapshot
}

// OutputFrame encodes the most recent composited frame as JPEG.
// Returns false when no frame has been produced yet.
func (a *App) OutputFrame() ([]byte, bool) {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()

	if !a.hasLatest {
		return nil, false
	}
	buf, err := gocv.IMEncode(".jpg", a.latest)
	if err != nil {
		log.Printf("Error encoding output frame: %v", err)
		return nil, false
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, true
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// SetCamera replaces the camera. Only valid before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Workflow returns the selection wizard.
func (a *App) Workflow() *workflow.Workflow {
	return a.wizard
}

// Tracker returns the dwell tracker.
func (a *App) Tracker() *pointer.Tracker {
	return a.tracker
}

// Registry returns the hit-test registry the wizard lays out.
func (a *App) Registry() *hittest.Registry {
	return a.registry
}

// Detector returns the active detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
