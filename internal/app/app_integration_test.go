package app

import (
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/assets"
	"github.com/ayusman/makeover/internal/capture"
	"github.com/ayusman/makeover/internal/detector"
	"github.com/ayusman/makeover/internal/store"
	"github.com/ayusman/makeover/internal/workflow"
)

// newTestApp wires an App to a looping mock camera and a mock detector, with
// a dwell threshold short enough to click within a few frames.
func newTestApp(t *testing.T) (*App, *detector.MockDetector, *store.Store) {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	// Seed a couple of clothing items so the pickers have content.
	assetDir := filepath.Join(tmpDir, "assets")
	for _, category := range []string{"tshirts", "shirts"} {
		dir := filepath.Join(assetDir, "clothing", category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"a.jpg", "b.jpg"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	lib, err := assets.Load(assetDir)
	if err != nil {
		t.Fatalf("assets.Load() error = %v", err)
	}

	a := New(Config{
		Store:       s,
		Assets:      lib,
		SaveDir:     filepath.Join(tmpDir, "captures"),
		HoldSeconds: 0.05,
	})

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(80, 80, 80, 0), 720, 1280, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	mockCam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	mockCam.Open()
	a.SetCamera(mockCam)

	mock := detector.NewMockDetector()
	a.SetDetector(mock)

	return a, mock, s
}

// dwellClick points the mock finger at a position and processes frames until
// the dwell click has fired.
func dwellClick(a *App, mock *detector.MockDetector, pos image.Point) {
	mock.SetFinger(&pos)
	a.processFrame()
	time.Sleep(60 * time.Millisecond)
	a.processFrame()
	mock.SetFinger(nil)
	a.processFrame()
}

func targetCenter(t *testing.T, a *App, index int) image.Point {
	t.Helper()
	for _, target := range a.Registry().Targets() {
		if target.Index == index {
			return target.Visual.Min.Add(target.Visual.Max).Div(2)
		}
	}
	t.Fatalf("no target with index %d", index)
	return image.Point{}
}

func TestApp_FullWizardRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock, s := newTestApp(t)

	a.processFrame()
	if got := a.Snapshot().State.Step; got != workflow.StepWelcome {
		t.Fatalf("step = %v, want welcome", got)
	}
	if _, ok := a.OutputFrame(); !ok {
		t.Fatal("no output frame published")
	}

	// Welcome screen runs on its own timer.
	time.Sleep(workflow.WelcomeDuration)
	a.processFrame()
	if got := a.Snapshot().State.Step; got != workflow.StepFaceDetection {
		t.Fatalf("step = %v, want face_detection", got)
	}

	// Hold a face for the required window.
	mock.SetFacePresent(true)
	a.processFrame()
	time.Sleep(workflow.FaceHoldDuration)
	a.processFrame()
	if got := a.Snapshot().State.Step; got != workflow.StepBackgroundSelection {
		t.Fatalf("step = %v, want background_selection", got)
	}

	// Background grid is laid out; dwell on scene 2.
	if n := a.Registry().Len(); n != 8 {
		t.Fatalf("background layout has %d targets, want 8", n)
	}
	dwellClick(a, mock, targetCenter(t, a, 2))

	st := a.Snapshot().State
	if st.Step != workflow.StepClothingSelection || st.Substep != workflow.SubstepInitial {
		t.Fatalf("after background click: %+v", st)
	}
	if st.BackgroundID == "" {
		t.Fatal("background id not recorded")
	}

	// T-shirts branch, then the first item.
	dwellClick(a, mock, targetCenter(t, a, 0))
	if got := a.Snapshot().State.Substep; got != workflow.SubstepTShirtPick {
		t.Fatalf("substep = %v, want tshirt_pick", got)
	}

	dwellClick(a, mock, targetCenter(t, a, 0))
	st = a.Snapshot().State
	if st.Step != workflow.StepComplete {
		t.Fatalf("step = %v, want complete", st.Step)
	}
	if st.ClothingType != workflow.CategoryTShirts || st.ClothingItem != 0 {
		t.Errorf("clothing = %q/%d, want tshirts/0", st.ClothingType, st.ClothingItem)
	}

	// A dwell click on the completion screen saves the photo.
	dwellClick(a, mock, image.Pt(640, 360))

	snap := a.Snapshot()
	if snap.LastSavePath == "" {
		t.Fatal("save path not recorded in snapshot")
	}
	if _, err := os.Stat(snap.LastSavePath); err != nil {
		t.Errorf("saved photo missing: %v", err)
	}

	captures, err := s.Captures().List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(captures) != 1 {
		t.Fatalf("recorded %d captures, want 1", len(captures))
	}
	if captures[0].BackgroundID != st.BackgroundID || captures[0].ClothingCategory != workflow.CategoryTShirts {
		t.Errorf("capture record = %+v", captures[0])
	}
}

func TestApp_DisabledTrackingIgnoresFinger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock, _ := newTestApp(t)

	time.Sleep(workflow.WelcomeDuration)
	a.processFrame()
	mock.SetFacePresent(true)
	a.processFrame()
	time.Sleep(workflow.FaceHoldDuration)
	a.processFrame()
	a.processFrame()

	a.SetEnabled(false)
	before := a.Snapshot().State

	dwellClick(a, mock, targetCenter(t, a, 0))
	if got := a.Snapshot().State; got != before {
		t.Errorf("disabled tracking still advanced the wizard: %+v", got)
	}
	if a.Snapshot().Pointer != nil {
		t.Error("snapshot exposes a pointer while tracking is disabled")
	}

	a.SetEnabled(true)
	dwellClick(a, mock, targetCenter(t, a, 0))
	if got := a.Snapshot().State.Step; got != workflow.StepClothingSelection {
		t.Errorf("re-enabled tracking did not advance the wizard: step = %v", got)
	}
}

func TestApp_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, _ := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Let the pipeline publish a few frames.
	time.Sleep(200 * time.Millisecond)
	if _, ok := a.OutputFrame(); !ok {
		t.Error("pipeline produced no output frames")
	}

	a.Stop()

	// Second stop must be safe.
	a.Stop()
}

// Restart and tracking commands arrive from HTTP and tray goroutines while
// the pipeline is mid-frame; they must queue up rather than touch the wizard,
// tracker or registry directly.
func TestApp_ConcurrentControl(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock, _ := newTestApp(t)
	mock.SetFacePresent(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				a.RestartWizard()
				a.SetEnabled(i%2 == 0)
				a.Snapshot()
				a.IsEnabled()
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	a.SetEnabled(true)
	a.RestartWizard()

	// The queued reset lands on the next frame.
	time.Sleep(100 * time.Millisecond)
	if got := a.Snapshot().State.Step; got != workflow.StepWelcome {
		t.Errorf("step after concurrent control = %v, want welcome", got)
	}
	if !a.Snapshot().TrackingEnabled {
		t.Error("tracking flag lost after concurrent toggling")
	}
}

func TestApp_RestartWizard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock, _ := newTestApp(t)

	time.Sleep(workflow.WelcomeDuration)
	a.processFrame()
	mock.SetFacePresent(true)
	a.processFrame()
	time.Sleep(workflow.FaceHoldDuration)
	a.processFrame()
	if got := a.Snapshot().State.Step; got != workflow.StepBackgroundSelection {
		t.Fatalf("step = %v, want background_selection", got)
	}

	a.RestartWizard()
	a.processFrame()
	if got := a.Snapshot().State.Step; got != workflow.StepWelcome {
		t.Errorf("step after restart = %v, want welcome", got)
	}
	if a.Registry().Len() != 0 {
		t.Error("restart left targets registered")
	}
}
