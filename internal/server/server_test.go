package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayusman/makeover/internal/app"
	"github.com/ayusman/makeover/internal/workflow"
)

// fakeApp implements Controller for handler tests.
type fakeApp struct {
	snapshot app.Snapshot
	enabled  bool
	restarts int
	frame    []byte
}

func (f *fakeApp) Snapshot() app.Snapshot { return f.snapshot }
func (f *fakeApp) RestartWizard()         { f.restarts++ }
func (f *fakeApp) SetEnabled(v bool)      { f.enabled = v }
func (f *fakeApp) IsEnabled() bool        { return f.enabled }
func (f *fakeApp) OutputFrame() ([]byte, bool) {
	if f.frame == nil {
		return nil, false
	}
	return f.frame, true
}

func newTestServer() (*Server, *fakeApp) {
	fake := &fakeApp{
		enabled: true,
		snapshot: app.Snapshot{
			State: workflow.State{
				Step:         workflow.StepBackgroundSelection,
				ClothingItem: workflow.NoItem,
			},
			TrackingEnabled: true,
		},
	}
	return New(Config{App: fake}), fake
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", w.Code)
	}
}

func TestHandleState(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var snap app.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State.Step != workflow.StepBackgroundSelection {
		t.Errorf("step = %v, want background_selection", snap.State.Step)
	}
	if !snap.TrackingEnabled {
		t.Error("tracking flag lost in transit")
	}
}

func TestHandleRestart(t *testing.T) {
	s, fake := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/restart", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if fake.restarts != 1 {
		t.Errorf("restarts = %d, want 1", fake.restarts)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/restart", nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}
}

func TestHandleTracking(t *testing.T) {
	s, fake := newTestServer()

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tracking", nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		var body map[string]bool
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body["enabled"] {
			t.Error("enabled = false, want true")
		}
	})

	t.Run("disable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tracking", strings.NewReader(`{"enabled":false}`))
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}
		if fake.enabled {
			t.Error("tracking still enabled after disable request")
		}
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tracking", strings.NewReader("{"))
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestStream_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
