package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testCapture() *Capture {
	return &Capture{
		ID:               uuid.New().String(),
		FilePath:         "/tmp/makeover_20260830_101500.jpg",
		BackgroundID:     "office_modern",
		ClothingCategory: "shirts",
		ClothingItem:     0,
		AccessoryType:    "ties",
		AccessoryItem:    2,
	}
}

func TestCaptureRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	c := testCapture()
	if err := repo.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.CreatedAt.IsZero() {
		t.Error("Create did not stamp CreatedAt")
	}

	got, err := repo.GetByID(c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FilePath != c.FilePath || got.BackgroundID != c.BackgroundID {
		t.Errorf("got %+v, want %+v", got, c)
	}
	if got.ClothingCategory != "shirts" || got.ClothingItem != 0 {
		t.Errorf("clothing = %q/%d, want shirts/0", got.ClothingCategory, got.ClothingItem)
	}
	if got.AccessoryType != "ties" || got.AccessoryItem != 2 {
		t.Errorf("accessory = %q/%d, want ties/2", got.AccessoryType, got.AccessoryItem)
	}
}

func TestCaptureRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Captures().GetByID(uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCaptureRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		c := testCapture()
		if err := repo.Create(c); err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids[c.ID] = true
	}

	captures, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(captures) != 3 {
		t.Fatalf("listed %d captures, want 3", len(captures))
	}
	for _, c := range captures {
		if !ids[c.ID] {
			t.Errorf("unexpected capture id %s", c.ID)
		}
	}
}

func TestCaptureRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	c := testCapture()
	if err := repo.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(c.ID); !errors.Is(err, ErrNotFound) {
		t.Error("capture still present after delete")
	}

	if err := repo.Delete(c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	t.Run("missing key", func(t *testing.T) {
		if _, err := repo.Get("camera_id"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := repo.Set("camera_id", "1"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, err := repo.Get("camera_id")
		if err != nil || v != "1" {
			t.Errorf("Get = (%q, %v), want (1, nil)", v, err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := repo.Set("camera_id", "2"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, _ := repo.Get("camera_id")
		if v != "2" {
			t.Errorf("Get after overwrite = %q, want 2", v)
		}
	})

	t.Run("all", func(t *testing.T) {
		if err := repo.Set("tracking_enabled", "true"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		all, err := repo.All()
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		if all["camera_id"] != "2" || all["tracking_enabled"] != "true" {
			t.Errorf("All = %v", all)
		}
	})
}
