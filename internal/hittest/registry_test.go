package hittest

import (
	"image"
	"testing"
)

func TestLayout_Grid8Placement(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateGrid8, "bg", 8)

	if r.Len() != 8 {
		t.Fatalf("placed %d targets, want 8", r.Len())
	}

	// Geometry derived from the layout constants at 1280x720.
	leftX := TileMargin + ClickPadding                       // 50
	rightX := 1280 - TileWidth - TileMargin - ClickPadding   // 1110
	startY := (720 - 4*TileHeight - 3*TileMargin) / 2        // 90
	rowStep := TileHeight + TileMargin                       // 140

	targets := r.Targets()
	for i := 0; i < 4; i++ {
		want := image.Rect(leftX, startY+i*rowStep, leftX+TileWidth, startY+i*rowStep+TileHeight)
		if targets[i].Visual != want {
			t.Errorf("left slot %d visual = %v, want %v", i, targets[i].Visual, want)
		}
	}
	for i := 0; i < 4; i++ {
		got := targets[4+i].Visual
		want := image.Rect(rightX, startY+i*rowStep, rightX+TileWidth, startY+i*rowStep+TileHeight)
		if got != want {
			t.Errorf("right slot %d visual = %v, want %v", i, got, want)
		}
	}

	if targets[0].ID != "bg_0" || targets[7].ID != "bg_7" {
		t.Errorf("target ids = %q..%q, want bg_0..bg_7", targets[0].ID, targets[7].ID)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.Layout(1280, 720, TemplateGrid8, "bg", 8)
	b.Layout(1280, 720, TemplateGrid8, "bg", 8)

	if a.Len() != b.Len() {
		t.Fatalf("target counts differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Targets() {
		if a.Targets()[i] != b.Targets()[i] {
			t.Errorf("target %d differs: %v vs %v", i, a.Targets()[i], b.Targets()[i])
		}
	}
}

func TestLayout_ClickRectPadding(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateGrid8, "bg", 8)

	for _, target := range r.Targets() {
		if !target.Visual.In(target.Click) {
			t.Errorf("%s: click rect %v does not contain visual rect %v",
				target.ID, target.Click, target.Visual)
		}

		want := target.Visual.Inset(-ClickPadding).Intersect(image.Rect(0, 0, 1280, 720))
		if target.Click != want {
			t.Errorf("%s: click rect = %v, want visual expanded by %d and clamped (%v)",
				target.ID, target.Click, ClickPadding, want)
		}
	}
}

func TestLayout_ClickRectClampedAtEdges(t *testing.T) {
	r := NewRegistry()

	// At 540px tall the column exactly fills the screen: the first row's
	// padded rect would start at y=-30 and the last row's would end at
	// y=570. Both must be clamped, and the tiles themselves still placed.
	r.Layout(1280, 540, TemplateGrid8, "bg", 8)
	if r.Len() != 8 {
		t.Fatalf("placed %d targets, want 8", r.Len())
	}

	screen := image.Rect(0, 0, 1280, 540)
	for _, target := range r.Targets() {
		if !target.Click.In(screen) {
			t.Errorf("%s: click rect %v exceeds screen bounds", target.ID, target.Click)
		}
	}

	first := r.Targets()[0]
	if first.Click.Min.Y != 0 {
		t.Errorf("top row click rect starts at y=%d, want clamped to 0", first.Click.Min.Y)
	}
	last := r.Targets()[3]
	if last.Click.Max.Y != 540 {
		t.Errorf("bottom row click rect ends at y=%d, want clamped to 540", last.Click.Max.Y)
	}
}

func TestLayout_BinaryPlacement(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateBinary, "initial", 2)

	if r.Len() != 2 {
		t.Fatalf("placed %d targets, want 2", r.Len())
	}

	grid := NewRegistry()
	grid.Layout(1280, 720, TemplateGrid8, "bg", 8)

	left := r.Targets()[0]
	right := r.Targets()[1]
	if left.Visual != grid.Targets()[1].Visual {
		t.Errorf("binary left = %v, want second left-column grid slot %v",
			left.Visual, grid.Targets()[1].Visual)
	}
	if right.Visual != grid.Targets()[5].Visual {
		t.Errorf("binary right = %v, want second right-column grid slot %v",
			right.Visual, grid.Targets()[5].Visual)
	}
}

func TestLayout_TernaryPlacement(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateTernary, "accessory", 3)

	if r.Len() != 3 {
		t.Fatalf("placed %d targets, want 3", r.Len())
	}

	center := r.Targets()[1]
	wantX := 1280/2 - TileWidth/2
	if center.Visual.Min.X != wantX {
		t.Errorf("center slot x = %d, want %d", center.Visual.Min.X, wantX)
	}
	if center.Visual.Min.Y != r.Targets()[0].Visual.Min.Y {
		t.Error("center slot should share the left slot's row")
	}
}

func TestLayout_SkipsOffscreenTiles(t *testing.T) {
	r := NewRegistry()

	// 200px tall screen cannot fit the four-row column; every slot's visual
	// rect starts above y=0 and is dropped silently.
	r.Layout(1280, 200, TemplateGrid8, "bg", 8)
	if r.Len() != 0 {
		t.Errorf("placed %d targets on an undersized screen, want 0", r.Len())
	}

	pos := image.Pt(100, 100)
	if _, ok := r.HitIndex(&pos); ok {
		t.Error("hit query against an empty layout should miss")
	}
}

func TestLayout_ZeroCountAndUnknownTemplate(t *testing.T) {
	r := NewRegistry()

	r.Layout(1280, 720, TemplateGrid8, "bg", 0)
	if r.Len() != 0 {
		t.Errorf("count 0 placed %d targets", r.Len())
	}

	r.Layout(1280, 720, TemplateNone, "x", 5)
	if r.Len() != 0 {
		t.Errorf("TemplateNone placed %d targets", r.Len())
	}
}

func TestLayout_ExtrasDropped(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateGrid8, "item", 12)
	if r.Len() != 8 {
		t.Errorf("grid placed %d targets for count 12, want 8", r.Len())
	}
	r.Layout(1280, 720, TemplateBinary, "initial", 4)
	if r.Len() != 2 {
		t.Errorf("binary placed %d targets for count 4, want 2", r.Len())
	}
}

func TestLayout_DiscardsPriorTargets(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateGrid8, "bg", 8)

	// A point inside the old grid's first tile.
	inOld := r.Targets()[0].Visual.Min.Add(image.Pt(10, 10))

	r.Layout(1280, 720, TemplateBinary, "initial", 2)
	if r.Len() != 2 {
		t.Fatalf("relayout kept %d targets, want 2", r.Len())
	}
	for _, target := range r.Targets() {
		if target.ID == "bg_0" {
			t.Error("old targets survived relayout")
		}
	}
	_ = inOld // the old top-left slot is not part of the binary pair
	if hit := r.Hover(&inOld); hit != nil && hit.ID == "bg_0" {
		t.Error("hover resolved a discarded target")
	}
}

func TestQueries(t *testing.T) {
	r := NewRegistry()
	r.Layout(1280, 720, TemplateGrid8, "bg", 4)

	t.Run("hit inside padding", func(t *testing.T) {
		target := r.Targets()[2]
		// A point in the left padding strip, level with the tile center.
		// Vertically adjacent click rects overlap, so only a point clear of
		// the neighbors' bands pins down this target.
		p := image.Pt(target.Visual.Min.X-ClickPadding/2,
			(target.Visual.Min.Y+target.Visual.Max.Y)/2)
		if p.In(target.Visual) {
			t.Fatalf("probe point %v is not in the padding", p)
		}
		idx, ok := r.HitIndex(&p)
		if !ok || idx != 2 {
			t.Errorf("HitIndex = (%d, %v), want (2, true)", idx, ok)
		}
	})

	t.Run("overlap resolves to first registered", func(t *testing.T) {
		// Rows are 140px apart and click rects extend 30px beyond the tile,
		// so neighboring click rects share a 40px band.
		band := r.Targets()[0].Click.Intersect(r.Targets()[1].Click)
		if band.Empty() {
			t.Fatal("adjacent click rects should overlap")
		}
		p := band.Min.Add(band.Max).Div(2)
		idx, ok := r.HitIndex(&p)
		if !ok || idx != 0 {
			t.Errorf("HitIndex in overlap band = (%d, %v), want (0, true)", idx, ok)
		}
	})

	t.Run("miss between columns", func(t *testing.T) {
		p := image.Pt(640, 360)
		if _, ok := r.HitIndex(&p); ok {
			t.Error("expected miss in the empty screen center")
		}
	})

	t.Run("nil pointer", func(t *testing.T) {
		if _, ok := r.HitIndex(nil); ok {
			t.Error("nil pointer should never hit")
		}
		if r.Hover(nil) != nil {
			t.Error("nil pointer should never hover")
		}
	})

	t.Run("hover returns full target", func(t *testing.T) {
		target := r.Targets()[1]
		p := target.Visual.Min.Add(target.Visual.Max).Div(2)
		got := r.Hover(&p)
		if got == nil || got.ID != target.ID {
			t.Errorf("Hover = %v, want target %s", got, target.ID)
		}
	})
}
