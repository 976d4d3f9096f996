package hittest

import (
	"fmt"
	"image"
)

// Target is one interactive region placed by the most recent Layout call.
// Visual is the tile actually drawn; Click is Visual expanded by ClickPadding
// on every side and clamped to the screen. Index is the ordinal selection
// outcome reported by hit queries.
type Target struct {
	ID     string
	Index  int
	Visual image.Rectangle
	Click  image.Rectangle
}

// Registry holds exactly the targets of the most recent layout pass.
// It is frame-local and not safe for concurrent use.
type Registry struct {
	targets []Target
	screen  image.Rectangle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Layout recomputes the full target set for the given screen and template,
// discarding all previously registered targets. Targets are registered in
// slot order; at most as many as the template has slots are placed. Tiles
// whose visual rectangle would not fit entirely on screen are silently
// skipped, so an undersized screen yields fewer (or zero) targets rather
// than an error. The prefix names targets "<prefix>_<index>".
func (r *Registry) Layout(screenW, screenH int, template Template, prefix string, count int) {
	r.targets = r.targets[:0]
	r.screen = image.Rect(0, 0, screenW, screenH)

	if count <= 0 {
		return
	}

	slots := slotsFor(template, screenW, screenH)
	if count > len(slots) {
		count = len(slots)
	}

	for i := 0; i < count; i++ {
		visual := image.Rectangle{
			Min: slots[i],
			Max: slots[i].Add(image.Pt(TileWidth, TileHeight)),
		}
		if !visual.In(r.screen) {
			continue
		}

		click := visual.Inset(-ClickPadding).Intersect(r.screen)
		r.targets = append(r.targets, Target{
			ID:     fmt.Sprintf("%s_%d", prefix, i),
			Index:  i,
			Visual: visual,
			Click:  click,
		})
	}
}

// Clear discards all targets without laying out new ones.
func (r *Registry) Clear() {
	r.targets = r.targets[:0]
}

// HitIndex returns the index of the first target (in registration order)
// whose click rectangle contains the pointer. A nil pointer or a miss
// returns (0, false).
func (r *Registry) HitIndex(pointer *image.Point) (int, bool) {
	t := r.Hover(pointer)
	if t == nil {
		return 0, false
	}
	return t.Index, true
}

// Hover returns the first target whose click rectangle contains the pointer,
// or nil. The result points into the registry's current target set and is
// valid until the next Layout call.
func (r *Registry) Hover(pointer *image.Point) *Target {
	if pointer == nil {
		return nil
	}
	for i := range r.targets {
		if pointer.In(r.targets[i].Click) {
			return &r.targets[i]
		}
	}
	return nil
}

// Targets returns the current target set in registration order. Read-only.
func (r *Registry) Targets() []Target {
	return r.targets
}

// Len returns the number of placed targets.
func (r *Registry) Len() int {
	return len(r.targets)
}
