// Package workflow drives the makeover selection wizard: a step machine that
// consumes dwell clicks and timing signals and accumulates the user's
// background, clothing and accessory choices.
package workflow

import (
	"image"
	"time"

	"github.com/ayusman/makeover/internal/hittest"
)

// Wizard timing and capacity constants.
const (
	// WelcomeDuration is how long the welcome screen lingers before the
	// wizard moves on by itself.
	WelcomeDuration = 3 * time.Second
	// FaceHoldDuration is how long the face signal must be held
	// continuously before selection begins.
	FaceHoldDuration = 2 * time.Second
	// GridCapacity caps how many items a picker can offer; extras are
	// simply not shown.
	GridCapacity = 8
)

// Event reports a side effect requested by a frame advance.
type Event int

const (
	// EventNone means the frame changed nothing outside the wizard.
	EventNone Event = iota
	// EventSaveRequested fires when the user dwell-clicks on the completion
	// screen; the caller should capture and persist the composited frame.
	EventSaveRequested
)

// Items supplies the selectable entries the wizard can offer. Implemented by
// the asset library; tests use synthetic stand-ins.
type Items interface {
	// Backgrounds returns the ordered background ids.
	Backgrounds() []string
	// Count returns the number of items available in a clothing category.
	Count(category string) int
}

// Workflow owns the wizard State and advances it once per frame. It lays out
// the hit-test registry for whatever the current step offers, so callers can
// draw and query the same targets the wizard resolved clicks against.
// Frame-local and single-threaded; not safe for concurrent use.
type Workflow struct {
	state    State
	registry *hittest.Registry
	items    Items

	screenW, screenH int
	stepEntered      time.Time
	faceSince        time.Time
	faceSeen         bool
	emptyCategory    bool

	now func() time.Time
}

// New creates a Workflow at the welcome step.
func New(registry *hittest.Registry, items Items) *Workflow {
	w := &Workflow{
		registry: registry,
		items:    items,
		now:      time.Now,
	}
	w.reset()
	return w
}

// Reset returns the wizard to the welcome screen with every selection,
// timer and substep cleared, as if freshly constructed.
func (w *Workflow) Reset() {
	w.reset()
}

func (w *Workflow) reset() {
	w.state = initialState()
	w.stepEntered = w.now()
	w.faceSeen = false
	w.emptyCategory = false
	w.registry.Clear()
}

// State returns a copy of the current wizard state.
func (w *Workflow) State() State {
	return w.state
}

// EmptyCategory reports whether the current picker has nothing to offer.
// The wizard stalls in that substep; only an external restart or category
// change moves it on.
func (w *Workflow) EmptyCategory() bool {
	return w.emptyCategory
}

// FaceProgress reports how far along the continuous face hold is, in [0,1].
// Zero outside the face detection step or when no face is being held.
func (w *Workflow) FaceProgress() float64 {
	if w.state.Step != StepFaceDetection || !w.faceSeen {
		return 0
	}
	p := float64(w.now().Sub(w.faceSince)) / float64(FaceHoldDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// CurrentCategory returns the clothing category the wizard is currently
// picking from, or "" outside the item pickers.
func (w *Workflow) CurrentCategory() string {
	switch w.state.Substep {
	case SubstepTShirtPick:
		return CategoryTShirts
	case SubstepShirtPick:
		return CategoryShirts
	case SubstepBlazerPick:
		return CategoryBlazers
	case SubstepTiePick:
		return CategoryTies
	}
	return ""
}

// Advance runs one frame of the wizard. The pointer may be nil when no
// finger is tracked; clicked reports a dwell click on this frame, and
// facePresent carries the externally debounced face signal. It returns the
// side effect the frame requested, if any.
func (w *Workflow) Advance(screenW, screenH int, pointer *image.Point, clicked, facePresent bool) Event {
	w.screenW = screenW
	w.screenH = screenH
	now := w.now()

	switch w.state.Step {
	case StepWelcome:
		if now.Sub(w.stepEntered) >= WelcomeDuration {
			w.enterStep(StepFaceDetection, now)
		}

	case StepFaceDetection:
		if !facePresent {
			w.faceSeen = false
			break
		}
		if !w.faceSeen {
			w.faceSeen = true
			w.faceSince = now
			break
		}
		if now.Sub(w.faceSince) >= FaceHoldDuration {
			w.enterStep(StepBackgroundSelection, now)
		}

	case StepBackgroundSelection:
		backgrounds := w.items.Backgrounds()
		w.registry.Layout(screenW, screenH, hittest.TemplateGrid8, "bg", len(backgrounds))
		if !clicked {
			break
		}
		idx, ok := w.registry.HitIndex(pointer)
		if !ok || idx >= len(backgrounds) {
			break
		}
		w.state.BackgroundID = backgrounds[idx]
		w.enterStep(StepClothingSelection, now)
		w.state.Substep = SubstepInitial

	case StepClothingSelection:
		w.advanceClothing(pointer, clicked, now)

	case StepComplete:
		if clicked && pointer != nil {
			return EventSaveRequested
		}
	}

	return EventNone
}

func (w *Workflow) advanceClothing(pointer *image.Point, clicked bool, now time.Time) {
	switch w.state.Substep {
	case SubstepInitial:
		w.emptyCategory = false
		// T-shirts on the left, shirts on the right.
		w.registry.Layout(w.screenW, w.screenH, hittest.TemplateBinary, "initial", 2)
		if !clicked {
			return
		}
		idx, ok := w.registry.HitIndex(pointer)
		if !ok {
			return
		}
		switch idx {
		case 0:
			w.state.ClothingCategory = CategoryTShirts
			w.state.Substep = SubstepTShirtPick
		case 1:
			w.state.ClothingCategory = CategoryShirts
			w.state.Substep = SubstepShirtPick
		}

	case SubstepTShirtPick:
		if idx, ok := w.pickItem(CategoryTShirts, "item", pointer, clicked); ok {
			w.state.ClothingType = CategoryTShirts
			w.state.ClothingItem = idx
			w.enterStep(StepComplete, now)
		}

	case SubstepShirtPick:
		if idx, ok := w.pickItem(CategoryShirts, "item", pointer, clicked); ok {
			w.state.ClothingType = CategoryShirts
			w.state.ClothingItem = idx
			w.state.Substep = SubstepAccessoryPick
		}

	case SubstepAccessoryPick:
		w.emptyCategory = false
		// Blazers left, ties center, shirt-only right.
		w.registry.Layout(w.screenW, w.screenH, hittest.TemplateTernary, "accessory", 3)
		if !clicked {
			return
		}
		idx, ok := w.registry.HitIndex(pointer)
		if !ok {
			return
		}
		switch idx {
		case 0:
			w.state.Substep = SubstepBlazerPick
		case 1:
			w.state.Substep = SubstepTiePick
		case 2:
			w.enterStep(StepComplete, now)
		}

	case SubstepBlazerPick:
		if idx, ok := w.pickItem(CategoryBlazers, "item", pointer, clicked); ok {
			w.state.AccessoryType = CategoryBlazers
			w.state.AccessoryItem = idx
			w.enterStep(StepComplete, now)
		}

	case SubstepTiePick:
		if idx, ok := w.pickItem(CategoryTies, "item", pointer, clicked); ok {
			w.state.AccessoryType = CategoryTies
			w.state.AccessoryItem = idx
			w.enterStep(StepComplete, now)
		}
	}
}

// pickItem lays out a grid for the category and resolves a clicked item
// index against it. An empty category clears the layout and flags the
// empty-state condition; an out-of-range hit is ignored.
func (w *Workflow) pickItem(category, prefix string, pointer *image.Point, clicked bool) (int, bool) {
	count := w.items.Count(category)
	if count > GridCapacity {
		count = GridCapacity
	}
	if count <= 0 {
		w.emptyCategory = true
		w.registry.Clear()
		return 0, false
	}
	w.emptyCategory = false

	w.registry.Layout(w.screenW, w.screenH, hittest.TemplateGrid8, prefix, count)
	if !clicked {
		return 0, false
	}
	idx, ok := w.registry.HitIndex(pointer)
	if !ok || idx >= count {
		return 0, false
	}
	return idx, true
}

func (w *Workflow) enterStep(step Step, now time.Time) {
	w.state.Step = step
	w.state.Substep = SubstepNone
	w.stepEntered = now
	w.faceSeen = false
	w.emptyCategory = false
	w.registry.Clear()
}
