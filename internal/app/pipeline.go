package app

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/capture"
	"github.com/ayusman/makeover/internal/overlay"
	"github.com/ayusman/makeover/internal/store"
	"github.com/ayusman/makeover/internal/workflow"
)

// noticeDuration is how long a status flash stays on screen.
const noticeDuration = 2 * time.Second

// runPipeline is the main frame loop. Each tick it reads and enhances a
// camera frame, runs detection, advances the wizard one step, composites the
// virtual backdrop and draws the interface, then publishes the result for
// the stream and state endpoints.
func (a *App) runPipeline(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	stopCh := a.stopCh

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.processFrame()
		}
	}
}

func (a *App) processFrame() {
	// Drain pending control commands so the wizard, tracker and registry are
	// touched from this goroutine only.
	a.mu.Lock()
	restart := a.restart
	a.restart = false
	enabled := a.enabled
	a.mu.Unlock()

	if restart {
		a.wizard.Reset()
		a.tracker.Reset()
	}

	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		return
	}
	defer frame.Close()

	capture.Enhance(frame)

	obs, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Error detecting: %v", err)
	}
	defer obs.Close()

	facePresent := obs.FacePresent
	if a.face.Observe(frame) {
		facePresent = true
	}

	var pos *image.Point
	clicked := false
	if enabled {
		pos, clicked = a.tracker.Update(obs.Finger)
	} else {
		a.tracker.Reset()
	}

	event := a.wizard.Advance(frame.Cols(), frame.Rows(), pos, clicked, facePresent)
	state := a.wizard.State()

	output := a.composeFrame(frame, obs.Mask, state)
	a.drawOverlay(&output, state, pos)

	if event == workflow.EventSaveRequested {
		a.saveCapture(&output, state)
	}

	a.publish(output, state, pos, enabled)
}

// composeFrame blends the person over the chosen backdrop once a background
// has been selected; before that the live frame passes through untouched.
func (a *App) composeFrame(frame *gocv.Mat, mask *gocv.Mat, state workflow.State) gocv.Mat {
	if state.BackgroundID != "" {
		if path, ok := a.config.Assets.BackgroundPath(state.BackgroundID); ok {
			if err := a.segmenter.SetBackdrop(path); err != nil {
				log.Printf("Error loading backdrop %s: %v", state.BackgroundID, err)
			} else if out, err := a.segmenter.Apply(frame, mask); err == nil {
				return out
			} else {
				log.Printf("Error compositing: %v", err)
			}
		}
	}
	return frame.Clone()
}

func (a *App) drawOverlay(out *gocv.Mat, state workflow.State, pos *image.Point) {
	switch state.Step {
	case workflow.StepWelcome:
		overlay.DrawWelcome(out)

	case workflow.StepFaceDetection:
		overlay.DrawFaceGuide(out, a.wizard.FaceProgress())

	case workflow.StepBackgroundSelection, workflow.StepClothingSelection:
		overlay.DrawInstruction(out, overlay.InstructionFor(state))
		a.renderer.DrawTiles(out, a.registry.Targets(), a.tilesFor(state), a.registry.Hover(pos))
		if a.wizard.EmptyCategory() {
			overlay.DrawNotification(out, "Nothing here yet - add items and restart")
		}

	case workflow.StepComplete:
		overlay.DrawInstruction(out, overlay.InstructionFor(state))
		overlay.DrawCompletion(out, state)
	}

	a.frameMu.RLock()
	notice, until := a.notice, a.noticeUntil
	a.frameMu.RUnlock()
	if notice != "" && time.Now().Before(until) {
		overlay.DrawNotification(out, notice)
	}

	if pos != nil && state.Step != workflow.StepWelcome && state.Step != workflow.StepFaceDetection {
		style := overlay.StyleFor(state)
		overlay.DrawCursor(out, *pos, style)
		overlay.DrawDwellProgress(out, *pos, a.tracker.Progress(), style)
	}

	overlay.Watermark(out)
}

// tilesFor builds the tile descriptions matching the registry layout the
// wizard produced for the current step.
func (a *App) tilesFor(state workflow.State) []overlay.Tile {
	lib := a.config.Assets

	if state.Step == workflow.StepBackgroundSelection {
		ids := lib.Backgrounds()
		tiles := make([]overlay.Tile, len(ids))
		for i, id := range ids {
			tile := overlay.Tile{Label: strings.ReplaceAll(id, "_", " ")}
			if path, ok := lib.BackgroundPath(id); ok {
				tile.ThumbnailPath = path
			}
			tiles[i] = tile
		}
		return tiles
	}

	switch state.Substep {
	case workflow.SubstepInitial:
		return []overlay.Tile{
			{Label: "T-Shirts", Icon: overlay.IconTShirt},
			{Label: "Shirts", Icon: overlay.IconShirt},
		}
	case workflow.SubstepAccessoryPick:
		return []overlay.Tile{
			{Label: "Blazer", Icon: overlay.IconBlazer},
			{Label: "Tie", Icon: overlay.IconTie},
			{Label: "Shirt only", Icon: overlay.IconNone},
		}
	}

	category := a.wizard.CurrentCategory()
	if category == "" {
		return nil
	}
	icon := iconFor(category)
	tiles := make([]overlay.Tile, lib.Count(category))
	for i := range tiles {
		tiles[i] = overlay.Tile{Label: fmt.Sprintf("Style %d", i+1), Icon: icon}
		if path, ok := lib.ItemPath(category, i); ok {
			tiles[i].ThumbnailPath = path
		}
	}
	return tiles
}

func iconFor(category string) string {
	switch category {
	case workflow.CategoryTShirts:
		return overlay.IconTShirt
	case workflow.CategoryShirts:
		return overlay.IconShirt
	case workflow.CategoryBlazers:
		return overlay.IconBlazer
	case workflow.CategoryTies:
		return overlay.IconTie
	}
	return ""
}

// saveCapture writes the composited frame to the save directory and records
// it in the database.
func (a *App) saveCapture(out *gocv.Mat, state workflow.State) {
	if err := os.MkdirAll(a.config.SaveDir, 0o755); err != nil {
		log.Printf("Error creating save dir: %v", err)
		return
	}

	name := fmt.Sprintf("makeover_%s.jpg", time.Now().Format("20060102_150405"))
	path := filepath.Join(a.config.SaveDir, name)
	if !gocv.IMWrite(path, *out) {
		log.Printf("Error writing capture %s", path)
		return
	}

	if a.config.Store != nil {
		c := &store.Capture{
			ID:               uuid.New().String(),
			FilePath:         path,
			BackgroundID:     state.BackgroundID,
			ClothingCategory: state.ClothingType,
			ClothingItem:     state.ClothingItem,
			AccessoryType:    state.AccessoryType,
			AccessoryItem:    state.AccessoryItem,
		}
		if err := a.config.Store.Captures().Create(c); err != nil {
			log.Printf("Error recording capture: %v", err)
		}
	}

	a.frameMu.Lock()
	a.notice = "Saved!"
	a.noticeUntil = time.Now().Add(noticeDuration)
	a.snapshot.LastSavePath = path
	a.frameMu.Unlock()

	log.Printf("Capture saved: %s", path)
}

// publish installs the frame as the latest output and refreshes the
// snapshot. Takes ownership of the frame.
func (a *App) publish(output gocv.Mat, state workflow.State, pos *image.Point, enabled bool) {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	if a.hasLatest {
		a.latest.Close()
	}
	a.latest = output
	a.hasLatest = true

	a.snapshot.State = state
	a.snapshot.TrackingEnabled = enabled
	a.snapshot.Pointer = pos
	a.snapshot.DwellProgress = a.tracker.Progress()
	a.snapshot.FaceProgress = a.wizard.FaceProgress()
	a.snapshot.EmptyCategory = a.wizard.EmptyCategory()
}
