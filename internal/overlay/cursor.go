package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/workflow"
)

// Dwell ring geometry.
const (
	cursorRadius    = 12
	ringBaseRadius  = 40
	ringGrowth      = 20
	ringThick       = 3
	readyThreshold  = 0.8
	captionMinShown = 0.1
)

// Style selects the cursor accent color and the caption shown while the
// user is holding on a target.
type Style struct {
	Accent  color.RGBA
	Caption string
}

// StyleFor returns the cursor style for the current wizard position.
func StyleFor(state workflow.State) Style {
	switch state.Step {
	case workflow.StepBackgroundSelection:
		return Style{Accent: color.RGBA{R: 80, G: 160, B: 240}, Caption: "Choosing background"}
	case workflow.StepClothingSelection:
		switch state.Substep {
		case workflow.SubstepInitial:
			return Style{Accent: color.RGBA{R: 240, G: 180, B: 60}, Caption: "Choosing style"}
		case workflow.SubstepTShirtPick:
			return Style{Accent: color.RGBA{R: 240, G: 120, B: 60}, Caption: "Choosing t-shirt"}
		case workflow.SubstepShirtPick:
			return Style{Accent: color.RGBA{R: 90, G: 120, B: 240}, Caption: "Choosing shirt"}
		case workflow.SubstepAccessoryPick:
			return Style{Accent: color.RGBA{R: 180, G: 90, B: 220}, Caption: "Choosing accessory"}
		case workflow.SubstepBlazerPick:
			return Style{Accent: color.RGBA{R: 120, G: 90, B: 200}, Caption: "Choosing blazer"}
		case workflow.SubstepTiePick:
			return Style{Accent: color.RGBA{R: 200, G: 70, B: 110}, Caption: "Choosing tie"}
		}
	case workflow.StepComplete:
		return Style{Accent: colorHighlight, Caption: "Hold to save"}
	}
	return Style{Accent: colorTextLight}
}

// DrawCursor marks the tracked fingertip.
func DrawCursor(frame *gocv.Mat, pos image.Point, style Style) {
	gocv.Circle(frame, pos, cursorRadius, style.Accent, 2)
	gocv.Circle(frame, pos, 3, style.Accent, -1)
}

// DrawDwellProgress draws the hold ring around the fingertip. The ring grows
// with progress and switches to the ready color near completion; a percent
// readout and the style caption accompany it once the hold has begun.
func DrawDwellProgress(frame *gocv.Mat, pos image.Point, progress float64, style Style) {
	if progress <= 0 {
		return
	}
	if progress > 1 {
		progress = 1
	}

	ringColor := style.Accent
	if progress >= readyThreshold {
		ringColor = colorHighlight
	}

	radius := ringBaseRadius + int(ringGrowth*progress)
	axes := image.Pt(radius, radius)
	sweep := 360 * progress
	gocv.Ellipse(frame, pos, axes, 0, -90, -90+sweep, ringColor, ringThick)

	percent := fmt.Sprintf("%d%%", int(progress*100))
	size := gocv.GetTextSize(percent, labelFont, labelScale, labelThick)
	org := image.Pt(pos.X-size.X/2, pos.Y+radius+size.Y+8)
	gocv.PutText(frame, percent, org, labelFont, labelScale, colorTextLight, labelThick)

	if progress > captionMinShown && style.Caption != "" {
		capSize := gocv.GetTextSize(style.Caption, labelFont, labelScale, labelThick)
		capOrg := image.Pt(pos.X-capSize.X/2, pos.Y-radius-10)
		gocv.PutText(frame, style.Caption, capOrg, labelFont, labelScale, colorTextLight, labelThick)
	}
}
