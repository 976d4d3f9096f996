package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/workflow"
)

const (
	titleScale = 1.2
	bodyScale  = 0.7
	bannerPad  = 16
)

var colorBanner = color.RGBA{R: 25, G: 25, B: 35}

// DrawWelcome covers the frame with the intro banner.
func DrawWelcome(frame *gocv.Mat) {
	dimFrame(frame, 0.55)
	centerText(frame, "Professional Makeover", titleScale, -40)
	centerText(frame, "Point with your index finger and hold to select", bodyScale, 10)
	centerText(frame, "Starting...", bodyScale, 50)
}

// DrawFaceGuide draws the positioning oval and, once a face is being held,
// a countdown bar. progress is the held fraction in [0,1].
func DrawFaceGuide(frame *gocv.Mat, progress float64) {
	w, h := frame.Cols(), frame.Rows()
	center := image.Pt(w/2, h*2/5)
	axes := image.Pt(w/8, h/4)

	guide := colorTextLight
	if progress > 0 {
		guide = colorHighlight
	}
	gocv.Ellipse(frame, center, axes, 0, 0, 360, guide, 3)

	if progress <= 0 {
		centerText(frame, "Position your face in the oval", bodyScale, h/3)
		return
	}
	if progress > 1 {
		progress = 1
	}

	barW := w / 3
	bar := image.Rect(w/2-barW/2, h*4/5, w/2+barW/2, h*4/5+18)
	gocv.Rectangle(frame, bar, colorTextLight, 2)
	fill := image.Rect(bar.Min.X, bar.Min.Y, bar.Min.X+int(float64(barW)*progress), bar.Max.Y)
	gocv.Rectangle(frame, fill, colorHighlight, -1)
	centerText(frame, "Hold still...", bodyScale, h/3)
}

// InstructionFor returns the banner line for the current wizard position.
func InstructionFor(state workflow.State) string {
	switch state.Step {
	case workflow.StepBackgroundSelection:
		return "Point at a background and hold to select"
	case workflow.StepClothingSelection:
		switch state.Substep {
		case workflow.SubstepInitial:
			return "T-shirt or shirt? Hold to choose"
		case workflow.SubstepTShirtPick:
			return "Pick a t-shirt"
		case workflow.SubstepShirtPick:
			return "Pick a shirt"
		case workflow.SubstepAccessoryPick:
			return "Add a blazer, a tie, or keep the shirt"
		case workflow.SubstepBlazerPick:
			return "Pick a blazer"
		case workflow.SubstepTiePick:
			return "Pick a tie"
		}
	case workflow.StepComplete:
		return "Looking sharp! Hold anywhere to save"
	}
	return ""
}

// DrawInstruction puts a banner line along the top of the frame.
func DrawInstruction(frame *gocv.Mat, text string) {
	if text == "" {
		return
	}
	w := frame.Cols()
	size := gocv.GetTextSize(text, labelFont, bodyScale, 2)
	banner := image.Rect(0, 0, w, size.Y+2*bannerPad)

	roi := frame.Region(banner)
	fill := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(colorBanner.B), float64(colorBanner.G), float64(colorBanner.R), 0),
		roi.Rows(), roi.Cols(), gocv.MatTypeCV8UC3)
	gocv.AddWeighted(roi, 0.3, fill, 0.7, 0, &roi)
	fill.Close()
	roi.Close()

	org := image.Pt((w-size.X)/2, bannerPad+size.Y)
	gocv.PutText(frame, text, org, labelFont, bodyScale, colorTextLight, 2)
}

// DrawCompletion summarizes the final look in the lower-left corner.
func DrawCompletion(frame *gocv.Mat, state workflow.State) {
	lines := []string{
		fmt.Sprintf("Background: %s", state.BackgroundID),
		fmt.Sprintf("Clothing: %s #%d", state.ClothingType, state.ClothingItem+1),
	}
	if state.AccessoryType != "" {
		lines = append(lines, fmt.Sprintf("Accessory: %s #%d", state.AccessoryType, state.AccessoryItem+1))
	}

	y := frame.Rows() - 20 - (len(lines)-1)*28
	for _, line := range lines {
		gocv.PutText(frame, line, image.Pt(24, y+1), labelFont, bodyScale, colorShadow, 2)
		gocv.PutText(frame, line, image.Pt(23, y), labelFont, bodyScale, colorTextLight, 2)
		y += 28
	}
}

// DrawNotification flashes a short status line above the bottom edge.
func DrawNotification(frame *gocv.Mat, text string) {
	if text == "" {
		return
	}
	size := gocv.GetTextSize(text, labelFont, bodyScale, 2)
	org := image.Pt((frame.Cols()-size.X)/2, frame.Rows()-40)
	gocv.PutText(frame, text, image.Pt(org.X+1, org.Y+1), labelFont, bodyScale, colorShadow, 2)
	gocv.PutText(frame, text, org, labelFont, bodyScale, colorHighlight, 2)
}

// Watermark stamps the corner branding.
func Watermark(frame *gocv.Mat) {
	const mark = "Makeover"
	size := gocv.GetTextSize(mark, labelFont, labelScale, labelThick)
	org := image.Pt(frame.Cols()-size.X-12, frame.Rows()-12)
	gocv.PutText(frame, mark, org, labelFont, labelScale, colorTextLight, labelThick)
}

// dimFrame darkens the whole frame for full-screen banners.
func dimFrame(frame *gocv.Mat, strength float64) {
	dark := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		frame.Rows(), frame.Cols(), gocv.MatTypeCV8UC3)
	defer dark.Close()
	gocv.AddWeighted(*frame, 1-strength, dark, strength, 0, frame)
}

// centerText draws a centered line offset vertically from the frame middle.
func centerText(frame *gocv.Mat, text string, scale float64, dy int) {
	size := gocv.GetTextSize(text, labelFont, scale, 2)
	org := image.Pt((frame.Cols()-size.X)/2, frame.Rows()/2+dy)
	gocv.PutText(frame, text, image.Pt(org.X+1, org.Y+1), labelFont, scale, colorShadow, 2)
	gocv.PutText(frame, text, org, labelFont, scale, colorTextLight, 2)
}
