package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Icon glyph names understood by DrawIcon.
const (
	IconTShirt = "tshirt"
	IconShirt  = "shirt"
	IconBlazer = "blazer"
	IconTie    = "tie"
	IconNone   = "none"
)

var (
	iconOutline = color.RGBA{R: 60, G: 60, B: 60}
	iconAccent  = color.RGBA{R: 120, G: 120, B: 180}
	iconCross   = color.RGBA{R: 200, G: 60, B: 60}
)

// DrawIcon renders a simple clothing glyph inside rect. Unknown names draw
// nothing; the tile still shows its label.
func DrawIcon(roi *gocv.Mat, name string, rect image.Rectangle) {
	switch name {
	case IconTShirt:
		drawTShirt(roi, rect)
	case IconShirt:
		drawShirt(roi, rect)
	case IconBlazer:
		drawBlazer(roi, rect)
	case IconTie:
		drawTie(roi, rect)
	case IconNone:
		drawNone(roi, rect)
	}
}

func drawTShirt(roi *gocv.Mat, r image.Rectangle) {
	w, h := r.Dx(), r.Dy()
	// Body
	body := image.Rect(r.Min.X+w/4, r.Min.Y+h/4, r.Max.X-w/4, r.Max.Y-h/8)
	gocv.Rectangle(roi, body, iconOutline, 2)
	// Sleeves
	gocv.Line(roi, image.Pt(body.Min.X, body.Min.Y), image.Pt(r.Min.X+w/12, r.Min.Y+h/2), iconOutline, 2)
	gocv.Line(roi, image.Pt(body.Max.X, body.Min.Y), image.Pt(r.Max.X-w/12, r.Min.Y+h/2), iconOutline, 2)
	// Neckline
	gocv.Ellipse(roi, image.Pt(r.Min.X+w/2, body.Min.Y), image.Pt(w/8, h/12), 0, 0, 180, iconOutline, 2)
}

func drawShirt(roi *gocv.Mat, r image.Rectangle) {
	w, h := r.Dx(), r.Dy()
	body := image.Rect(r.Min.X+w/4, r.Min.Y+h/5, r.Max.X-w/4, r.Max.Y-h/10)
	gocv.Rectangle(roi, body, iconOutline, 2)
	// Collar
	mid := r.Min.X + w/2
	gocv.Line(roi, image.Pt(mid-w/8, body.Min.Y), image.Pt(mid, body.Min.Y+h/8), iconOutline, 2)
	gocv.Line(roi, image.Pt(mid+w/8, body.Min.Y), image.Pt(mid, body.Min.Y+h/8), iconOutline, 2)
	// Button placket
	gocv.Line(roi, image.Pt(mid, body.Min.Y+h/8), image.Pt(mid, body.Max.Y), iconOutline, 1)
	for i := 1; i <= 3; i++ {
		gocv.Circle(roi, image.Pt(mid, body.Min.Y+h/8+i*h/6), 2, iconOutline, -1)
	}
}

func drawBlazer(roi *gocv.Mat, r image.Rectangle) {
	w, h := r.Dx(), r.Dy()
	body := image.Rect(r.Min.X+w/5, r.Min.Y+h/6, r.Max.X-w/5, r.Max.Y-h/12)
	gocv.Rectangle(roi, body, iconOutline, 2)
	mid := r.Min.X + w/2
	// Lapels meet above a single button.
	gocv.Line(roi, image.Pt(body.Min.X, body.Min.Y), image.Pt(mid, r.Min.Y+h/2), iconAccent, 2)
	gocv.Line(roi, image.Pt(body.Max.X, body.Min.Y), image.Pt(mid, r.Min.Y+h/2), iconAccent, 2)
	gocv.Circle(roi, image.Pt(mid, r.Min.Y+h*3/5), 3, iconOutline, -1)
}

func drawTie(roi *gocv.Mat, r image.Rectangle) {
	w, h := r.Dx(), r.Dy()
	mid := r.Min.X + w/2
	// Knot
	knot := image.Rect(mid-w/10, r.Min.Y+h/8, mid+w/10, r.Min.Y+h/4)
	gocv.Rectangle(roi, knot, iconAccent, -1)
	// Blade
	gocv.Line(roi, image.Pt(mid-w/8, knot.Max.Y), image.Pt(mid, r.Max.Y-h/8), iconAccent, 2)
	gocv.Line(roi, image.Pt(mid+w/8, knot.Max.Y), image.Pt(mid, r.Max.Y-h/8), iconAccent, 2)
	gocv.Line(roi, image.Pt(mid-w/8, knot.Max.Y), image.Pt(mid+w/8, knot.Max.Y), iconAccent, 2)
}

func drawNone(roi *gocv.Mat, r image.Rectangle) {
	center := r.Min.Add(r.Max).Div(2)
	radius := min(r.Dx(), r.Dy()) / 3
	gocv.Circle(roi, center, radius, iconCross, 2)
	offset := int(float64(radius) * 0.7)
	gocv.Line(roi,
		image.Pt(center.X-offset, center.Y-offset),
		image.Pt(center.X+offset, center.Y+offset), iconCross, 2)
}
