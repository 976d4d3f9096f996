// Package overlay draws the interface on top of the composited camera frame:
// selection tiles, the fingertip cursor with its dwell ring, and the
// per-step guidance screens.
package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/makeover/internal/hittest"
)

// Palette shared across the overlay.
var (
	colorTile      = color.RGBA{R: 245, G: 245, B: 245}
	colorTileEdge  = color.RGBA{R: 70, G: 70, B: 70}
	colorHighlight = color.RGBA{R: 40, G: 200, B: 90}
	colorText      = color.RGBA{R: 20, G: 20, B: 20}
	colorTextLight = color.RGBA{R: 240, G: 240, B: 240}
	colorShadow    = color.RGBA{R: 0, G: 0, B: 0}
)

const (
	tileAlpha     = 0.82
	labelFont     = gocv.FontHersheySimplex
	labelScale    = 0.5
	labelThick    = 1
	hoverInflate  = 5
	hoverThick    = 4
	thumbInsetPad = 10
)

// Tile describes one selectable entry to draw. Icon names a glyph from
// icons.go; ThumbnailPath, when set, wins over the icon.
type Tile struct {
	Label         string
	Icon          string
	ThumbnailPath string
}

// Renderer draws tiles and caches loaded thumbnails between frames.
type Renderer struct {
	thumbs map[string]gocv.Mat
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{thumbs: make(map[string]gocv.Mat)}
}

// Close releases cached thumbnails.
func (r *Renderer) Close() {
	for k, m := range r.thumbs {
		m.Close()
		delete(r.thumbs, k)
	}
}

// DrawTiles renders one tile per target, pairing targets with tiles by
// index. The hovered target, if any, gets a highlight border.
func (r *Renderer) DrawTiles(frame *gocv.Mat, targets []hittest.Target, tiles []Tile, hovered *hittest.Target) {
	for _, target := range targets {
		var tile Tile
		if target.Index < len(tiles) {
			tile = tiles[target.Index]
		}
		r.drawTile(frame, target, tile)
	}
	if hovered != nil {
		DrawHoverHighlight(frame, hovered)
	}
}

func (r *Renderer) drawTile(frame *gocv.Mat, target hittest.Target, tile Tile) {
	roi := frame.Region(target.Visual)
	defer roi.Close()

	fill := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(colorTile.B), float64(colorTile.G), float64(colorTile.R), 0),
		roi.Rows(), roi.Cols(), gocv.MatTypeCV8UC3)
	defer fill.Close()
	gocv.AddWeighted(roi, 1-tileAlpha, fill, tileAlpha, 0, &roi)

	inner := image.Rect(0, 0, roi.Cols(), roi.Rows()).Inset(thumbInsetPad)
	switch {
	case tile.ThumbnailPath != "":
		r.drawThumbnail(&roi, inner, tile.ThumbnailPath)
	case tile.Icon != "":
		DrawIcon(&roi, tile.Icon, inner)
	}

	gocv.Rectangle(frame, target.Visual, colorTileEdge, 2)

	if tile.Label != "" {
		size := gocv.GetTextSize(tile.Label, labelFont, labelScale, labelThick)
		org := image.Pt(
			target.Visual.Min.X+(target.Visual.Dx()-size.X)/2,
			target.Visual.Max.Y-6,
		)
		gocv.PutText(frame, tile.Label, org, labelFont, labelScale, colorText, labelThick)
	}
}

// drawThumbnail blits a cached, tile-sized copy of the image into the region.
func (r *Renderer) drawThumbnail(roi *gocv.Mat, inner image.Rectangle, path string) {
	thumb, ok := r.thumbs[path]
	if !ok {
		loaded := gocv.IMRead(path, gocv.IMReadColor)
		if loaded.Empty() {
			loaded.Close()
			return
		}
		thumb = gocv.NewMat()
		gocv.Resize(loaded, &thumb, image.Pt(inner.Dx(), inner.Dy()), 0, 0, gocv.InterpolationArea)
		loaded.Close()
		r.thumbs[path] = thumb
	}
	if thumb.Cols() != inner.Dx() || thumb.Rows() != inner.Dy() {
		return
	}

	dst := roi.Region(inner)
	defer dst.Close()
	thumb.CopyTo(&dst)
}

// DrawHoverHighlight outlines the target the pointer currently rests on.
func DrawHoverHighlight(frame *gocv.Mat, target *hittest.Target) {
	gocv.Rectangle(frame, target.Visual.Inset(-hoverInflate), colorHighlight, hoverThick)
}
