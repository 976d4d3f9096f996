// Package hittest lays out the rectangular popup targets shown over the
// video feed and answers hover and click queries against them.
package hittest

import "image"

// Template selects a target placement pattern.
type Template int

const (
	// TemplateNone places no targets.
	TemplateNone Template = iota
	// TemplateGrid8 places up to eight tiles in two columns of four.
	TemplateGrid8
	// TemplateBinary places a left/right pair at the vertically centered row.
	TemplateBinary
	// TemplateTernary places left, center and right tiles at the vertically
	// centered row.
	TemplateTernary
)

// Tile geometry shared by all templates, in pixels.
const (
	// TileWidth and TileHeight are the visible popup dimensions.
	TileWidth  = 120
	TileHeight = 120
	// TileMargin is the spacing between tiles and from the screen edge.
	TileMargin = 20
	// ClickPadding is the invisible hit area added around each tile so a
	// wobbly fingertip still lands inside something clickable.
	ClickPadding = 30
)

// gridSlots returns the eight tile origins of the two-column grid: the four
// left-column slots top to bottom, then the four right-column slots.
func gridSlots(screenW, screenH int) []image.Point {
	leftX := TileMargin + ClickPadding
	rightX := screenW - TileWidth - TileMargin - ClickPadding
	startY := (screenH - 4*TileHeight - 3*TileMargin) / 2

	slots := make([]image.Point, 0, 8)
	for i := 0; i < 4; i++ {
		slots = append(slots, image.Pt(leftX, startY+i*(TileHeight+TileMargin)))
	}
	for i := 0; i < 4; i++ {
		slots = append(slots, image.Pt(rightX, startY+i*(TileHeight+TileMargin)))
	}
	return slots
}

// binarySlots returns the second left-column and second right-column grid
// slots, giving a vertically centered left-vs-right pair.
func binarySlots(screenW, screenH int) []image.Point {
	g := gridSlots(screenW, screenH)
	return []image.Point{g[1], g[5]}
}

// ternarySlots adds a horizontally centered slot between the binary pair.
func ternarySlots(screenW, screenH int) []image.Point {
	g := gridSlots(screenW, screenH)
	center := image.Pt(screenW/2-TileWidth/2, g[1].Y)
	return []image.Point{g[1], center, g[5]}
}

func slotsFor(template Template, screenW, screenH int) []image.Point {
	switch template {
	case TemplateGrid8:
		return gridSlots(screenW, screenH)
	case TemplateBinary:
		return binarySlots(screenW, screenH)
	case TemplateTernary:
		return ternarySlots(screenW, screenH)
	default:
		return nil
	}
}
