// Package assets manages the background scenes and clothing items the wizard
// offers. Missing background images are generated as gradient placeholders on
// first load, so a fresh checkout runs without any bundled media.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gocv.io/x/gocv"
)

// MaxItems caps how many items a category exposes to the wizard.
const MaxItems = 8

// backgroundScenes are the professional scenes, in presentation order.
var backgroundScenes = []string{
	"office_modern",
	"conference_room",
	"home_office",
	"library",
	"city_view",
	"minimalist_white",
	"tech_office",
	"boardroom",
}

// sceneBaseColors drive the generated placeholder gradients, one BGR color
// per scene.
var sceneBaseColors = []color.RGBA{
	{R: 70, G: 90, B: 120},
	{R: 110, G: 85, B: 60},
	{R: 90, G: 120, B: 95},
	{R: 120, G: 100, B: 70},
	{R: 60, G: 75, B: 100},
	{R: 230, G: 230, B: 235},
	{R: 55, G: 65, B: 85},
	{R: 95, G: 70, B: 70},
}

// clothingCategories are the directories scanned under <dir>/clothing.
var clothingCategories = []string{"tshirts", "shirts", "blazers", "ties"}

// Library is the loaded asset catalog. Immutable after Load.
type Library struct {
	dir         string
	backgrounds []string
	bgPaths     map[string]string
	items       map[string][]string
}

// Load builds the catalog under dir, creating the directory layout and any
// missing background placeholders.
func Load(dir string) (*Library, error) {
	bgDir := filepath.Join(dir, "backgrounds")
	if err := os.MkdirAll(bgDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backgrounds dir: %w", err)
	}

	lib := &Library{
		dir:     dir,
		bgPaths: make(map[string]string),
		items:   make(map[string][]string),
	}

	for i, id := range backgroundScenes {
		path := filepath.Join(bgDir, id+".jpg")
		if _, err := os.Stat(path); err != nil {
			img := GradientBackdrop(1280, 720, i)
			ok := gocv.IMWrite(path, img)
			img.Close()
			if !ok {
				return nil, fmt.Errorf("write placeholder %s", path)
			}
		}
		lib.backgrounds = append(lib.backgrounds, id)
		lib.bgPaths[id] = path
	}

	for _, category := range clothingCategories {
		catDir := filepath.Join(dir, "clothing", category)
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return nil, fmt.Errorf("create clothing dir: %w", err)
		}
		entries, err := os.ReadDir(catDir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", catDir, err)
		}

		var paths []string
		for _, entry := range entries {
			if entry.IsDir() || !isImageFile(entry.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(catDir, entry.Name()))
		}
		sort.Strings(paths)
		if len(paths) > MaxItems {
			paths = paths[:MaxItems]
		}
		lib.items[category] = paths
	}

	return lib, nil
}

// Backgrounds returns the ordered background scene ids.
func (l *Library) Backgrounds() []string {
	return l.backgrounds
}

// BackgroundPath returns the image path for a scene id.
func (l *Library) BackgroundPath(id string) (string, bool) {
	path, ok := l.bgPaths[id]
	return path, ok
}

// Count returns the number of items available in a clothing category.
func (l *Library) Count(category string) int {
	return len(l.items[category])
}

// Items returns the image paths for a clothing category, in catalog order.
func (l *Library) Items(category string) []string {
	return l.items[category]
}

// ItemPath returns the path of the index-th item in a category.
func (l *Library) ItemPath(category string, index int) (string, bool) {
	paths := l.items[category]
	if index < 0 || index >= len(paths) {
		return "", false
	}
	return paths[index], true
}

// Dir returns the catalog root directory.
func (l *Library) Dir() string {
	return l.dir
}

// GradientBackdrop generates a vertical gradient scene in BGR. The variant
// picks the base color; out-of-range variants wrap around. The caller owns
// the returned Mat.
func GradientBackdrop(width, height, variant int) gocv.Mat {
	base := sceneBaseColors[((variant%len(sceneBaseColors))+len(sceneBaseColors))%len(sceneBaseColors)]

	img := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	for y := 0; y < height; y++ {
		// Darken toward the bottom for a studio-light feel.
		f := 1.0 - 0.45*float64(y)/float64(height)
		c := color.RGBA{
			R: uint8(float64(base.R) * f),
			G: uint8(float64(base.G) * f),
			B: uint8(float64(base.B) * f),
		}
		gocv.Line(&img, image.Pt(0, y), image.Pt(width-1, y), c, 1)
	}
	return img
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
