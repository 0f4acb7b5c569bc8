package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// OverlayResult is an image with a content box drawn on it, encoded as
// base64 PNG.
type OverlayResult struct {
	CropResult
	Box BoundingBox `json:"box"`
}

// DefaultOverlayColor outlines the box when no color is given.
const DefaultOverlayColor = "#FF0000"

// DrawBounds outlines box on a copy of img and labels its top-left corner
// with "x,y". An invalid colorHex falls back to DefaultOverlayColor. An empty
// box returns the image without an outline.
func DrawBounds(img image.Image, box BoundingBox, colorHex string) (*OverlayResult, error) {
	lineColor, err := ParseHexColor(colorHex)
	if err != nil {
		lineColor, _ = ParseHexColor(DefaultOverlayColor)
	}

	result := imaging.Clone(img)
	w, h := result.Rect.Dx(), result.Rect.Dy()

	if !box.IsEmpty() {
		if box.XMin < 0 || box.YMin < 0 || box.XMax >= w || box.YMax >= h {
			return nil, &InvalidBoxError{Box: box, Width: w, Height: h}
		}

		for x := box.XMin; x <= box.XMax; x++ {
			result.SetNRGBA(x, box.YMin, lineColor)
			result.SetNRGBA(x, box.YMax, lineColor)
		}
		for y := box.YMin; y <= box.YMax; y++ {
			result.SetNRGBA(box.XMin, y, lineColor)
			result.SetNRGBA(box.XMax, y, lineColor)
		}

		labelColor := color.NRGBA{255, 255, 255, 255}
		bgColor := color.NRGBA{0, 0, 0, 180}
		label := fmt.Sprintf("%d,%d", box.XMin, box.YMin)
		drawLabel(result, box.XMin+2, box.YMin+2, label, labelColor, bgColor)
	}

	encoded, err := EncodePNG(result)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{CropResult: *encoded, Box: box}, nil
}

// drawLabel draws a simple text label at the given position
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	// Simple 3x5 pixel font for digits and comma
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	// Draw background
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	// Draw text
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
