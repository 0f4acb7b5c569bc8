package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA implements color.Color; the color is always opaque.
func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based relative to the image origin. The returned color
// is non-premultiplied, so RGB stays meaningful for translucent pixels.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	px := pixelAt(img, x, y)
	rgb := RGBColor{R: px.R, G: px.G, B: px.B}

	return &ColorResult{
		Hex:  rgb.Hex(),
		RGB:  rgb,
		RGBA: RGBAColor{R: px.R, G: px.G, B: px.B, A: px.A},
		HSL:  toHSL(rgb),
	}, nil
}

// CornerSample is one of the four corner pixels used for background
// inference.
type CornerSample struct {
	Label string   `json:"label"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Color RGBColor `json:"color"`
}

// CornerColors samples the four corners of an image in background evaluation
// order: top-left, bottom-left, top-right, bottom-right.
func CornerColors(img image.Image) []CornerSample {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	corners := []CornerSample{
		{Label: "top-left", X: 0, Y: 0},
		{Label: "bottom-left", X: 0, Y: h - 1},
		{Label: "top-right", X: w - 1, Y: 0},
		{Label: "bottom-right", X: w - 1, Y: h - 1},
	}
	for i := range corners {
		px := pixelAt(img, corners[i].X, corners[i].Y)
		corners[i].Color = RGBColor{R: px.R, G: px.G, B: px.B}
	}
	return corners
}

// BackgroundColor infers the background as the most frequent corner color.
//
// Ties are broken by first occurrence in CornerColors order, so four
// distinct corners yield the top-left color. An empty image yields black.
func BackgroundColor(img image.Image) RGBColor {
	corners := CornerColors(img)
	if len(corners) == 0 {
		return RGBColor{}
	}

	counts := make(map[RGBColor]int, len(corners))
	for _, c := range corners {
		counts[c.Color]++
	}

	best := corners[0].Color
	for _, c := range corners[1:] {
		if counts[c.Color] > counts[best] {
			best = c.Color
		}
	}
	return best
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (leading '#'
// optional).
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	alpha := uint8(255)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length %q", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// toRGBColor drops alpha from an arbitrary color after un-premultiplying it.
func toRGBColor(c color.Color) RGBColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{R: n.R, G: n.G, B: n.B}
}

// pixelAt reads one pixel through the same conversion used for whole-image
// masking, so corner samples always agree with mask samples.
func pixelAt(img image.Image, x, y int) color.NRGBA {
	o := img.Bounds().Min
	px := imaging.Crop(img, image.Rect(o.X+x, o.Y+y, o.X+x+1, o.Y+y+1))
	return color.NRGBA{R: px.Pix[0], G: px.Pix[1], B: px.Pix[2], A: px.Pix[3]}
}

func toHSL(c RGBColor) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
