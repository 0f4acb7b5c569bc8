package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Mask is a boolean grid aligned 1:1 with an image; true marks foreground.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask returns an all-background mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// At reports whether (x, y) is foreground. Out-of-range points are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set marks (x, y) as foreground or background. Out-of-range points are
// ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// DetectForeground builds the foreground mask of img.
//
// ModeRGBA images are masked by alpha > 0 and the tolerance is unused.
// Every other mode is compared against BackgroundColor(img): a pixel is
// foreground iff |dr|+|dg|+|db| > tolerance.
func DetectForeground(img image.Image, tolerance int) *Mask {
	return detect(img, tolerance, nil)
}

// DetectForegroundWith is DetectForeground with an explicit background
// color in place of corner inference. ModeRGBA images still use alpha.
func DetectForegroundWith(img image.Image, tolerance int, background color.Color) *Mask {
	return detect(img, tolerance, background)
}

func detect(img image.Image, tolerance int, background color.Color) *Mask {
	src := imaging.Clone(img)
	if ModeOf(img) == ModeRGBA {
		return alphaMask(src)
	}

	var bg RGBColor
	if background != nil {
		bg = toRGBColor(background)
	} else {
		bg = BackgroundColor(img)
	}
	return colorMask(src, bg, tolerance)
}

func alphaMask(src *image.NRGBA) *Mask {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	mask := NewMask(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] > 0 {
				mask.bits[y*w+x] = true
			}
		}
	}
	return mask
}

func colorMask(src *image.NRGBA, bg RGBColor, tolerance int) *Mask {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	mask := NewMask(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			diff := absDiff(row[i], bg.R) + absDiff(row[i+1], bg.G) + absDiff(row[i+2], bg.B)
			if diff > tolerance {
				mask.bits[y*w+x] = true
			}
		}
	}
	return mask
}
