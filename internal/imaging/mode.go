package imaging

import "image"

// Mode is the declared color mode of an image.
type Mode int

const (
	// ModeGrayscale is a single-channel image.
	ModeGrayscale Mode = iota
	// ModeRGB is an opaque three-channel image.
	ModeRGB
	// ModeRGBA is a four-channel image whose alpha marks content.
	ModeRGBA
)

// String returns the conventional mode name: "L", "RGB" or "RGBA".
func (m Mode) String() string {
	switch m {
	case ModeGrayscale:
		return "L"
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// Channels returns the number of samples per pixel for the mode.
func (m Mode) Channels() int {
	switch m {
	case ModeGrayscale:
		return 1
	case ModeRGBA:
		return 4
	default:
		return 3
	}
}

// ModeOf classifies an image by its concrete type.
//
//   - *image.NRGBA, *image.NRGBA64 -> ModeRGBA
//   - *image.RGBA, *image.RGBA64 -> ModeRGBA, or ModeRGB when fully opaque
//     (the PNG decoder returns *image.RGBA for truecolor files without an
//     alpha channel)
//   - *image.Gray, *image.Gray16 -> ModeGrayscale
//   - anything else (YCbCr, CMYK, Paletted, ...) -> ModeRGB
func ModeOf(img image.Image) Mode {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return ModeRGBA
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.Gray, *image.Gray16:
		return ModeGrayscale
	default:
		return ModeRGB
	}
}
