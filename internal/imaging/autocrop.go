package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Options are the crop parameters.
type Options struct {
	// Padding is added on every side of the content box before clamping.
	Padding int

	// Tolerance is the largest summed per-channel difference from the
	// background that still counts as background. Unused for ModeRGBA.
	Tolerance int

	// Background overrides corner inference when non-nil.
	Background color.Color
}

// Validate rejects negative padding or tolerance.
func (o Options) Validate() error {
	if o.Padding < 0 {
		return fmt.Errorf("%w: padding %d is negative", ErrInvalidOptions, o.Padding)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %d is negative", ErrInvalidOptions, o.Tolerance)
	}
	return nil
}

// AutoCropResult is the outcome of AutoCrop.
type AutoCropResult struct {
	// Image is the cropped image, or the original when ContentFound is false.
	Image image.Image

	// Box is the padded and clamped content box, EmptyBox without content.
	Box BoundingBox

	// ContentFound is false when the mask had no foreground pixel.
	ContentFound bool

	// Mode is the color mode the image was analyzed in.
	Mode Mode

	OriginalWidth  int
	OriginalHeight int
}

// ContentBounds runs detection and bounds reduction without cropping.
func ContentBounds(img image.Image, opts Options) (BoundingBox, error) {
	if err := opts.Validate(); err != nil {
		return EmptyBox, err
	}

	var mask *Mask
	if opts.Background != nil {
		mask = DetectForegroundWith(img, opts.Tolerance, opts.Background)
	} else {
		mask = DetectForeground(img, opts.Tolerance)
	}
	return ComputeBounds(mask, opts.Padding)
}

// AutoCrop crops img to its content box.
//
// When no content is found the original image is returned unchanged with
// ContentFound set to false; this is not an error.
func AutoCrop(img image.Image, opts Options) (*AutoCropResult, error) {
	bounds := img.Bounds()
	result := &AutoCropResult{
		Image:          img,
		Box:            EmptyBox,
		Mode:           ModeOf(img),
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
	}

	box, err := ContentBounds(img, opts)
	if errors.Is(err, ErrNoContent) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	cropped, err := Crop(img, box)
	if err != nil {
		return nil, err
	}

	result.Image = cropped
	result.Box = box
	result.ContentFound = true
	return result, nil
}
