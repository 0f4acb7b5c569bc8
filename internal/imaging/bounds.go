package imaging

import (
	"fmt"
	"image"
)

// BoundingBox is an inclusive rectangle in 0-based image coordinates.
type BoundingBox struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// EmptyBox is the box returned when no foreground pixel exists.
var EmptyBox = BoundingBox{XMin: 0, YMin: 0, XMax: -1, YMax: -1}

// IsEmpty reports whether the box encloses no pixel.
func (b BoundingBox) IsEmpty() bool {
	return b.XMax < b.XMin || b.YMax < b.YMin
}

// Width returns the number of columns in the box.
func (b BoundingBox) Width() int {
	if b.IsEmpty() {
		return 0
	}
	return b.XMax - b.XMin + 1
}

// Height returns the number of rows in the box.
func (b BoundingBox) Height() int {
	if b.IsEmpty() {
		return 0
	}
	return b.YMax - b.YMin + 1
}

// Rect converts the box to an exclusive image.Rectangle offset by origin.
func (b BoundingBox) Rect(origin image.Point) image.Rectangle {
	if b.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(b.XMin, b.YMin, b.XMax+1, b.YMax+1).Add(origin)
}

// Contains reports whether (x, y) lies inside the box.
func (b BoundingBox) Contains(x, y int) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

func (b BoundingBox) String() string {
	if b.IsEmpty() {
		return "EMPTY"
	}
	return fmt.Sprintf("(%d,%d,%d,%d)", b.XMin, b.YMin, b.XMax, b.YMax)
}

// ComputeBounds reduces a mask to the smallest box holding every foreground
// pixel, expands it by padding on each side and clamps it to the mask.
//
// A mask without foreground yields EmptyBox and ErrNoContent.
func ComputeBounds(mask *Mask, padding int) (BoundingBox, error) {
	if padding < 0 {
		return EmptyBox, fmt.Errorf("%w: padding %d is negative", ErrInvalidOptions, padding)
	}

	w, h := mask.Width(), mask.Height()
	xMin, yMin := w, h
	xMax, yMax := -1, -1

	for y := 0; y < h; y++ {
		row := mask.bits[y*w : (y+1)*w]
		for x, fg := range row {
			if !fg {
				continue
			}
			if x < xMin {
				xMin = x
			}
			if x > xMax {
				xMax = x
			}
			if y < yMin {
				yMin = y
			}
			yMax = y
		}
	}

	if xMax < 0 {
		return EmptyBox, ErrNoContent
	}

	return BoundingBox{
		XMin: max(0, xMin-padding),
		YMin: max(0, yMin-padding),
		XMax: padUp(xMax, padding, w-1),
		YMax: padUp(yMax, padding, h-1),
	}, nil
}

// padUp returns min(v+padding, limit) without overflowing for large padding.
func padUp(v, padding, limit int) int {
	if padding > limit-v {
		return limit
	}
	return v + padding
}
