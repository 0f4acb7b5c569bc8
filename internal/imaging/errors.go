package imaging

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent reports that an image has no foreground pixel.
	ErrNoContent = errors.New("no content found in image")

	// ErrInvalidOptions reports negative padding or tolerance.
	ErrInvalidOptions = errors.New("invalid crop options")
)

// DecodeError is returned when a source image cannot be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when a cropped image cannot be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode image %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// InvalidBoxError is returned by Crop for an empty box or one that does not
// fit the source image. Correct mask-to-bounds computation never produces
// one.
type InvalidBoxError struct {
	Box    BoundingBox
	Width  int
	Height int
}

func (e *InvalidBoxError) Error() string {
	if e.Box.IsEmpty() {
		return "invalid crop box: box is empty"
	}
	return fmt.Sprintf("invalid crop box (%d,%d)-(%d,%d) for %dx%d image",
		e.Box.XMin, e.Box.YMin, e.Box.XMax, e.Box.YMax, e.Width, e.Height)
}
