package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// Crop extracts the inclusive box from img into a new image of size
// box.Width() x box.Height(). The source image is not modified.
//
// An empty box, or one that reaches outside img, yields *InvalidBoxError.
func Crop(img image.Image, box BoundingBox) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if box.IsEmpty() || box.XMin < 0 || box.YMin < 0 || box.XMax >= w || box.YMax >= h {
		return nil, &InvalidBoxError{Box: box, Width: w, Height: h}
	}

	return imaging.Crop(img, box.Rect(bounds.Min)), nil
}

// CropResult contains a cropped image encoded as base64 PNG.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropRegion extracts the region (x1,y1)-(x2,y2), x2 and y2 exclusive, and
// optionally rescales it. A scale of 1 or less than or equal to 0 keeps the
// original size.
func CropRegion(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			x1, y1, x2, y2, w, h)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped, err := Crop(img, BoundingBox{XMin: x1, YMin: y1, XMax: x2 - 1, YMax: y2 - 1})
	if err != nil {
		return nil, err
	}

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodePNG(cropped)
}

// EncodePNG encodes img as a base64 PNG CropResult.
func EncodePNG(img image.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
