package imaging

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestCrop_SinglePixel(t *testing.T) {
	img := createSpotImage(10, 10, 4, 4)

	cropped, err := Crop(img, BoundingBox{4, 4, 4, 4})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if cropped.Bounds().Dx() != 1 || cropped.Bounds().Dy() != 1 {
		t.Fatalf("dimensions: got %dx%d, want 1x1", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
	if got := cropped.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want black", got)
	}
}

func TestCrop_Dimensions(t *testing.T) {
	img := createPatternImage(100, 60)

	tests := []struct {
		name         string
		box          BoundingBox
		wantW, wantH int
	}{
		{"full image", BoundingBox{0, 0, 99, 59}, 100, 60},
		{"top-left quadrant", BoundingBox{0, 0, 49, 29}, 50, 30},
		{"single column", BoundingBox{10, 0, 10, 59}, 1, 60},
		{"bottom-right pixel", BoundingBox{99, 59, 99, 59}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cropped, err := Crop(img, tt.box)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if cropped.Bounds().Dx() != tt.wantW || cropped.Bounds().Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					cropped.Bounds().Dx(), cropped.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCrop_InvalidBox(t *testing.T) {
	img := createInMemoryImage(10, 10, red)

	tests := []struct {
		name string
		box  BoundingBox
	}{
		{"empty", EmptyBox},
		{"inverted", BoundingBox{5, 5, 4, 6}},
		{"negative x", BoundingBox{-1, 0, 5, 5}},
		{"negative y", BoundingBox{0, -1, 5, 5}},
		{"x too large", BoundingBox{0, 0, 10, 5}},
		{"y too large", BoundingBox{0, 0, 5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.box)
			var boxErr *InvalidBoxError
			if !errors.As(err, &boxErr) {
				t.Fatalf("err: got %v, want *InvalidBoxError", err)
			}
			if boxErr.Box != tt.box || boxErr.Width != 10 || boxErr.Height != 10 {
				t.Errorf("error fields: got %+v", boxErr)
			}
		})
	}
}

func TestCrop_DoesNotModifySource(t *testing.T) {
	img := createSpotImage(6, 6, 2, 3)
	before := append([]byte(nil), img.Pix...)

	cropped, err := Crop(img, BoundingBox{1, 1, 4, 4})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	cropped.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})

	if string(before) != string(img.Pix) {
		t.Error("source pixels changed")
	}
}

func TestCrop_OffsetOrigin(t *testing.T) {
	img := createSpotImage(10, 10, 4, 4)
	sub := img.SubImage(image.Rect(2, 2, 8, 8))

	cropped, err := Crop(sub, BoundingBox{2, 2, 2, 2})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got := cropped.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want black", got)
	}
}

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropRegion(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	croppedImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Top-left quadrant is red
	r, g, b, _ := croppedImg.At(25, 25).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("cropped color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCropRegion_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, red)

	tests := []struct {
		name         string
		x2, y2       int
		scale        float64
		wantW, wantH int
	}{
		{"scale up", 50, 50, 2.0, 100, 100},
		{"scale down", 100, 100, 0.5, 50, 50},
		{"zero scale keeps size", 40, 30, 0, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CropRegion(img, 0, 0, tt.x2, tt.y2, tt.scale)
			if err != nil {
				t.Fatalf("CropRegion failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, red)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
		{"x1 >= x2", 50, 0, 50, 50},
		{"y1 > y2", 0, 60, 50, 50},
		{"zero area", 50, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRegion(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0)
			if err == nil {
				t.Error("CropRegion should fail for invalid region")
			}
		})
	}
}
