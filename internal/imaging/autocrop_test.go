package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestAutoCrop_SingleBlackPixel(t *testing.T) {
	img := createSpotImage(10, 10, 4, 4)

	result, err := AutoCrop(img, Options{})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}

	if !result.ContentFound {
		t.Fatal("ContentFound should be true")
	}
	if result.Box != (BoundingBox{4, 4, 4, 4}) {
		t.Errorf("box: got %v, want (4,4,4,4)", result.Box)
	}
	if result.Mode != ModeRGB {
		t.Errorf("mode: got %v, want RGB", result.Mode)
	}
	if result.OriginalWidth != 10 || result.OriginalHeight != 10 {
		t.Errorf("original size: got %dx%d, want 10x10", result.OriginalWidth, result.OriginalHeight)
	}

	b := result.Image.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("cropped size: got %dx%d, want 1x1", b.Dx(), b.Dy())
	}
	r, g, bl, _ := result.Image.At(b.Min.X, b.Min.Y).RGBA()
	if r != 0 || g != 0 || bl != 0 {
		t.Errorf("cropped pixel: got (%d,%d,%d), want black", r>>8, g>>8, bl>>8)
	}
}

func TestAutoCrop_Padding(t *testing.T) {
	img := createSpotImage(10, 10, 4, 4)

	result, err := AutoCrop(img, Options{Padding: 2})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if result.Box != (BoundingBox{2, 2, 6, 6}) {
		t.Errorf("box: got %v, want (2,2,6,6)", result.Box)
	}
	b := result.Image.Bounds()
	if b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("cropped size: got %dx%d, want 5x5", b.Dx(), b.Dy())
	}

	result, err = AutoCrop(img, Options{Padding: 9})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if result.Box != (BoundingBox{0, 0, 9, 9}) {
		t.Errorf("box with large padding: got %v, want (0,0,9,9)", result.Box)
	}
}

func TestAutoCrop_TransparentImage(t *testing.T) {
	img := createTransparentImage(5, 5, image.Pt(2, 2))

	result, err := AutoCrop(img, Options{Tolerance: 50})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if result.Mode != ModeRGBA {
		t.Errorf("mode: got %v, want RGBA", result.Mode)
	}
	if result.Box != (BoundingBox{2, 2, 2, 2}) {
		t.Errorf("box: got %v, want (2,2,2,2)", result.Box)
	}
}

func TestAutoCrop_NoContent(t *testing.T) {
	img := createInMemoryImage(7, 7, blue)

	result, err := AutoCrop(img, Options{Padding: 3, Tolerance: 5})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if result.ContentFound {
		t.Error("ContentFound should be false")
	}
	if result.Box != EmptyBox {
		t.Errorf("box: got %v, want EmptyBox", result.Box)
	}
	if result.Image != image.Image(img) {
		t.Error("original image should be returned unchanged")
	}
}

func TestAutoCrop_FullyTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	result, err := AutoCrop(img, Options{})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if result.ContentFound {
		t.Error("ContentFound should be false for a fully transparent image")
	}
}

func TestAutoCrop_InvalidOptions(t *testing.T) {
	img := createSpotImage(5, 5, 2, 2)

	tests := []struct {
		name string
		opts Options
	}{
		{"negative padding", Options{Padding: -1}},
		{"negative tolerance", Options{Tolerance: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AutoCrop(img, tt.opts)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("err: got %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestAutoCrop_Idempotent(t *testing.T) {
	img := createInMemoryImage(20, 20, white)
	for y := 5; y <= 9; y++ {
		for x := 6; x <= 13; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, black)
			}
		}
	}
	opts := Options{Background: white}

	first, err := AutoCrop(img, opts)
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	if first.Box != (BoundingBox{6, 5, 13, 9}) {
		t.Fatalf("first box: got %v, want (6,5,13,9)", first.Box)
	}

	// Re-run on an opaque RGB copy so color masking is exercised again
	b := first.Image.Bounds()
	rgb := image.NewRGBA(b)
	draw.Draw(rgb, b, first.Image, b.Min, draw.Src)

	second, err := AutoCrop(rgb, opts)
	if err != nil {
		t.Fatalf("second AutoCrop failed: %v", err)
	}
	if second.Mode != ModeRGB {
		t.Fatalf("second mode: got %v, want RGB", second.Mode)
	}
	want := BoundingBox{0, 0, b.Dx() - 1, b.Dy() - 1}
	if second.Box != want {
		t.Errorf("second box: got %v, want full extent %v", second.Box, want)
	}
}

func TestAutoCrop_IdempotentAlpha(t *testing.T) {
	img := createTransparentImage(12, 9, image.Pt(3, 2), image.Pt(8, 6), image.Pt(5, 4))

	first, err := AutoCrop(img, Options{})
	if err != nil {
		t.Fatalf("AutoCrop failed: %v", err)
	}
	second, err := AutoCrop(first.Image, Options{})
	if err != nil {
		t.Fatalf("second AutoCrop failed: %v", err)
	}

	b := first.Image.Bounds()
	want := BoundingBox{0, 0, b.Dx() - 1, b.Dy() - 1}
	if second.Box != want {
		t.Errorf("second box: got %v, want %v", second.Box, want)
	}
}

func TestContentBounds_Background(t *testing.T) {
	img := withCorners(9, 9, white, red, red, red, red)
	img.Set(4, 4, black)

	box, err := ContentBounds(img, Options{Background: color.White})
	if err != nil {
		t.Fatalf("ContentBounds failed: %v", err)
	}
	if box != (BoundingBox{0, 0, 8, 8}) {
		t.Errorf("box: got %v, want (0,0,8,8)", box)
	}

	// Inferred red background leaves everything white as content too
	box, err = ContentBounds(img, Options{})
	if err != nil {
		t.Fatalf("ContentBounds failed: %v", err)
	}
	if box != (BoundingBox{0, 0, 8, 8}) {
		t.Errorf("inferred box: got %v, want (0,0,8,8)", box)
	}
}
