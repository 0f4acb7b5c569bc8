package selection

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	autocrop "github.com/ironsheep/image-autocrop/internal/imaging"
)

// Export crops each rectangle out of img and writes it to
// dir/cropped_<i>.png, numbering from 0 in slice order. Rectangles are in
// img's coordinate space; each is clamped to the image and empty ones are
// rejected. It returns the written paths.
func Export(img image.Image, rects []image.Rectangle, dir string) ([]string, error) {
	bounds := img.Bounds()
	paths := make([]string, 0, len(rects))

	for i, r := range rects {
		clipped := r.Canon().Intersect(bounds)
		if clipped.Empty() {
			return paths, fmt.Errorf("rectangle %d %v does not overlap image %v", i, r, bounds)
		}

		path := filepath.Join(dir, fmt.Sprintf("cropped_%d.png", i))
		if err := autocrop.Save(imaging.Crop(img, clipped), path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
