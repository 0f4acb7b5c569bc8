package imaging

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultSuffix is inserted between stem and extension when no output path
// is given.
const DefaultSuffix = "_cropped"

// Save encodes img to path, choosing the format from the extension (jpg,
// jpeg, png, gif, tif, tiff, bmp). Failures are returned as *EncodeError.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

// DefaultOutputPath returns "<stem><suffix><ext>" next to input. An empty
// suffix falls back to DefaultSuffix.
func DefaultOutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// CropRequest describes one file-to-file autocrop.
type CropRequest struct {
	// Input is the source image path.
	Input string

	// Output is the destination path. Empty means DefaultOutputPath(Input, Suffix).
	Output string

	// Suffix is used to derive Output when it is empty.
	Suffix string

	// WriteUncropped writes the original image to Output when no content
	// is found. When false nothing is written in that case.
	WriteUncropped bool

	Options Options
}

// FileResult reports the outcome of CropFile.
type FileResult struct {
	Input          string      `json:"input"`
	Output         string      `json:"output"`
	OriginalWidth  int         `json:"original_width"`
	OriginalHeight int         `json:"original_height"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	Box            BoundingBox `json:"box"`
	Mode           string      `json:"mode"`
	ContentFound   bool        `json:"content_found"`
	Written        bool        `json:"written"`
}

// CropFile decodes req.Input through cache, autocrops it and encodes the
// result to the output path.
func CropFile(cache *ImageCache, req CropRequest) (*FileResult, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	img, err := cache.Load(req.Input)
	if err != nil {
		return nil, err
	}

	res, err := AutoCrop(img, req.Options)
	if err != nil {
		return nil, err
	}

	output := req.Output
	if output == "" {
		output = DefaultOutputPath(req.Input, req.Suffix)
	}

	out := &FileResult{
		Input:          req.Input,
		Output:         output,
		OriginalWidth:  res.OriginalWidth,
		OriginalHeight: res.OriginalHeight,
		Width:          res.Image.Bounds().Dx(),
		Height:         res.Image.Bounds().Dy(),
		Box:            res.Box,
		Mode:           res.Mode.String(),
		ContentFound:   res.ContentFound,
	}

	if !res.ContentFound && !req.WriteUncropped {
		return out, nil
	}

	if err := Save(res.Image, output); err != nil {
		return nil, err
	}
	out.Written = true
	return out, nil
}
