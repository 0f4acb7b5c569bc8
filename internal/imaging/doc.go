// Package imaging finds the content bounding box of raster images and crops
// them to it.
//
// The pipeline is single-pass and stateless: a foreground Mask is derived
// from the image, reduced to an inclusive BoundingBox, expanded by padding
// and clamped to the image, and finally used to cut a new image. The source
// image is never modified.
//
// # Foreground Detection
//
// Images whose Mode is ModeRGBA use their alpha channel: a pixel is
// foreground iff its alpha is greater than zero. All other images are viewed
// as RGB (grayscale samples are replicated into all three channels) and
// compared against a background color inferred from the four corners:
//
//	top-left, bottom-left, top-right, bottom-right
//
// The most frequent corner color wins; ties go to the earliest corner in the
// order above. A pixel is foreground iff the sum of its absolute per-channel
// differences from the background is strictly greater than the tolerance.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's Bounds().Min:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - BoundingBox coordinates are inclusive on all four sides
//   - Region coordinates (x1,y1) are inclusive, (x2,y2) exclusive
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Detection and cropping
// functions share no state and may be called concurrently on different
// images.
//
// # Error Handling
//
//   - *DecodeError: the source file is missing, unreadable or not an image
//   - *EncodeError: the destination cannot be written or its extension is
//     not a supported output format
//   - *InvalidBoxError: a crop box is empty or outside the image
//   - ErrNoContent: no foreground pixel was found (a result, not a failure
//     of AutoCrop)
//   - ErrInvalidOptions: negative padding or tolerance
package imaging
