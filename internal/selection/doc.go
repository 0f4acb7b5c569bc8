// Package selection implements manual rectangle selection over an image
// without any GUI dependency.
//
// A Selector is driven by pointer events (down, move, up) in image
// coordinates and moves through three states:
//
//	Idle -> Drawing -> Committed
//
// A press starts a rectangle, moves update its free corner, and release
// commits it. Committed rectangles are normalized so any drag direction
// works, and clamped to the image. A drag that covers no pixels is dropped.
//
// Export writes each committed rectangle to "cropped_<i>.png" in a target
// directory.
//
// A Selector is not safe for concurrent use.
package selection
