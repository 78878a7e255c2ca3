// Package encode turns rendered rasters into response bytes.
//
// PNG encodes a single frame. GIF encodes an ordered sequence of timed
// frames into a looping animation using one palette shared by all frames.
// Both encoders are deterministic: the same input always produces the same
// bytes, which is what lets caches treat two renders of one bucket as
// identical.
package encode
