// Package imaging loads textures for seam scanning.
//
// It decodes image files (PNG, JPEG, GIF, BMP, TIFF), caches the decoded and
// prepared copies, and converts sources to RGBA, optionally smoothed, before
// they are handed to the scanner. All coordinates follow the standard Go
// convention: (0,0) is the top-left corner, X increases rightward and Y
// increases downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Prepare is stateless and
// can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for missing or unreadable files, undecodable image
// data and negative blur radii.
package imaging
