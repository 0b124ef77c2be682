// Package seam checks tileable textures for visible seams.
//
// A scan walks along one image axis in fixed steps. At every step it samples a
// square tile just before the seam and one starting at the seam, reduces each
// to its average colour and scores the pair with two metrics:
//
//   - colour difference: mean absolute RGB channel difference
//   - brightness difference: difference in BT.709 luminance
//
// Both metrics are fractions in [0,1]; a value above DifferenceThreshold is
// significant. Each metric gets its own visualisation, a vertical stack of
// strips (base swatch, divider, compare swatch) drawn by a Drawer and written
// through a storage.Storage.
//
// # Coordinates
//
// Offsets are measured from the top-left corner of the image. For a Vertical
// scan the seam is the vertical line x = SeamOffset and tiles move down the
// image; for a Horizontal scan the seam is the line y = SeamOffset and tiles
// move to the right. Pixels outside the image are absent samples and are left
// out of the averages; a step whose tile has no pixel inside the image is
// skipped.
//
// # Thread Safety
//
// Checker and Drawer keep mutable progress state and are meant for a single
// goroutine. A Checker rejects a second CheckOffset while one is running.
package seam
