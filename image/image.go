/*
Package image bridges GDK sprite assets and the standard library image
model.

Decode exposes the first frame of a .gdkimg asset as an image.Paletted;
Encode turns any image.Image into a single frame asset, quantizing the
colors down to what an 8-bit palette can index when necessary. Multi-frame
and animation data are out of reach of the image.Image interface; tools that
need them work with the sbf and sprite packages directly.
*/
package image

const (
	// Palette entry 0 is reserved as fully transparent so transparent
	// pixels have a stored representation, leaving 255 usable colors.
	maxColors = 255
)
