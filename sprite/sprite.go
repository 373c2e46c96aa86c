/*
Package sprite defines the in-memory sprite document used by the GDK tools.

A document is a palette of RGBA colors, an ordered timeline of frames holding
palette indices, animation metadata (fps, loop, named states) and descriptive
metadata (name, author, tags, behavior properties). The binary codec in the
sbf package serializes a projection of this model; the JSON form produced by
the editor round-trips it completely.
*/
package sprite

import (
	"fmt"
	"image/color"
)

// Pixel is a single cell of a frame grid; either a palette index or the
// Transparent sentinel.
type Pixel int16

// Transparent marks a cell that is skipped when the frame is drawn.
const Transparent Pixel = -1

// Frame is a row-major grid of Width*Height pixels belonging to a Document.
type Frame []Pixel

// Animation is a named subsequence of the frame timeline. FPS and Loop
// override the document-level values when non-nil.
type Animation struct {
	Frames []int
	FPS    *int
	Loop   *bool
}

// Properties are the behavior flags the editor attaches to a sprite.
type Properties struct {
	Collision  bool
	Static     bool
	Background bool
	Player     bool
}

// Zero reports whether no flag is set.
func (p Properties) Zero() bool {
	return !p.Collision && !p.Static && !p.Background && !p.Player
}

// Extra is a metadata entry carried through from a binary asset that this
// version of the codec does not recognize. Entries are re-emitted verbatim,
// in order, on encode.
type Extra struct {
	Type  uint8
	Value []byte
}

// Document is the logical sprite model shared by the editor, the codec and
// the catalog.
type Document struct {
	Width  int
	Height int

	Palette []color.RGBA
	Frames  []Frame

	Name   string
	Author string
	Tags   []string
	FPS    int
	Loop   bool

	Properties Properties
	Animations map[string]Animation

	Extra []Extra
}

const (
	defaultFPS  = 10
	defaultName = "unnamed"
)

// Empty returns a document with a single fully transparent frame, mirroring
// the blank canvas the sprite editor starts from.
func Empty(width, height int, palette []color.RGBA, name string) *Document {
	if name == "" {
		name = defaultName
	}
	blank := make(Frame, width*height)
	for i := range blank {
		blank[i] = Transparent
	}
	return &Document{
		Width:   width,
		Height:  height,
		Palette: palette,
		Frames:  []Frame{blank},
		Name:    name,
		FPS:     defaultFPS,
		Loop:    true,
	}
}

// At returns the pixel at (x, y) of frame f.
func (d *Document) At(f, x, y int) Pixel {
	return d.Frames[f][y*d.Width+x]
}

// Set stores the pixel at (x, y) of frame f.
func (d *Document) Set(f, x, y int, p Pixel) {
	d.Frames[f][y*d.Width+x] = p
}

// Validate checks the document invariants that every consumer relies on:
// frame grids matching the declared dimensions, pixels resolving to palette
// entries or Transparent, and animations indexing existing frames.
func (d *Document) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("sprite: negative dimensions %dx%d", d.Width, d.Height)
	}
	if len(d.Frames) > 0 && d.Width*d.Height == 0 {
		return fmt.Errorf("sprite: %d frames with empty %dx%d grid", len(d.Frames), d.Width, d.Height)
	}
	size := d.Width * d.Height
	for i, f := range d.Frames {
		if len(f) != size {
			return fmt.Errorf("sprite: frame %d has %d pixels, want %d", i, len(f), size)
		}
		for j, p := range f {
			if p != Transparent && (p < 0 || int(p) >= len(d.Palette)) {
				return fmt.Errorf("sprite: frame %d pixel %d references palette entry %d of %d", i, j, p, len(d.Palette))
			}
		}
	}
	for name, a := range d.Animations {
		for _, f := range a.Frames {
			if f < 0 || f >= len(d.Frames) {
				return fmt.Errorf("sprite: animation %q references frame %d of %d", name, f, len(d.Frames))
			}
		}
	}
	return nil
}

// HasTransparency reports whether any frame contains a Transparent pixel.
func (d *Document) HasTransparency() bool {
	for _, f := range d.Frames {
		for _, p := range f {
			if p == Transparent {
				return true
			}
		}
	}
	return false
}
