package sbf

import (
	"bytes"
	"image/color"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

type decoder struct {
	r   *bytes.Reader
	h   Header
	doc sprite.Document
}

func (d *decoder) decode() error {
	h, err := readHeader(d.r)
	if err != nil {
		return err
	}
	d.h = h

	d.doc.Width = int(h.Width)
	d.doc.Height = int(h.Height)
	d.doc.FPS = 10
	d.doc.Loop = true

	if d.doc.Palette, err = readPalette(d.r, int(h.PaletteCount)); err != nil {
		return err
	}

	size := int(h.Width) * int(h.Height)
	tz := transparentZero(d.doc.Palette)
	d.doc.Frames = make([]sprite.Frame, h.FrameCount)
	for i := range d.doc.Frames {
		var b []byte
		if h.RLE() {
			b, err = readFrameRLE(d.r, size, int(h.PaletteCount))
		} else {
			b, err = readFrameRaw(d.r, size, int(h.PaletteCount))
		}
		if err != nil {
			return err
		}
		d.doc.Frames[i] = framePixels(b, tz)
	}

	return readMetadata(d.r, &d.doc)
}

// DecodeConfig reads the header and palette without decoding any frame or
// metadata bytes.
func DecodeConfig(b []byte) (Header, []color.RGBA, error) {
	r := bytes.NewReader(b)
	h, err := readHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	p, err := readPalette(r, int(h.PaletteCount))
	if err != nil {
		return Header{}, nil, err
	}
	return h, p, nil
}

// Decode parses a complete .gdkimg byte stream into a sprite document. It
// fails fast on the first malformed section and never returns a partial
// document. Animations and behavior flags are populated only when the file
// carries the corresponding extension entries.
func Decode(b []byte) (*sprite.Document, error) {
	d := decoder{r: bytes.NewReader(b)}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return &d.doc, nil
}
