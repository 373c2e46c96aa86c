package image

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/ProtoXCode/Protox-GDK/sbf"
	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// frameDocument builds a single frame document from a paletted image,
// shifting every color up one slot to make room for the reserved
// transparent entry. Pixels whose color is fully transparent become the
// Transparent sentinel.
func frameDocument(pm *image.Paletted) *sprite.Document {
	b := pm.Bounds()

	palette := make([]color.RGBA, len(pm.Palette)+1)
	palette[0] = color.RGBA{}
	for i, c := range pm.Palette {
		r, g, bl, a := c.RGBA()
		palette[i+1] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
	}

	doc := sprite.Empty(b.Dx(), b.Dy(), palette, "")
	frame := doc.Frames[0]
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			if palette[int(v)+1].A == 0 {
				frame[y*b.Dx()+x] = sprite.Transparent
			} else {
				frame[y*b.Dx()+x] = sprite.Pixel(v) + 1
			}
		}
	}

	return doc
}

// Encode writes the image m to w as a single frame GDK sprite, quantizing
// its colors when they do not fit an 8-bit palette.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= maxColors {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}

	if pm == nil || len(pm.Palette) > maxColors {
		q := quantize.MedianCutQuantizer{AddTransparent: true}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	out, err := sbf.Encode(frameDocument(pm), sbf.ModeAuto)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}
