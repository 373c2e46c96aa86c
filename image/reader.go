package image

import (
	"errors"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/ProtoXCode/Protox-GDK/sbf"
	"github.com/ProtoXCode/Protox-GDK/sprite"
)

var errNoFrames = errors.New("image: sprite has no frames")

func colorPalette(p []color.RGBA) color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Decode reads a GDK sprite from r and returns its first frame as an
// image.Image. Transparent pixels come out as palette entry 0.
func Decode(r io.Reader) (image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := sbf.Decode(b)
	if err != nil {
		return nil, err
	}
	if len(doc.Frames) == 0 {
		return nil, errNoFrames
	}

	m := image.NewPaletted(image.Rect(0, 0, doc.Width, doc.Height), colorPalette(doc.Palette))
	for i, p := range doc.Frames[0] {
		if p == sprite.Transparent {
			p = 0
		}
		m.Pix[i] = uint8(p)
	}

	return m, nil
}

// DecodeConfig returns the color model and dimensions of a GDK sprite
// without decoding any frames.
func DecodeConfig(r io.Reader) (image.Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}

	h, p, err := sbf.DecodeConfig(b)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: colorPalette(p),
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

func init() {
	image.RegisterFormat("gdkimg", "GDKIMG", Decode, DecodeConfig)
}
