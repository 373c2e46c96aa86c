package sbf

import (
	"bytes"
	"image/color"
	"io"
)

// readPalette reads count RGBA entries. Any channel value is legal.
func readPalette(r io.Reader, count int) ([]color.RGBA, error) {
	if count == 0 {
		return nil, nil
	}
	b := make([]byte, count*4)
	if err := readFull(r, b); err != nil {
		return nil, ErrTruncated
	}
	p := make([]color.RGBA, count)
	for i := range p {
		p[i] = color.RGBA{b[i*4], b[i*4+1], b[i*4+2], b[i*4+3]}
	}
	return p, nil
}

func writePalette(w *bytes.Buffer, p []color.RGBA) {
	for _, c := range p {
		w.Write([]byte{c.R, c.G, c.B, c.A})
	}
}

// transparentZero reports whether the palette reserves entry 0 as the fully
// transparent slot, which is what lets index 0 stand in for the Transparent
// pixel sentinel.
func transparentZero(p []color.RGBA) bool {
	return len(p) > 0 && p[0].A == 0
}
