package sbf

import (
	"fmt"
	"io"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// readFrameRaw reads size palette indices, one byte each.
func readFrameRaw(r io.Reader, size, paletteCount int) ([]byte, error) {
	b := make([]byte, size)
	if err := readFull(r, b); err != nil {
		return nil, ErrTruncated
	}
	for _, v := range b {
		if int(v) >= paletteCount {
			return nil, ErrPaletteIndexOutOfRange
		}
	}
	return b, nil
}

// readFrameRLE reads (count, value) pairs until exactly size pixels have
// been produced.
func readFrameRLE(r io.Reader, size, paletteCount int) ([]byte, error) {
	b := make([]byte, 0, size)
	var run [2]byte
	for len(b) < size {
		if err := readFull(r, run[:]); err != nil {
			return nil, ErrRLEUnderrun
		}
		count, value := int(run[0]), run[1]
		if count == 0 {
			return nil, ErrInvalidRLERun
		}
		if len(b)+count > size {
			return nil, ErrRLEOverrun
		}
		if int(value) >= paletteCount {
			return nil, ErrPaletteIndexOutOfRange
		}
		for i := 0; i < count; i++ {
			b = append(b, value)
		}
	}
	return b, nil
}

// appendRLE appends the run-length encoding of frame to dst. Runs are
// maximal and capped at 255, scanning left to right, so the output is the
// unique greedy encoding of the input.
func appendRLE(dst, frame []byte) []byte {
	for i := 0; i < len(frame); {
		v := frame[i]
		n := 1
		for n < maxRun && i+n < len(frame) && frame[i+n] == v {
			n++
		}
		dst = append(dst, byte(n), v)
		i += n
	}
	return dst
}

// framePixels converts stored index bytes to document pixels. When the
// palette reserves entry 0 as fully transparent, index 0 decodes to the
// Transparent sentinel.
func framePixels(b []byte, transparentZero bool) sprite.Frame {
	f := make(sprite.Frame, len(b))
	for i, v := range b {
		if v == 0 && transparentZero {
			f[i] = sprite.Transparent
		} else {
			f[i] = sprite.Pixel(v)
		}
	}
	return f
}

// frameBytes converts document pixels to stored index bytes, mapping the
// Transparent sentinel onto reserved palette entry 0.
func frameBytes(f sprite.Frame, paletteCount int, transparentZero bool) ([]byte, error) {
	b := make([]byte, len(f))
	for i, p := range f {
		switch {
		case p == sprite.Transparent:
			if !transparentZero {
				return nil, ErrNoTransparentSlot
			}
			b[i] = 0
		case p < 0 || int(p) > maxIndex:
			return nil, fmt.Errorf("sbf: pixel value %d does not fit in a byte", p)
		case int(p) >= paletteCount:
			return nil, fmt.Errorf("sbf: pixel references palette entry %d of %d", p, paletteCount)
		default:
			b[i] = byte(p)
		}
	}
	return b, nil
}
