package sbf

import (
	"bytes"
	"fmt"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// Mode selects how frames are stored in an encoded file. The choice applies
// to the whole file, never to individual frames.
type Mode int

const (
	// ModeAuto stores frames run-length compressed when that is no larger
	// than storing them raw.
	ModeAuto Mode = iota
	// ModeRaw always stores frames uncompressed.
	ModeRaw
	// ModeRLE always stores frames run-length compressed.
	ModeRLE
)

type encoder struct {
	w    bytes.Buffer
	mode Mode
}

func (e *encoder) encode(doc *sprite.Document) error {
	size := doc.Width * doc.Height

	switch {
	case doc.Width < 0 || doc.Width > maxCount || doc.Height < 0 || doc.Height > maxCount:
		return fmt.Errorf("sbf: dimensions %dx%d do not fit in 16 bits", doc.Width, doc.Height)
	case len(doc.Palette) > maxCount:
		return fmt.Errorf("sbf: %d palette entries, limit %d", len(doc.Palette), maxCount)
	case len(doc.Frames) > maxCount:
		return fmt.Errorf("sbf: %d frames, limit %d", len(doc.Frames), maxCount)
	case len(doc.Frames) > 0 && size == 0:
		return fmt.Errorf("sbf: %d frames with empty %dx%d grid", len(doc.Frames), doc.Width, doc.Height)
	}

	tz := transparentZero(doc.Palette)
	frames := make([][]byte, len(doc.Frames))
	for i, f := range doc.Frames {
		if len(f) != size {
			return fmt.Errorf("sbf: frame %d has %d pixels, want %d", i, len(f), size)
		}
		b, err := frameBytes(f, len(doc.Palette), tz)
		if err != nil {
			return err
		}
		frames[i] = b
	}

	rle := e.mode != ModeRaw
	var rleFrames [][]byte
	if rle {
		var rleSize int
		rleFrames = make([][]byte, len(frames))
		for i, f := range frames {
			rleFrames[i] = appendRLE(nil, f)
			rleSize += len(rleFrames[i])
		}
		// The auto policy compares whole-file footprints and keeps RLE on
		// a tie, so the compressed form wins whenever it is no larger.
		if e.mode == ModeAuto && rleSize > len(frames)*size {
			rle = false
		}
	}

	h := Header{
		Version:      Version,
		Width:        uint16(doc.Width),
		Height:       uint16(doc.Height),
		FrameCount:   uint16(len(doc.Frames)),
		PaletteCount: uint16(len(doc.Palette)),
	}
	if rle {
		h.Flags = FlagRLE
	}

	writeHeader(&e.w, h)
	writePalette(&e.w, doc.Palette)
	for i, f := range frames {
		if rle {
			e.w.Write(rleFrames[i])
		} else {
			e.w.Write(f)
		}
	}
	return writeMetadata(&e.w, doc)
}

// Encode serializes the document. Width, height and the counts in the header
// are derived from the palette and frame slices, so the header can never
// disagree with the body. Encoding the same document twice with the same
// mode yields identical bytes. Errors indicate invariant violations in the
// document, not malformed data.
func Encode(doc *sprite.Document, mode Mode) ([]byte, error) {
	e := encoder{mode: mode}
	if err := e.encode(doc); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}
