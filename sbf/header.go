package sbf

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Header is the decoded 16 byte file preamble.
type Header struct {
	Version      uint8
	Flags        uint8
	Width        uint16
	Height       uint16
	FrameCount   uint16
	PaletteCount uint16
}

// RLE reports whether the frames in the file are run-length compressed.
func (h Header) RLE() bool {
	return h.Flags&FlagRLE != 0
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func readHeader(r io.Reader) (Header, error) {
	var h Header

	var m [6]byte
	if err := readFull(r, m[:]); err != nil {
		return h, ErrTruncated
	}
	if m != magic {
		return h, ErrBadMagic
	}

	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return h, ErrTruncated
	}
	if h.Version != Version {
		return h, ErrUnsupportedVersion
	}
	if h.FrameCount > 0 && int(h.Width)*int(h.Height) == 0 {
		return h, ErrEmptyFrameGrid
	}

	return h, nil
}

func writeHeader(w *bytes.Buffer, h Header) {
	w.Write(magic[:])
	// Header fields are fixed width; writing to a bytes.Buffer cannot fail.
	binary.Write(w, binary.LittleEndian, &h)
}

// DecodeHeader reads just the file preamble, validating the magic tag and
// version, without touching the palette, frames or metadata.
func DecodeHeader(b []byte) (Header, error) {
	return readHeader(bytes.NewReader(b))
}
