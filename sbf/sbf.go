/*
Package sbf implements the GDK sprite binary format (.gdkimg) decoder and
encoder.

A file starts with a fixed 16 byte header: a 6 byte magic tag, a version
byte, a flags byte and four little-endian 16-bit counts for width, height,
frame count and palette count. Bit 0 of the flags byte selects run-length
compression for every frame in the file; all other bits are reserved and are
ignored on decode and never set on encode.

The header is followed by the palette as 4 bytes (RGBA) per entry, then one
frame after another in timeline order. A raw frame is exactly width*height
palette indices, one byte each. An RLE frame is a sequence of (count, value)
byte pairs whose counts sum to exactly width*height, with counts in 1..255.

Everything after the last frame up to the end of the file is metadata: a
sequence of (type, length, value) entries with a 1 byte type and a 2 byte
little-endian length. Entries with unrecognized types are retained verbatim
and written back on encode, which is how extension types, including the
reserved checksum trailer, pass through older versions of the codec.
*/
package sbf

import "errors"

const (
	// Version is the format version this codec reads and writes.
	Version = 1

	headerSize = 16

	// FlagRLE selects run-length compressed frames for the whole file.
	FlagRLE = 1 << 0

	maxRun      = 255
	maxCount    = 0xffff
	maxIndex    = 0xff
	maxFPS      = 0xff
	maxTagBytes = 0xffff
)

var magic = [6]byte{'G', 'D', 'K', 'I', 'M', 'G'}

// Metadata entry types. Unlisted values are carried opaquely; 0xff is
// reserved for a future checksum trailer and is deliberately not assigned.
const (
	tagName     = 0x01
	tagAuthor   = 0x02
	tagTags     = 0x03
	tagFPS      = 0x04
	tagLoop     = 0x05
	tagAnimSet  = 0x10
	tagBehavior = 0x11
)

// Decode failures. Any of these means the asset is unusable; no partial
// document is ever returned alongside them.
var (
	ErrBadMagic               = errors.New("sbf: bad magic")
	ErrUnsupportedVersion     = errors.New("sbf: unsupported version")
	ErrTruncated              = errors.New("sbf: truncated data")
	ErrEmptyFrameGrid         = errors.New("sbf: nonzero frame count with empty frame grid")
	ErrPaletteIndexOutOfRange = errors.New("sbf: palette index out of range")
	ErrInvalidRLERun          = errors.New("sbf: zero-length rle run")
	ErrRLEOverrun             = errors.New("sbf: rle run overflows frame")
	ErrRLEUnderrun            = errors.New("sbf: rle stream ends short of frame")
	ErrMetadataTruncated      = errors.New("sbf: truncated metadata entry")
)

// ErrNoTransparentSlot is an encode failure: the document contains
// transparent pixels but palette entry 0 is not fully transparent, so there
// is no byte value to store them as.
var ErrNoTransparentSlot = errors.New("sbf: transparency requires palette entry 0 with zero alpha")
