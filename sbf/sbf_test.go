package sbf

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// file builds a .gdkimg byte stream section by section.
type file struct {
	bytes.Buffer
}

func (f *file) header(version, flags uint8, width, height, frames, palette uint16) *file {
	f.Write(magic[:])
	binary.Write(f, binary.LittleEndian, &Header{
		Version:      version,
		Flags:        flags,
		Width:        width,
		Height:       height,
		FrameCount:   frames,
		PaletteCount: palette,
	})
	return f
}

func (f *file) palette(entries ...color.RGBA) *file {
	for _, c := range entries {
		f.Write([]byte{c.R, c.G, c.B, c.A})
	}
	return f
}

func (f *file) entry(typ uint8, value []byte) *file {
	f.WriteByte(typ)
	var length [2]byte
	binary.LittleEndian.PutUint16(length[:], uint16(len(value)))
	f.Write(length[:])
	f.Write(value)
	return f
}

func grayPalette(n int) []color.RGBA {
	p := make([]color.RGBA, n)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 255}
	}
	return p
}

func TestDecodeHeaderErrors(t *testing.T) {
	tables := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrTruncated},
		{"short magic", []byte("GDK"), ErrTruncated},
		{"bad magic", append([]byte("NOTIMG"), make([]byte, 10)...), ErrBadMagic},
		{"short header", append([]byte("GDKIMG"), 1, 0, 16, 0), ErrTruncated},
		{"bad version", new(file).header(9, 0, 1, 1, 0, 0).Bytes(), ErrUnsupportedVersion},
		{"zero grid with frames", new(file).header(Version, 0, 0, 16, 1, 0).Bytes(), ErrEmptyFrameGrid},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(table.data)
			assert.Equal(t, table.err, err)

			_, err = DecodeHeader(table.data)
			assert.Equal(t, table.err, err)
		})
	}
}

func TestDecodeUndefinedFlagBits(t *testing.T) {
	// Undefined flag bits must be ignored, not rejected
	f := new(file).header(Version, 0x82, 0, 0, 0, 0)
	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	assert.Empty(t, doc.Frames)

	h, err := DecodeHeader(f.Bytes())
	require.NoError(t, err)
	assert.False(t, h.RLE(), "bit 1 is not the RLE flag")
	assert.Equal(t, uint8(0x82), h.Flags)
}

func TestDecodeEmpty(t *testing.T) {
	doc, err := Decode(new(file).header(Version, 0, 0, 0, 0, 0).Bytes())
	require.NoError(t, err)

	assert.Zero(t, doc.Width)
	assert.Zero(t, doc.Height)
	assert.Empty(t, doc.Palette)
	assert.Empty(t, doc.Frames)
	assert.Empty(t, doc.Name)
}

func TestDecodeLiteralScenario(t *testing.T) {
	f := new(file).header(Version, 0, 16, 16, 2, 64)
	f.palette(grayPalette(64)...)
	f.Write(bytes.Repeat([]byte{7}, 256))  // frame 0
	f.Write(bytes.Repeat([]byte{63}, 256)) // frame 1
	f.entry(tagName, []byte("Cave Man"))
	f.entry(tagFPS, []byte{10})
	f.entry(tagLoop, []byte{1})

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 16, doc.Width)
	assert.Equal(t, 16, doc.Height)
	assert.Len(t, doc.Palette, 64)
	assert.Equal(t, "Cave Man", doc.Name)
	assert.Equal(t, 10, doc.FPS)
	assert.True(t, doc.Loop)
	require.Len(t, doc.Frames, 2)
	for _, frame := range doc.Frames {
		assert.Len(t, frame, 256)
	}
	assert.Equal(t, sprite.Pixel(7), doc.At(0, 0, 0))
	assert.Equal(t, sprite.Pixel(63), doc.At(1, 15, 15))
}

func TestDecodeRLELiteral(t *testing.T) {
	f := new(file).header(Version, FlagRLE, 8, 1, 1, 8)
	f.palette(grayPalette(8)...)
	f.Write([]byte{5, 3, 2, 4, 1, 0})

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sprite.Frame{3, 3, 3, 3, 3, 4, 4, 0}, doc.Frames[0])
}

func TestDecodePaletteIndexOutOfRange(t *testing.T) {
	f := new(file).header(Version, 0, 2, 1, 1, 4)
	f.palette(grayPalette(4)...)
	f.Write([]byte{0, 4})

	_, err := Decode(f.Bytes())
	assert.Equal(t, ErrPaletteIndexOutOfRange, err)
}

func TestDecodeRLEErrors(t *testing.T) {
	tables := []struct {
		name string
		runs []byte
		err  error
	}{
		{"zero count", []byte{0, 1}, ErrInvalidRLERun},
		{"overrun", []byte{6, 1, 4, 2}, ErrRLEOverrun},
		{"underrun", []byte{4, 1}, ErrRLEUnderrun},
		{"half a run", []byte{4, 1, 3}, ErrRLEUnderrun},
		{"bad index", []byte{4, 200}, ErrPaletteIndexOutOfRange},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			f := new(file).header(Version, FlagRLE, 8, 1, 1, 8)
			f.palette(grayPalette(8)...)
			f.Write(table.runs)

			_, err := Decode(f.Bytes())
			assert.Equal(t, table.err, err)
		})
	}
}

func TestDecodeTruncatedAnywhere(t *testing.T) {
	f := new(file).header(Version, 0, 4, 4, 2, 16)
	f.palette(grayPalette(16)...)
	f.Write(bytes.Repeat([]byte{1}, 16))
	f.Write(bytes.Repeat([]byte{2}, 16))
	full := f.Bytes()

	// Every truncation point within the palette and frame sections must
	// surface as ErrTruncated, never as a short silent read.
	for cut := headerSize; cut < len(full); cut++ {
		_, err := Decode(full[:cut])
		assert.Equalf(t, ErrTruncated, err, "cut at %d", cut)
	}
}

func TestDecodeMetadataTruncated(t *testing.T) {
	f := new(file).header(Version, 0, 0, 0, 0, 0)
	f.entry(tagName, []byte("sprite"))
	full := f.Bytes()

	for cut := headerSize + 1; cut < len(full); cut++ {
		_, err := Decode(full[:cut])
		assert.Equalf(t, ErrMetadataTruncated, err, "cut at %d", cut)
	}
}

func TestDecodeMetadataWrongLengthRetained(t *testing.T) {
	f := new(file).header(Version, 0, 0, 0, 0, 0)
	f.entry(tagFPS, []byte{10, 20})

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 10, doc.FPS, "default fps, not the malformed entry")
	assert.Equal(t, []sprite.Extra{{Type: tagFPS, Value: []byte{10, 20}}}, doc.Extra)
}

func TestDecodeEmptyTagsRetained(t *testing.T) {
	f := new(file).header(Version, 0, 0, 0, 0, 0)
	f.entry(tagTags, nil)

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	assert.Empty(t, doc.Tags)
	require.Equal(t, []sprite.Extra{{Type: tagTags, Value: []byte{}}}, doc.Extra)

	out, err := Encode(doc, ModeAuto)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(out, []byte{tagTags, 0, 0}), "entry should survive a re-encode")
}

func TestRLERoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		size := 1 + rng.Intn(1000)
		grid := make([]byte, size)
		// Random run structure rather than random noise
		for i := 0; i < size; {
			v := byte(rng.Intn(4))
			n := 1 + rng.Intn(600)
			for ; n > 0 && i < size; n-- {
				grid[i] = v
				i++
			}
		}

		enc := appendRLE(nil, grid)

		var maximal, expect int
		for i := 0; i < size; {
			n := 1
			for i+n < size && grid[i+n] == grid[i] {
				n++
			}
			maximal++
			expect += (n + maxRun - 1) / maxRun
			i += n
		}
		require.Equal(t, expect*2, len(enc))
		require.LessOrEqual(t, maximal, expect)
		for i := 0; i < len(enc); i += 2 {
			require.NotZero(t, enc[i])
		}

		dec, err := readFrameRLE(bytes.NewReader(enc), size, 256)
		require.NoError(t, err)
		require.Equal(t, grid, dec)
	}
}

func TestRLELongRunSplits(t *testing.T) {
	enc := appendRLE(nil, bytes.Repeat([]byte{9}, 300))
	assert.Equal(t, []byte{255, 9, 45, 9}, enc)
}

func testDocument() *sprite.Document {
	palette := append([]color.RGBA{{0, 0, 0, 0}}, grayPalette(15)...)
	doc := sprite.Empty(4, 3, palette, "walker")
	doc.Author = "protox"
	doc.Tags = []string{"player", "test"}
	doc.FPS = 12
	doc.Loop = false
	doc.Frames = []sprite.Frame{
		{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3},
		{sprite.Transparent, 5, 5, sprite.Transparent, 5, 5, 5, 5, sprite.Transparent, 5, 5, sprite.Transparent},
	}
	fps := 24
	loop := true
	doc.Animations = map[string]sprite.Animation{
		"walk": {Frames: []int{0, 1}, FPS: &fps},
		"idle": {Frames: []int{0}, Loop: &loop},
	}
	doc.Properties = sprite.Properties{Collision: true, Player: true}
	return doc
}

func TestRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeAuto, ModeRaw, ModeRLE} {
		doc := testDocument()

		b, err := Encode(doc, mode)
		require.NoError(t, err)

		got, err := Decode(b)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	}
}

func TestEncodeIdempotent(t *testing.T) {
	for _, mode := range []Mode{ModeAuto, ModeRaw, ModeRLE} {
		first, err := Encode(testDocument(), mode)
		require.NoError(t, err)
		second, err := Encode(testDocument(), mode)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestEncodeModePolicy(t *testing.T) {
	palette := append([]color.RGBA{{}}, grayPalette(3)...)

	flat := sprite.Empty(16, 16, palette, "flat")
	b, err := Encode(flat, ModeAuto)
	require.NoError(t, err)
	h, err := DecodeHeader(b)
	require.NoError(t, err)
	assert.True(t, h.RLE(), "uniform frames should compress")

	noisy := sprite.Empty(16, 16, palette, "noisy")
	for i := range noisy.Frames[0] {
		noisy.Frames[0][i] = sprite.Pixel(1 + i%2)
	}
	b, err = Encode(noisy, ModeAuto)
	require.NoError(t, err)
	h, err = DecodeHeader(b)
	require.NoError(t, err)
	assert.False(t, h.RLE(), "alternating pixels should stay raw")

	// Ties prefer RLE: a 2 pixel frame of one value is 2 bytes either way
	tie := sprite.Empty(2, 1, palette, "tie")
	tie.Frames[0] = sprite.Frame{1, 1}
	b, err = Encode(tie, ModeAuto)
	require.NoError(t, err)
	h, err = DecodeHeader(b)
	require.NoError(t, err)
	assert.True(t, h.RLE())
}

func TestEncodeEmptyDocument(t *testing.T) {
	b, err := Encode(&sprite.Document{}, ModeAuto)
	require.NoError(t, err)

	doc, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, &sprite.Document{Frames: []sprite.Frame{}}, doc)
}

func TestEncodeErrors(t *testing.T) {
	wrongSize := sprite.Empty(4, 4, grayPalette(4), "")
	wrongSize.Frames[0] = wrongSize.Frames[0][:10]

	noSlot := sprite.Empty(2, 2, grayPalette(4), "")

	badIndex := sprite.Empty(2, 2, grayPalette(4), "")
	for i := range badIndex.Frames[0] {
		badIndex.Frames[0][i] = 200
	}

	badFPS := sprite.Empty(2, 2, append([]color.RGBA{{}}, grayPalette(3)...), "")
	badFPS.FPS = 1000

	emptyGrid := &sprite.Document{Frames: []sprite.Frame{{}}}

	for name, doc := range map[string]*sprite.Document{
		"frame size mismatch":    wrongSize,
		"no transparent slot":    noSlot,
		"palette index too big":  badIndex,
		"fps out of range":       badFPS,
		"frames with empty grid": emptyGrid,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Encode(doc, ModeAuto)
			assert.Error(t, err)
		})
	}
}

func TestUnknownEntriesRetained(t *testing.T) {
	f := new(file).header(Version, 0, 0, 0, 0, 0)
	f.entry(0x7f, []byte{1, 2, 3})
	f.entry(0xff, []byte{0xde, 0xad, 0xbe, 0xef}) // reserved checksum trailer

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	require.Equal(t, []sprite.Extra{
		{Type: 0x7f, Value: []byte{1, 2, 3}},
		{Type: 0xff, Value: []byte{0xde, 0xad, 0xbe, 0xef}},
	}, doc.Extra)

	// Re-encoding must reproduce the unknown entries byte for byte, in
	// their original relative order, after the known entries.
	b, err := Encode(doc, ModeAuto)
	require.NoError(t, err)

	var want file
	want.entry(0x7f, []byte{1, 2, 3})
	want.entry(0xff, []byte{0xde, 0xad, 0xbe, 0xef})
	assert.True(t, bytes.HasSuffix(b, want.Bytes()))

	again, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, doc.Extra, again.Extra)
}

func TestAnimationEntry(t *testing.T) {
	doc := testDocument()
	b, err := Encode(doc, ModeAuto)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	require.Len(t, got.Animations, 2)
	assert.Equal(t, doc.Animations["walk"], got.Animations["walk"])
	assert.Equal(t, doc.Animations["idle"], got.Animations["idle"])
	assert.Equal(t, doc.Properties, got.Properties)
}

func TestAnimationEntryMalformedRetained(t *testing.T) {
	tables := []struct {
		name  string
		value []byte
	}{
		{"unknown version", []byte{9, 0}},
		{"short payload", []byte{1, 1, 4}},
		{"frame out of range", []byte{1, 1, 1, 'a', 1, 0, 9, 0, 0}},
		{"trailing bytes", []byte{1, 0, 0xee}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			f := new(file).header(Version, 0, 1, 1, 1, 1)
			f.palette(color.RGBA{0, 0, 0, 255})
			f.Write([]byte{0})
			f.entry(tagAnimSet, table.value)

			doc, err := Decode(f.Bytes())
			require.NoError(t, err)
			assert.Empty(t, doc.Animations)
			assert.Equal(t, []sprite.Extra{{Type: tagAnimSet, Value: table.value}}, doc.Extra)
		})
	}
}

func TestTransparency(t *testing.T) {
	f := new(file).header(Version, 0, 2, 1, 1, 2)
	f.palette(color.RGBA{0, 0, 0, 0}, color.RGBA{255, 0, 0, 255})
	f.Write([]byte{0, 1})

	doc, err := Decode(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sprite.Frame{sprite.Transparent, 1}, doc.Frames[0])

	// Without the reserved slot, index 0 is an ordinary pixel
	f = new(file).header(Version, 0, 2, 1, 1, 2)
	f.palette(color.RGBA{0, 0, 0, 255}, color.RGBA{255, 0, 0, 255})
	f.Write([]byte{0, 1})

	doc, err = Decode(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sprite.Frame{0, 1}, doc.Frames[0])
}

func TestDecodeConfig(t *testing.T) {
	b, err := Encode(testDocument(), ModeAuto)
	require.NoError(t, err)

	h, p, err := DecodeConfig(b)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), h.Width)
	assert.Equal(t, uint16(3), h.Height)
	assert.Equal(t, uint16(2), h.FrameCount)
	assert.Len(t, p, 16)
	assert.Equal(t, uint8(0), p[0].A)
}
