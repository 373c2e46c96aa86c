package sbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// The metadata section is a TLV stream. Recognized entries are decoded onto
// typed document fields; everything else, including recognized types whose
// payload does not parse, is retained opaquely so it survives a re-encode
// byte for byte.

// Animation set entry (tagAnimSet) payload, version 1:
//
//	version   u8 = 1
//	count     u8
//	per animation:
//	  name    u8 length + bytes
//	  frames  u16 count + u16 per index
//	  flags   u8 (bit0 fps override follows, bit1 loop override, bit2 loop value)
//	  fps     u8, only when bit0 is set
//
// Behavior entry (tagBehavior) payload, version 1:
//
//	version   u8 = 1
//	flags     u8 (bit0 collision, bit1 static, bit2 background, bit3 player)
const (
	animSetVersion  = 1
	behaviorVersion = 1

	behaviorCollision  = 1 << 0
	behaviorStatic     = 1 << 1
	behaviorBackground = 1 << 2
	behaviorPlayer     = 1 << 3

	animHasFPS    = 1 << 0
	animHasLoop   = 1 << 1
	animLoopValue = 1 << 2
)

func readMetadata(r *bytes.Reader, doc *sprite.Document) error {
	for r.Len() > 0 {
		var hdr [3]byte
		if err := readFull(r, hdr[:]); err != nil {
			return ErrMetadataTruncated
		}
		value := make([]byte, binary.LittleEndian.Uint16(hdr[1:]))
		if err := readFull(r, value); err != nil {
			return ErrMetadataTruncated
		}
		applyEntry(doc, hdr[0], value)
	}
	return nil
}

// applyEntry decodes a single TLV entry onto the document. Later entries of
// the same type overwrite earlier ones. Recognized entries whose payload
// does not parse are demoted to opaque retention instead of failing the
// decode; the length field already bounded them, so adjacent entries are
// unaffected.
func applyEntry(doc *sprite.Document, typ uint8, value []byte) {
	switch typ {
	case tagName:
		doc.Name = string(value)
		return
	case tagAuthor:
		doc.Author = string(value)
		return
	case tagTags:
		if len(value) > 0 {
			doc.Tags = strings.Split(string(value), ",")
			return
		}
	case tagFPS:
		if len(value) == 1 {
			doc.FPS = int(value[0])
			return
		}
	case tagLoop:
		if len(value) == 1 {
			doc.Loop = value[0] != 0
			return
		}
	case tagAnimSet:
		if a, ok := parseAnimations(value, len(doc.Frames)); ok {
			doc.Animations = a
			return
		}
	case tagBehavior:
		if p, ok := parseBehavior(value); ok {
			doc.Properties = p
			return
		}
	}
	doc.Extra = append(doc.Extra, sprite.Extra{Type: typ, Value: value})
}

func parseBehavior(b []byte) (sprite.Properties, bool) {
	if len(b) != 2 || b[0] != behaviorVersion {
		return sprite.Properties{}, false
	}
	return sprite.Properties{
		Collision:  b[1]&behaviorCollision != 0,
		Static:     b[1]&behaviorStatic != 0,
		Background: b[1]&behaviorBackground != 0,
		Player:     b[1]&behaviorPlayer != 0,
	}, true
}

func parseAnimations(b []byte, frameCount int) (map[string]sprite.Animation, bool) {
	if len(b) < 2 || b[0] != animSetVersion {
		return nil, false
	}
	count := int(b[1])
	b = b[2:]

	anims := make(map[string]sprite.Animation, count)
	for i := 0; i < count; i++ {
		if len(b) < 1 {
			return nil, false
		}
		nameLen := int(b[0])
		b = b[1:]
		if len(b) < nameLen+2 {
			return nil, false
		}
		name := string(b[:nameLen])
		frames := int(binary.LittleEndian.Uint16(b[nameLen:]))
		b = b[nameLen+2:]

		if len(b) < frames*2+1 {
			return nil, false
		}
		a := sprite.Animation{Frames: make([]int, frames)}
		for j := range a.Frames {
			f := int(binary.LittleEndian.Uint16(b[j*2:]))
			if f >= frameCount {
				return nil, false
			}
			a.Frames[j] = f
		}
		flags := b[frames*2]
		b = b[frames*2+1:]

		if flags&animHasFPS != 0 {
			if len(b) < 1 {
				return nil, false
			}
			fps := int(b[0])
			a.FPS = &fps
			b = b[1:]
		}
		if flags&animHasLoop != 0 {
			loop := flags&animLoopValue != 0
			a.Loop = &loop
		}
		anims[name] = a
	}
	if len(b) != 0 {
		return nil, false
	}
	return anims, true
}

func writeEntry(w *bytes.Buffer, typ uint8, value []byte) error {
	if len(value) > maxTagBytes {
		return fmt.Errorf("sbf: metadata entry %#02x is %d bytes, limit %d", typ, len(value), maxTagBytes)
	}
	w.WriteByte(typ)
	var length [2]byte
	binary.LittleEndian.PutUint16(length[:], uint16(len(value)))
	w.Write(length[:])
	w.Write(value)
	return nil
}

func writeMetadata(w *bytes.Buffer, doc *sprite.Document) error {
	if doc.Name != "" {
		if err := writeEntry(w, tagName, []byte(doc.Name)); err != nil {
			return err
		}
	}
	if doc.Author != "" {
		if err := writeEntry(w, tagAuthor, []byte(doc.Author)); err != nil {
			return err
		}
	}
	if len(doc.Tags) > 0 {
		if err := writeEntry(w, tagTags, []byte(strings.Join(doc.Tags, ","))); err != nil {
			return err
		}
	}
	if doc.FPS < 0 || doc.FPS > maxFPS {
		return fmt.Errorf("sbf: fps %d does not fit in a byte", doc.FPS)
	}
	if err := writeEntry(w, tagFPS, []byte{byte(doc.FPS)}); err != nil {
		return err
	}
	loop := byte(0)
	if doc.Loop {
		loop = 1
	}
	if err := writeEntry(w, tagLoop, []byte{loop}); err != nil {
		return err
	}

	if len(doc.Animations) > 0 {
		value, err := animationsValue(doc)
		if err != nil {
			return err
		}
		if err := writeEntry(w, tagAnimSet, value); err != nil {
			return err
		}
	}
	if !doc.Properties.Zero() {
		if err := writeEntry(w, tagBehavior, behaviorValue(doc.Properties)); err != nil {
			return err
		}
	}

	for _, e := range doc.Extra {
		if err := writeEntry(w, e.Type, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func behaviorValue(p sprite.Properties) []byte {
	var flags byte
	if p.Collision {
		flags |= behaviorCollision
	}
	if p.Static {
		flags |= behaviorStatic
	}
	if p.Background {
		flags |= behaviorBackground
	}
	if p.Player {
		flags |= behaviorPlayer
	}
	return []byte{behaviorVersion, flags}
}

func animationsValue(doc *sprite.Document) ([]byte, error) {
	if len(doc.Animations) > 0xff {
		return nil, fmt.Errorf("sbf: %d animations, limit %d", len(doc.Animations), 0xff)
	}

	// Map order is not stable; emit animations sorted by name so encoding
	// the same document twice yields identical bytes.
	names := make([]string, 0, len(doc.Animations))
	for name := range doc.Animations {
		names = append(names, name)
	}
	sort.Strings(names)

	b := []byte{animSetVersion, byte(len(names))}
	for _, name := range names {
		a := doc.Animations[name]
		if len(name) > 0xff {
			return nil, fmt.Errorf("sbf: animation name %q is %d bytes, limit %d", name, len(name), 0xff)
		}
		if len(a.Frames) > maxCount {
			return nil, fmt.Errorf("sbf: animation %q has %d frames, limit %d", name, len(a.Frames), maxCount)
		}

		b = append(b, byte(len(name)))
		b = append(b, name...)
		b = append(b, byte(len(a.Frames)), byte(len(a.Frames)>>8))
		for _, f := range a.Frames {
			if f < 0 || f >= len(doc.Frames) {
				return nil, fmt.Errorf("sbf: animation %q references frame %d of %d", name, f, len(doc.Frames))
			}
			b = append(b, byte(f), byte(f>>8))
		}

		var flags byte
		if a.FPS != nil {
			flags |= animHasFPS
		}
		if a.Loop != nil {
			flags |= animHasLoop
			if *a.Loop {
				flags |= animLoopValue
			}
		}
		b = append(b, flags)
		if a.FPS != nil {
			if *a.FPS < 0 || *a.FPS > maxFPS {
				return nil, fmt.Errorf("sbf: animation %q fps %d does not fit in a byte", name, *a.FPS)
			}
			b = append(b, byte(*a.FPS))
		}
	}
	return b, nil
}
