package sprite

import "image/color"

// ProtoX64 is the stock 64 color palette shipped with the GDK. Entry 0 is
// reserved as fully transparent; the binary codec depends on that convention
// when serializing Transparent pixels.
var ProtoX64 = []color.RGBA{
	// 0-7: neutrals and grays
	{0, 0, 0, 0}, {0, 0, 0, 255},
	{255, 255, 255, 255}, {230, 230, 230, 255},
	{128, 128, 128, 255}, {64, 64, 64, 255},
	{33, 33, 33, 255}, {16, 16, 16, 255},
	// 8-15: reds and oranges
	{206, 28, 36, 255}, {255, 89, 0, 255},
	{255, 140, 0, 255}, {255, 185, 90, 255},
	{255, 220, 180, 255}, {180, 60, 30, 255},
	{120, 30, 20, 255}, {80, 20, 10, 255},
	// 16-23: yellows and greens
	{255, 236, 39, 255}, {255, 200, 0, 255},
	{220, 180, 60, 255}, {180, 150, 30, 255},
	{0, 163, 104, 255}, {0, 180, 60, 255},
	{40, 100, 30, 255}, {10, 50, 10, 255},
	// 24-31: blues and purples
	{0, 121, 241, 255}, {99, 155, 255, 255},
	{134, 120, 252, 255}, {80, 80, 200, 255},
	{118, 66, 138, 255}, {233, 0, 120, 255},
	{244, 0, 161, 255}, {180, 100, 220, 255},
	// 32-39: browns and sand
	{143, 86, 59, 255}, {180, 110, 60, 255},
	{210, 150, 100, 255}, {230, 190, 140, 255},
	{255, 210, 160, 255}, {120, 90, 60, 255},
	{80, 60, 40, 255}, {50, 35, 20, 255},
	// 40-47: extra vegetation greens
	{60, 200, 60, 255}, {90, 230, 90, 255},
	{120, 255, 120, 255}, {180, 255, 180, 255},
	{40, 150, 40, 255}, {25, 90, 25, 255},
	{15, 60, 15, 255}, {0, 40, 0, 255},
	// 48-55: sky and water tones
	{0, 190, 255, 255}, {60, 210, 255, 255},
	{120, 230, 255, 255}, {180, 250, 255, 255},
	{0, 140, 200, 255}, {0, 90, 150, 255},
	{0, 60, 110, 255}, {0, 30, 70, 255},
	// 56-63: highlights and misc
	{255, 255, 200, 255}, {255, 255, 150, 255},
	{255, 240, 100, 255}, {255, 200, 60, 255},
	{255, 170, 200, 255}, {255, 150, 255, 255},
	{180, 255, 255, 255}, {120, 220, 255, 255},
}

// VGA256 is the extended palette offered as "VGA 256" in the editor:
// a grayscale ramp, hue ramps, browns, pastels and a trailing transparency
// ramp.
var VGA256 = makeVGA256()

func makeVGA256() []color.RGBA {
	p := make([]color.RGBA, 0, 256)

	// Grayscale ramp
	for i := 0; i < 16; i++ {
		g := uint8(i * 255 / 15)
		p = append(p, color.RGBA{g, g, g, 255})
	}

	// Reds to yellows
	for r := 0; r < 256; r += 16 {
		p = append(p, color.RGBA{uint8(r), 0, 0, 255})
	}
	for o := 0; o < 256; o += 16 {
		p = append(p, color.RGBA{255, uint8(o), 0, 255})
	}
	for y := 0; y < 256; y += 16 {
		p = append(p, color.RGBA{255, 255, uint8(y), 255})
	}

	// Greens
	for g := 0; g < 256; g += 16 {
		p = append(p, color.RGBA{0, uint8(g), 0, 255})
	}
	for g := 0; g < 256; g += 16 {
		p = append(p, color.RGBA{0, uint8(g), 128, 255})
	}
	for g := 0; g < 256; g += 16 {
		p = append(p, color.RGBA{0, uint8(g), 255, 255})
	}

	// Blues and cyans
	for b := 0; b < 256; b += 16 {
		p = append(p, color.RGBA{0, 0, uint8(b), 255})
	}
	for b := 0; b < 256; b += 16 {
		p = append(p, color.RGBA{0, 128, uint8(b), 255})
	}
	for b := 0; b < 256; b += 16 {
		p = append(p, color.RGBA{0, 255, uint8(b), 255})
	}

	// Magentas and purples
	for m := 0; m < 256; m += 16 {
		p = append(p, color.RGBA{uint8(m), 0, uint8(m), 255})
	}
	for m := 0; m < 256; m += 16 {
		p = append(p, color.RGBA{128, 0, uint8(m), 255})
	}
	for m := 0; m < 256; m += 16 {
		p = append(p, color.RGBA{255, 0, uint8(m), 255})
	}

	// Browns and sands, base plus a lightened twin
	browns := []color.RGBA{
		{60, 40, 20, 255}, {90, 60, 30, 255}, {120, 80, 40, 255},
		{150, 100, 50, 255}, {180, 120, 60, 255}, {210, 150, 90, 255},
		{240, 180, 120, 255}, {255, 210, 150, 255},
	}
	lighten := func(c uint8, by int) uint8 {
		if int(c)+by > 255 {
			return 255
		}
		return c + uint8(by)
	}
	for _, c := range browns {
		p = append(p, c)
		p = append(p, color.RGBA{lighten(c.R, 30), lighten(c.G, 20), lighten(c.B, 10), 255})
	}

	// Pastels and highlights
	for i := 0; i < 64; i++ {
		v := uint8(192 + i*63/64)
		p = append(p, color.RGBA{v, 255, v, 255})
	}

	// Transparency ramp
	for i := 0; i < 16; i++ {
		p = append(p, color.RGBA{0, 0, 0, uint8(i * 16)})
	}

	return p
}

// Palettes maps the palette names offered by the editor to their colors.
var Palettes = map[string][]color.RGBA{
	"ProtoX 64": ProtoX64,
	"VGA 256":   VGA256,
}

// DefaultPalette is the palette new documents start with.
var DefaultPalette = ProtoX64
