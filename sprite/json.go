package sprite

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// The editor saves sprites as JSON with row-major pixel matrices using -1
// for transparent cells. This file maps that form onto Document.

type jsonAnimation struct {
	Frames []int `json:"frames"`
	FPS    *int  `json:"fps,omitempty"`
	Loop   *bool `json:"loop,omitempty"`
}

type jsonProperties struct {
	Collision  bool `json:"collision"`
	Static     bool `json:"static"`
	Background bool `json:"background"`
	Player     bool `json:"player"`
}

type jsonDocument struct {
	Name       string                   `json:"name"`
	Width      int                      `json:"width"`
	Height     int                      `json:"height"`
	FPS        int                      `json:"fps"`
	Loop       bool                     `json:"loop"`
	Author     string                   `json:"author"`
	Tags       []string                 `json:"tags"`
	Palette    [][4]int                 `json:"palette"`
	Frames     [][][]int                `json:"frames"`
	Properties jsonProperties           `json:"properties"`
	Animations map[string]jsonAnimation `json:"animations,omitempty"`
}

// MarshalJSON encodes the document in the editor's sprite JSON layout.
func (d *Document) MarshalJSON() ([]byte, error) {
	j := jsonDocument{
		Name:   d.Name,
		Width:  d.Width,
		Height: d.Height,
		FPS:    d.FPS,
		Loop:   d.Loop,
		Author: d.Author,
		Tags:   d.Tags,
		Properties: jsonProperties{
			Collision:  d.Properties.Collision,
			Static:     d.Properties.Static,
			Background: d.Properties.Background,
			Player:     d.Properties.Player,
		},
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}

	j.Palette = make([][4]int, len(d.Palette))
	for i, c := range d.Palette {
		j.Palette[i] = [4]int{int(c.R), int(c.G), int(c.B), int(c.A)}
	}

	j.Frames = make([][][]int, len(d.Frames))
	for i, f := range d.Frames {
		rows := make([][]int, d.Height)
		for y := 0; y < d.Height; y++ {
			row := make([]int, d.Width)
			for x := 0; x < d.Width; x++ {
				row[x] = int(f[y*d.Width+x])
			}
			rows[y] = row
		}
		j.Frames[i] = rows
	}

	if len(d.Animations) > 0 {
		j.Animations = make(map[string]jsonAnimation, len(d.Animations))
		for name, a := range d.Animations {
			j.Animations[name] = jsonAnimation{Frames: a.Frames, FPS: a.FPS, Loop: a.Loop}
		}
	}

	return json.Marshal(&j)
}

// UnmarshalJSON decodes the editor's sprite JSON layout.
func (d *Document) UnmarshalJSON(b []byte) error {
	j := jsonDocument{
		Name: defaultName,
		FPS:  defaultFPS,
		Loop: true,
	}
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}

	doc := Document{
		Width:  j.Width,
		Height: j.Height,
		Name:   j.Name,
		Author: j.Author,
		Tags:   j.Tags,
		FPS:    j.FPS,
		Loop:   j.Loop,
		Properties: Properties{
			Collision:  j.Properties.Collision,
			Static:     j.Properties.Static,
			Background: j.Properties.Background,
			Player:     j.Properties.Player,
		},
	}

	doc.Palette = make([]color.RGBA, len(j.Palette))
	for i, c := range j.Palette {
		for _, v := range c {
			if v < 0 || v > 255 {
				return fmt.Errorf("sprite: palette entry %d channel out of range: %d", i, v)
			}
		}
		doc.Palette[i] = color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), uint8(c[3])}
	}

	doc.Frames = make([]Frame, len(j.Frames))
	for i, rows := range j.Frames {
		if len(rows) != j.Height {
			return fmt.Errorf("sprite: frame %d has %d rows, want %d", i, len(rows), j.Height)
		}
		f := make(Frame, 0, j.Width*j.Height)
		for y, row := range rows {
			if len(row) != j.Width {
				return fmt.Errorf("sprite: frame %d row %d has %d cells, want %d", i, y, len(row), j.Width)
			}
			for _, v := range row {
				if v < -1 || v > int(^uint16(0)>>1) {
					return fmt.Errorf("sprite: frame %d contains pixel value %d", i, v)
				}
				f = append(f, Pixel(v))
			}
		}
		doc.Frames[i] = f
	}

	if len(j.Animations) > 0 {
		doc.Animations = make(map[string]Animation, len(j.Animations))
		for name, a := range j.Animations {
			doc.Animations[name] = Animation{Frames: a.Frames, FPS: a.FPS, Loop: a.Loop}
		}
	}

	if err := doc.Validate(); err != nil {
		return err
	}

	*d = doc
	return nil
}
