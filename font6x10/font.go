// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package font6x10 is a fixed 6x10 bitmap font covering printable ASCII.
//
// It implements tinyfont.Fonter. Runes outside 0x20-0x7E are drawn as '?'.
package font6x10

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Cell geometry.
const (
	Width  = 6
	Height = 10
	// Baseline is the row of the glyph cell sitting on the text baseline.
	Baseline = 7

	first    = 0x20
	last     = 0x7e
	fallback = '?'
)

// Font is the 6x10 font.
var Font = &font{}

type font struct{}

// Glyph is one cell of the font.
type Glyph struct {
	r   rune
	idx int
}

// Lookup returns the glyph for r and whether r is in the table. Runes outside
// the table return the '?' glyph.
func Lookup(r rune) (Glyph, bool) {
	if r < first || r > last {
		return Glyph{r: r, idx: fallback - first}, false
	}
	return Glyph{r: r, idx: int(r - first)}, true
}

// Row returns the bits of row y, bit 5 being the leftmost pixel.
func (g Glyph) Row(y int) byte {
	if y < 0 || y >= Height {
		return 0
	}
	return glyphData[g.idx*Height+y]
}

// On reports whether the pixel at (x, y) of the cell is lit.
func (g Glyph) On(x, y int) bool {
	if x < 0 || x >= Width {
		return false
	}
	return g.Row(y)&(0x20>>x) != 0
}

// Draw implements tinyfont.Glypher. y is the baseline.
func (g Glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	top := y - Baseline
	for row := 0; row < Height; row++ {
		b := g.Row(row)
		if b == 0 {
			continue
		}
		for col := 0; col < Width; col++ {
			if b&(0x20>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), top+int16(row), c)
		}
	}
}

// Info implements tinyfont.Glypher.
func (g Glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Width,
		XOffset:  0,
		YOffset:  -Baseline,
	}
}

// GetGlyph implements tinyfont.Fonter.
func (f *font) GetGlyph(r rune) tinyfont.Glypher {
	g, _ := Lookup(r)
	return g
}

// GetYAdvance implements tinyfont.Fonter.
func (f *font) GetYAdvance() uint8 {
	return Height
}

// Ascent returns the number of rows above the baseline row.
func (f *font) Ascent() int {
	return Baseline
}

// Height returns the cell height.
func (f *font) Height() int {
	return Height
}

var _ tinyfont.Fonter = Font
