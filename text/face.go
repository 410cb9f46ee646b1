// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package text

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// FromFace exposes a bitmap font.Face, like basicfont.Face7x13, as a Font.
//
// Mask pixels with at least half coverage are lit.
func FromFace(face font.Face) Font {
	m := face.Metrics()
	return &faceFont{face: face, ascent: m.Ascent.Ceil(), height: m.Height.Ceil()}
}

type faceFont struct {
	face   font.Face
	ascent int
	height int
}

func (f *faceFont) GetGlyph(r rune) tinyfont.Glypher {
	return faceGlyph{f: f, r: r}
}

func (f *faceFont) GetYAdvance() uint8 {
	return uint8(f.height)
}

func (f *faceFont) Ascent() int {
	return f.ascent
}

func (f *faceFont) Height() int {
	return f.height
}

type faceGlyph struct {
	f *faceFont
	r rune
}

func (g faceGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	dot := fixed.P(int(x), int(y))
	dr, mask, mp, _, ok := g.f.face.Glyph(dot, g.r)
	if !ok {
		if dr, mask, mp, _, ok = g.f.face.Glyph(dot, '?'); !ok {
			return
		}
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			if _, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA(); a >= 0x8000 {
				display.SetPixel(int16(px), int16(py), c)
			}
		}
	}
}

func (g faceGlyph) Info() tinyfont.GlyphInfo {
	adv, _ := g.f.face.GlyphAdvance(g.r)
	b, _, _ := g.f.face.GlyphBounds(g.r)
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    uint8((b.Max.X - b.Min.X).Ceil()),
		Height:   uint8(g.f.height),
		XAdvance: uint8(adv.Ceil()),
		XOffset:  int8(b.Min.X.Floor()),
		YOffset:  int8(-g.f.ascent),
	}
}
