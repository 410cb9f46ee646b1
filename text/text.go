// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package text rasterizes a single line of bitmap font text into a 1 bit
// canvas.
//
// Glyphs are blitted with tinyfont; only lit pixels are written so the text is
// drawn over whatever the canvas already contains. Pixels falling outside the
// canvas are clipped silently. Runes missing from the font are drawn with the
// font's fallback glyph ('?' for font6x10), never reported as an error.
package text

import (
	"image"
	"image/color"
	"math"

	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Baseline selects which row of the text origin.Y designates.
type Baseline uint8

// Baselines.
const (
	// Top is the top row of the glyph cells.
	Top Baseline = iota
	// Middle is the middle row of the glyph cells, rounded up.
	Middle
	// Bottom is the bottom row of the glyph cells, descenders included.
	Bottom
	// Alphabetic is the row capital letters sit on.
	Alphabetic
)

// Alignment selects how the rendered width is placed relative to origin.X.
type Alignment uint8

// Alignments.
const (
	// Left starts the text at origin.X.
	Left Alignment = iota
	// Center centers the text on origin.X, the extra pixel going right.
	Center
	// Right ends the text just before origin.X.
	Right
)

// Font is a bitmap font usable by Draw.
type Font interface {
	tinyfont.Fonter
	// Ascent is the number of rows between the top of a cell and the y
	// coordinate given to tinyfont.Glypher.Draw.
	Ascent() int
	// Height is the cell height.
	Height() int
}

// Canvas is where Draw writes pixels. frame.Buffer implements it.
type Canvas interface {
	Bounds() image.Rectangle
	SetBit(x, y int, b image1bit.Bit)
}

var on = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Width returns the number of pixels s advances.
func Width(f Font, s string) int {
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

// Origin returns the top left corner of the first glyph cell for text of
// width w drawn at origin.
func Origin(f Font, w int, origin image.Point, b Baseline, a Alignment) image.Point {
	p := origin
	switch a {
	case Center:
		p.X -= w / 2
	case Right:
		p.X -= w
	}
	switch b {
	case Middle:
		p.Y -= (f.Height() - 1) / 2
	case Bottom:
		p.Y -= f.Height() - 1
	case Alphabetic:
		p.Y -= f.Ascent()
	}
	return p
}

// Draw renders s on dst.
//
// s is a single line; control characters are not interpreted.
func Draw(dst Canvas, f Font, s string, origin image.Point, b Baseline, a Alignment) {
	if s == "" {
		return
	}
	bounds := dst.Bounds()
	top := Origin(f, Width(f, s), origin, b, a)
	if top.Y >= bounds.Max.Y || top.Y+f.Height() <= bounds.Min.Y {
		return
	}
	y := top.Y + f.Ascent()
	if !fits(y) {
		return
	}
	d := canvas{dst}
	x := top.X
	for _, r := range s {
		info := f.GetGlyph(r).Info()
		left := x + int(info.XOffset)
		right := left + max(int(info.Width), int(info.XAdvance))
		// Skip cells entirely outside of the canvas.
		if right > bounds.Min.X && left < bounds.Max.X && fits(x) {
			tinyfont.DrawChar(d, f, int16(x), int16(y), r, on)
		}
		x += int(info.XAdvance)
		if x >= bounds.Max.X {
			break
		}
	}
}

func fits(v int) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}

// canvas adapts a Canvas to drivers.Displayer.
type canvas struct {
	c Canvas
}

func (d canvas) Size() (x, y int16) {
	b := d.c.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d canvas) SetPixel(x, y int16, c color.RGBA) {
	d.c.SetBit(int(x), int(y), image1bit.BitModel.Convert(c).(image1bit.Bit))
}

func (d canvas) Display() error {
	return nil
}

var _ drivers.Displayer = canvas{}
