// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a monochrome panel emulator that outputs to the
// terminal (stdout) using ANSI color codes.
//
// Useful to try an animation before the OLED panel is wired.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the emulated panel's native size. H must be a multiple of 8.
	W, H     int
	Rotation frame.Rotation
	Palette  *ansi256.Palette
	// On and Off are the colors of lit and unlit pixels.
	On, Off color.NRGBA
	// Out defaults to a colorable stdout.
	Out io.Writer

	_ struct{}
}

// DefaultOpts emulates the 96x16 panel with light blue pixels.
var DefaultOpts = Opts{
	W:        96,
	H:        16,
	Rotation: frame.Rotate180,
	On:       color.NRGBA{R: 0x80, G: 0xc0, B: 0xff, A: 0xff},
	Off:      color.NRGBA{A: 0xff},
}

// Dev is a monochrome panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on, off string
	fb      *frame.Buffer
	drawn   bool

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.W <= 0 || opts.H <= 0 || opts.H%8 != 0 {
		return nil, fmt.Errorf("screen2d: invalid size %dx%d", opts.W, opts.H)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.Out,
		palette: *p,
		fb:      frame.New(opts.W, opts.H, opts.Rotation),
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	d.on = d.palette.Block(opts.On)
	d.off = d.palette.Block(opts.Off)
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%s}", d.fb.Native().Rect.Max)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.fb.Bounds()
}

// NewFramebuffer returns a framebuffer matching the emulated panel.
func (d *Dev) NewFramebuffer() *frame.Buffer {
	r := d.fb.Native().Rect
	return frame.New(r.Dx(), r.Dy(), d.fb.Rotation())
}

// Flush prints fb.
func (d *Dev) Flush(fb *frame.Buffer) error {
	if fb.Native().Rect != d.fb.Native().Rect || fb.Rotation() != d.fb.Rotation() {
		return fmt.Errorf("screen2d: framebuffer %s does not match %s", fb, d)
	}
	copy(d.fb.Native().Pix, fb.Bytes())
	return d.refresh()
}

// Write accepts raw pixels in the controller's page-major layout.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.fb.Bytes()) {
		return 0, errors.New("screen2d: invalid pixel stream length")
	}
	copy(d.fb.Native().Pix, pixels)
	return len(pixels), d.refresh()
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.fb, r.Intersect(d.Bounds()), src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	b := d.fb.Bounds()
	d.buf.Reset()
	if d.drawn {
		// Move back up to redraw in place.
		fmt.Fprintf(&d.buf, "\033[%dA", b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := b.Min.X; x < b.Max.X; x++ {
			if d.fb.BitAt(x, y) {
				_, _ = d.buf.WriteString(d.on)
			} else {
				_, _ = d.buf.WriteString(d.off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
