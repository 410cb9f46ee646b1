// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package frame is the rotation aware framebuffer drawn by the marquee and
// flushed to the display.
//
// Pixels are stored in image1bit.VerticalLSB, the controller's native
// page-major layout, so Bytes() can be streamed as is.
package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Rotation is the orientation of the panel relative to its native scan
// direction.
type Rotation uint8

// Supported rotations, clockwise.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Transposed reports whether the logical width and height are swapped
// relative to the panel.
func (r Rotation) Transposed() bool {
	return r == Rotate90 || r == Rotate270
}

// Buffer is an in-memory mirror of the controller's pixel memory.
//
// The backing store is always in the panel's native page-major layout. Rotate0
// and Rotate180 map logical coordinates one to one, the 180° flip is done by
// the controller itself. Rotate90 and Rotate270 transpose the coordinates; the
// controller provides the remaining mirror.
//
// Writes outside Bounds() are ignored and reads outside Bounds() return Off.
type Buffer struct {
	img    *image1bit.VerticalLSB
	rot    Rotation
	bounds image.Rectangle
}

// New returns a cleared framebuffer for a w×h panel.
//
// w and h are the panel's native dimensions; Bounds() returns h×w when the
// rotation is transposed.
func New(w, h int, rot Rotation) *Buffer {
	f := &Buffer{
		img:    image1bit.NewVerticalLSB(image.Rect(0, 0, w, h)),
		rot:    rot,
		bounds: image.Rect(0, 0, w, h),
	}
	if rot.Transposed() {
		f.bounds = image.Rect(0, 0, h, w)
	}
	return f
}

func (f *Buffer) String() string {
	return fmt.Sprintf("frame.Buffer{%s, %s}", f.img.Rect.Max, f.rot)
}

// Rotation returns the rotation set at construction.
func (f *Buffer) Rotation() Rotation {
	return f.rot
}

// Native returns the backing image in panel coordinates.
func (f *Buffer) Native() *image1bit.VerticalLSB {
	return f.img
}

// Bytes returns the pixels in the layout expected by the controller.
//
// The returned slice aliases the framebuffer and must not be modified by the
// caller.
func (f *Buffer) Bytes() []byte {
	return f.img.Pix
}

// Clear turns every pixel Off.
func (f *Buffer) Clear() {
	clear(f.img.Pix)
}

// SetBit sets the pixel at logical coordinates (x, y).
func (f *Buffer) SetBit(x, y int, b image1bit.Bit) {
	if !(image.Pt(x, y).In(f.bounds)) {
		return
	}
	x, y = f.native(x, y)
	f.img.SetBit(x, y, b)
}

// BitAt returns the pixel at logical coordinates (x, y).
func (f *Buffer) BitAt(x, y int) image1bit.Bit {
	if !(image.Pt(x, y).In(f.bounds)) {
		return image1bit.Off
	}
	x, y = f.native(x, y)
	return f.img.BitAt(x, y)
}

// Bounds implements image.Image. Min is always {0, 0}.
func (f *Buffer) Bounds() image.Rectangle {
	return f.bounds
}

// ColorModel implements image.Image.
func (f *Buffer) ColorModel() color.Model {
	return image1bit.BitModel
}

// At implements image.Image.
func (f *Buffer) At(x, y int) color.Color {
	return f.BitAt(x, y)
}

// Set implements draw.Image.
func (f *Buffer) Set(x, y int, c color.Color) {
	f.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// Equal reports whether both framebuffers hold the same pixels.
func (f *Buffer) Equal(o *Buffer) bool {
	return f.rot == o.rot && f.img.Rect == o.img.Rect && bytes.Equal(f.img.Pix, o.img.Pix)
}

func (f *Buffer) native(x, y int) (int, int) {
	if f.rot.Transposed() {
		return y, x
	}
	return x, y
}

var _ draw.Image = &Buffer{}
