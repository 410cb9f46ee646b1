// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package frame

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestBuffer_Layout(t *testing.T) {
	fb := New(96, 16, Rotate0)
	if len(fb.Bytes()) != 192 {
		t.Fatalf("len(Bytes()) = %d", len(fb.Bytes()))
	}
	fb.SetBit(0, 0, image1bit.On)
	fb.SetBit(1, 7, image1bit.On)
	fb.SetBit(95, 8, image1bit.On)
	fb.SetBit(2, 15, image1bit.On)
	want := make([]byte, 192)
	want[0] = 0x01
	want[1] = 0x80
	want[96+95] = 0x01
	want[96+2] = 0x80
	if diff := cmp.Diff(want, fb.Bytes()); diff != "" {
		t.Fatalf("Bytes() (-want +got):\n%s", diff)
	}
	fb.SetBit(0, 0, image1bit.Off)
	if fb.Bytes()[0] != 0 {
		t.Fatal("SetBit(Off)")
	}
}

func TestBuffer_Rotation(t *testing.T) {
	for _, tc := range []struct {
		rot    Rotation
		bounds image.Rectangle
		// native location of logical pixel (1, 2)
		native image.Point
	}{
		{Rotate0, image.Rect(0, 0, 96, 16), image.Pt(1, 2)},
		{Rotate180, image.Rect(0, 0, 96, 16), image.Pt(1, 2)},
		{Rotate90, image.Rect(0, 0, 16, 96), image.Pt(2, 1)},
		{Rotate270, image.Rect(0, 0, 16, 96), image.Pt(2, 1)},
	} {
		t.Run(tc.rot.String(), func(t *testing.T) {
			fb := New(96, 16, tc.rot)
			if fb.Bounds() != tc.bounds {
				t.Fatalf("Bounds() = %v", fb.Bounds())
			}
			if len(fb.Bytes()) != 192 {
				t.Fatalf("len(Bytes()) = %d", len(fb.Bytes()))
			}
			fb.SetBit(1, 2, image1bit.On)
			if !fb.Native().BitAt(tc.native.X, tc.native.Y) {
				t.Fatalf("native pixel %v not set", tc.native)
			}
			if !fb.BitAt(1, 2) {
				t.Fatal("BitAt(1, 2)")
			}
		})
	}
}

func TestBuffer_ClipAndClear(t *testing.T) {
	fb := New(96, 16, Rotate180)
	for _, p := range []image.Point{{96, 0}, {-1, 3}, {0, 16}, {100, 100}} {
		fb.SetBit(p.X, p.Y, image1bit.On)
		if fb.BitAt(p.X, p.Y) {
			t.Errorf("BitAt(%v) = On", p)
		}
	}
	if !fb.Equal(New(96, 16, Rotate180)) {
		t.Fatal("out of range write modified the buffer")
	}
	fb.SetBit(10, 10, image1bit.On)
	if fb.Equal(New(96, 16, Rotate180)) {
		t.Fatal("expected a difference")
	}
	fb.Clear()
	if !fb.Equal(New(96, 16, Rotate180)) {
		t.Fatal("Clear() left pixels on")
	}
}

func TestBuffer_Draw(t *testing.T) {
	fb := New(16, 8, Rotate0)
	draw.Draw(fb, image.Rect(2, 0, 4, 8), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	want := make([]byte, 16)
	want[2], want[3] = 0xFF, 0xFF
	if diff := cmp.Diff(want, fb.Bytes()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if fb.At(2, 5) != image1bit.On || fb.ColorModel() != image1bit.BitModel {
		t.Fatal("image.Image")
	}
	if s := fb.String(); s != "frame.Buffer{(16,8), 0°}" {
		t.Fatal(s)
	}
}
