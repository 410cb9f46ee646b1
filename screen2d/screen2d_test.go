// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
)

func newDev(t *testing.T, buf *bytes.Buffer) *Dev {
	t.Helper()
	d, err := New(&Opts{W: 3, H: 8, On: color.NRGBA{255, 255, 255, 255}, Off: color.NRGBA{0, 0, 0, 255}, Out: buf})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFlush(t *testing.T) {
	buf := bytes.Buffer{}
	d := newDev(t, &buf)
	if s := d.String(); s != "Screen2D{(3,8)}" {
		t.Fatal(s)
	}
	fb := d.NewFramebuffer()
	fb.SetBit(1, 0, image1bit.On)
	if err := d.Flush(fb); err != nil {
		t.Fatal(err)
	}
	on := ansi256.Default.Block(color.NRGBA{255, 255, 255, 255})
	off := ansi256.Default.Block(color.NRGBA{0, 0, 0, 255})
	want := "\r\033[0m" + off + on + off + "\033[0m\n"
	want += strings.Repeat("\r\033[0m"+off+off+off+"\033[0m\n", 7)
	if got := buf.String(); got != want {
		t.Fatalf("%q != %q", got, want)
	}

	buf.Reset()
	if err := d.Flush(fb); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[8A\r") {
		t.Fatalf("second frame not redrawn in place: %q", buf.String())
	}
}

func TestFlush_Mismatch(t *testing.T) {
	d := newDev(t, &bytes.Buffer{})
	if d.Flush(frame.New(3, 16, frame.Rotate0)) == nil {
		t.Fatal("expected error")
	}
}

func TestWrite(t *testing.T) {
	buf := bytes.Buffer{}
	d := newDev(t, &buf)
	if _, err := d.Write([]byte{1}); err == nil {
		t.Fatal("expected error")
	}
	if n, err := d.Write([]byte{0x01, 0, 0x80}); n != 3 || err != nil {
		t.Fatal(n, err)
	}
	fb := d.NewFramebuffer()
	fb.SetBit(0, 0, image1bit.On)
	fb.SetBit(2, 7, image1bit.On)
	if !bytes.Equal(d.fb.Bytes(), fb.Bytes()) {
		t.Fatalf("%#v", d.fb.Bytes())
	}
}

func TestDraw(t *testing.T) {
	d := newDev(t, &bytes.Buffer{})
	src := image.NewGray(image.Rect(0, 0, 3, 8))
	src.SetGray(2, 3, color.Gray{Y: 255})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !d.fb.BitAt(2, 3) || d.fb.BitAt(0, 0) {
		t.Fatal("Draw() did not convert the image")
	}
	if d.ColorModel() != image1bit.BitModel {
		t.Fatal("ColorModel()")
	}
}

func TestHalt(t *testing.T) {
	buf := bytes.Buffer{}
	d := newDev(t, &buf)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m\n" {
		t.Fatalf("%q", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(&Opts{W: 96, H: 10}); err == nil {
		t.Fatal("expected error")
	}
}
