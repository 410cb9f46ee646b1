// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package marquee

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/GermanBionicSystems/scroller/delay/delaytest"
	"github.com/GermanBionicSystems/scroller/font6x10"
	"github.com/GermanBionicSystems/scroller/ssd1306"
	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
	"github.com/GermanBionicSystems/scroller/text"
)

// flusher keeps a copy of every flushed frame.
type flusher struct {
	frames []*frame.Buffer
	failAt int
	err    error
}

func (f *flusher) Flush(fb *frame.Buffer) error {
	if f.err != nil && len(f.frames) == f.failAt {
		return f.err
	}
	c := frame.New(96, 16, fb.Rotation())
	copy(c.Native().Pix, fb.Bytes())
	f.frames = append(f.frames, c)
	return nil
}

func newMarquee(t *testing.T, out Flusher, opts *Opts) (*Marquee, *delaytest.Recorder) {
	t.Helper()
	clock := &delaytest.Recorder{}
	m, err := New(frame.New(96, 16, frame.Rotate180), out, clock, opts)
	if err != nil {
		t.Fatal(err)
	}
	return m, clock
}

func TestScroll_Advance(t *testing.T) {
	s := Scroll{X: 99, Low: -100, High: 100}
	if s.Advance(1) || s.X != 100 {
		t.Fatalf("%+v", s)
	}
	if !s.Advance(1) || s.X != -100 {
		t.Fatalf("%+v", s)
	}
}

func TestTick_Bounds(t *testing.T) {
	m, _ := newMarquee(t, &flusher{}, nil)
	var wrapTicks []uint64
	for i := 0; i < 201*4; i++ {
		before := m.Wraps()
		if err := m.Tick(); err != nil {
			t.Fatal(err)
		}
		if x := m.X(); x < -100 || x > 100 {
			t.Fatalf("tick %d: x = %d", i, x)
		}
		if m.Wraps() != before {
			wrapTicks = append(wrapTicks, m.Ticks())
		}
	}
	// From 0, the first wrap happens on the 101st tick.
	if diff := cmp.Diff([]uint64{101, 302, 503, 704}, wrapTicks); diff != "" {
		t.Fatalf("wrap ticks (-want +got):\n%s", diff)
	}
}

func TestTick_Wrap(t *testing.T) {
	o := DefaultOpts
	o.Start = 100
	m, _ := newMarquee(t, &flusher{}, &o)
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if m.X() != -100 || m.Wraps() != 1 {
		t.Fatalf("x = %d, wraps = %d", m.X(), m.Wraps())
	}
}

func TestTick_Frames(t *testing.T) {
	f := &flusher{}
	m, clock := newMarquee(t, f, nil)
	for i := 0; i < 3; i++ {
		if err := m.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond}, clock.Ops); diff != "" {
		t.Fatalf("delays (-want +got):\n%s", diff)
	}
	if len(f.frames) != 3 {
		t.Fatalf("%d frames", len(f.frames))
	}
	for i, got := range f.frames {
		want := frame.New(96, 16, frame.Rotate180)
		text.Draw(want, font6x10.Font, "Hello Flashing!", image.Pt(i, 0), text.Top, text.Left)
		if !got.Equal(want) {
			t.Fatalf("frame %d differs", i)
		}
	}
	if m.X() != 3 || m.Ticks() != 3 {
		t.Fatalf("x = %d, ticks = %d", m.X(), m.Ticks())
	}
}

func TestTick_Error(t *testing.T) {
	errBus := errors.New("nack")
	m, clock := newMarquee(t, &flusher{err: errBus}, nil)
	err := m.Tick()
	if !errors.Is(err, errBus) {
		t.Fatalf("Tick() = %v", err)
	}
	if m.X() != 0 || m.Ticks() != 0 || len(clock.Ops) != 0 {
		t.Fatalf("state changed after failure: x = %d, ticks = %d, sleeps = %d", m.X(), m.Ticks(), len(clock.Ops))
	}
}

func TestRun(t *testing.T) {
	errBus := errors.New("nack")
	f := &flusher{err: errBus, failAt: 250}
	m, clock := newMarquee(t, f, nil)
	if err := m.Run(); !errors.Is(err, errBus) {
		t.Fatalf("Run() = %v", err)
	}
	if m.Ticks() != 250 || len(clock.Ops) != 250 || m.Wraps() != 1 {
		t.Fatalf("ticks = %d, sleeps = %d, wraps = %d", m.Ticks(), len(clock.Ops), m.Wraps())
	}
}

func TestTick_SSD1306(t *testing.T) {
	r := &i2ctest.Record{}
	dev, err := ssd1306.NewI2C(r, &ssd1306.DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	r.Ops = nil
	m, _ := newMarquee(t, dev, nil)
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	cmds, total := 0, 0
	for _, op := range r.Ops {
		switch ssd1306.Kind(op.W[0]) {
		case ssd1306.KindCommand:
			cmds++
		case ssd1306.KindData:
			total += len(op.W) - 1
		}
	}
	if cmds != 1 || total != 192 {
		t.Fatalf("%d command transactions, %d data bytes", cmds, total)
	}
}

func TestNew_Face(t *testing.T) {
	o := DefaultOpts
	o.Font = text.FromFace(basicfont.Face7x13)
	o.Message = "A"
	f := &flusher{}
	m, _ := newMarquee(t, f, &o)
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if f.frames[0].Equal(frame.New(96, 16, frame.Rotate180)) {
		t.Fatal("nothing drawn")
	}
}

func TestNew_Errors(t *testing.T) {
	fb := frame.New(96, 16, frame.Rotate0)
	for _, tc := range []struct {
		name string
		mod  func(o *Opts)
	}{
		{"bounds", func(o *Opts) { o.Low, o.High = 10, -10 }},
		{"start", func(o *Opts) { o.Start = 101 }},
		{"step", func(o *Opts) { o.Step = 0 }},
		{"delay", func(o *Opts) { o.Delay = -time.Second }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOpts
			tc.mod(&o)
			if _, err := New(fb, &flusher{}, nil, &o); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := New(nil, &flusher{}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
