// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package marquee scrolls a line of text across a 1 bit display.
//
// Every tick clears the framebuffer, draws the message at the current scroll
// offset, flushes the frame, advances the offset and then sleeps. The offset
// wraps from past the high bound back to the low bound.
package marquee

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/GermanBionicSystems/scroller/delay"
	"github.com/GermanBionicSystems/scroller/font6x10"
	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
	"github.com/GermanBionicSystems/scroller/text"
)

// Flusher makes a framebuffer visible.
//
// ssd1306.Dev and screen2d.Dev implement it.
type Flusher interface {
	Flush(fb *frame.Buffer) error
}

// Scroll is the horizontal offset of the text and its inclusive bounds.
type Scroll struct {
	X    int
	Low  int
	High int
}

// Advance moves X by step and reports whether it wrapped to Low.
func (s *Scroll) Advance(step int) bool {
	s.X += step
	if s.X > s.High {
		s.X = s.Low
		return true
	}
	return false
}

// Opts defines the animation.
type Opts struct {
	// Message is the text scrolled.
	Message string
	// Start is the initial offset of the left edge of the text.
	Start int
	// Low and High are the inclusive wrap bounds.
	Low  int
	High int
	// Step is the number of pixels moved per tick. It must be positive.
	Step int
	// Delay is the wait after each flush.
	Delay time.Duration
	// Font defaults to font6x10 when nil.
	Font      text.Font
	Baseline  text.Baseline
	Alignment text.Alignment
	// Y is the vertical origin of the text.
	Y int
	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultOpts is the reference animation.
var DefaultOpts = Opts{
	Message:   "Hello Flashing!",
	Start:     0,
	Low:       -100,
	High:      100,
	Step:      1,
	Delay:     10 * time.Millisecond,
	Baseline:  text.Top,
	Alignment: text.Left,
}

// Marquee is the animation state machine.
//
// It exclusively owns the framebuffer and the output between ticks. It is not
// safe for concurrent use.
type Marquee struct {
	fb     *frame.Buffer
	out    Flusher
	clock  delay.Sleeper
	opts   Opts
	font   text.Font
	log    *slog.Logger
	scroll Scroll
	ticks  uint64
	wraps  uint64
}

// New returns a Marquee drawing into fb and flushing to out.
//
// clock defaults to delay.System when nil.
func New(fb *frame.Buffer, out Flusher, clock delay.Sleeper, opts *Opts) (*Marquee, error) {
	if fb == nil || out == nil {
		return nil, errors.New("marquee: framebuffer and output are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Low > opts.High {
		return nil, fmt.Errorf("marquee: low bound %d above high bound %d", opts.Low, opts.High)
	}
	if opts.Start < opts.Low || opts.Start > opts.High {
		return nil, fmt.Errorf("marquee: start %d outside of [%d, %d]", opts.Start, opts.Low, opts.High)
	}
	if opts.Step <= 0 {
		return nil, fmt.Errorf("marquee: step must be positive, got %d", opts.Step)
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("marquee: negative delay %s", opts.Delay)
	}
	if clock == nil {
		clock = delay.System
	}
	m := &Marquee{
		fb:     fb,
		out:    out,
		clock:  clock,
		opts:   *opts,
		font:   opts.Font,
		log:    opts.Logger,
		scroll: Scroll{X: opts.Start, Low: opts.Low, High: opts.High},
	}
	if m.font == nil {
		m.font = font6x10.Font
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	return m, nil
}

// X returns the current scroll offset.
func (m *Marquee) X() int {
	return m.scroll.X
}

// Ticks returns the number of completed ticks.
func (m *Marquee) Ticks() uint64 {
	return m.ticks
}

// Wraps returns the number of times the offset wrapped.
func (m *Marquee) Wraps() uint64 {
	return m.wraps
}

// Render clears the framebuffer and draws the message at the current offset.
func (m *Marquee) Render() {
	m.fb.Clear()
	text.Draw(m.fb, m.font, m.opts.Message, image.Pt(m.scroll.X, m.opts.Y), m.opts.Baseline, m.opts.Alignment)
}

// Tick runs one animation step.
//
// On flush failure the offset is left unchanged and no delay is observed.
func (m *Marquee) Tick() error {
	m.Render()
	if err := m.out.Flush(m.fb); err != nil {
		return fmt.Errorf("marquee: tick %d: %w", m.ticks, err)
	}
	if m.scroll.Advance(m.opts.Step) {
		m.wraps++
		m.log.Debug("marquee wrapped", "tick", m.ticks, "x", m.scroll.X, "wraps", m.wraps)
	}
	m.ticks++
	m.clock.Sleep(m.opts.Delay)
	return nil
}

// Run ticks until a flush fails and returns that error.
func (m *Marquee) Run() error {
	m.log.Info("marquee running", "message", m.opts.Message, "x", m.scroll.X, "low", m.scroll.Low, "high", m.scroll.High, "delay", m.opts.Delay)
	for {
		if err := m.Tick(); err != nil {
			return err
		}
	}
}
