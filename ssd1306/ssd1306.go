// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// The SSD1306 and SH1106 are a family of OLED displays.
//
// https://hallard.me/adafruit-oled-display-driver-for-pi/
//
// https://learn.adafruit.com/ssd1306-oled-displays-with-raspberry-pi-and-beaglebone-black?view=all

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
)

// DefaultOpts is the reference panel: a 96x16 SSD1306 mounted upside down.
var DefaultOpts = Opts{
	W:           96,
	H:           16,
	Rotation:    frame.Rotate180,
	Controller:  SSD1306,
	Addr:        0x3c,
	MaxTransfer: DefaultMaxTransfer,
	Contrast:    0xFF,
}

// Opts defines the options for the device.
//
// They are fixed for the lifetime of the Dev.
type Opts struct {
	// W and H are the panel dimensions in pixels. Only the geometries of the
	// panel table are supported: 96x16, 128x32, 128x64, 64x48 and 64x32.
	W int
	H int
	// Rotation is applied once at initialization. Rotate0 and Rotate180 are
	// done by the controller, Rotate90 and Rotate270 swap the logical width
	// and height.
	Rotation frame.Rotation
	// Controller selects the opcode table.
	Controller Controller
	// The I²C address of the display. Defaults to 0x3c.
	Addr uint16
	// MaxTransfer is the maximum number of payload bytes per I²C write. Larger
	// payloads are split. Defaults to DefaultMaxTransfer.
	MaxTransfer int
	// Contrast is the initial contrast. 0 selects 0xFF.
	Contrast byte
	// Differential only sends the smallest rectangle that changed since the
	// previous flush. The visible result is the same as a full flush.
	Differential bool
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306 display
// controller.
//
// The controller reset line must already have been cycled. On error the
// display must not be used.
func NewI2C(i i2c.Bus, opts *Opts) (*Dev, error) {
	o := *opts
	if o.Addr == 0x00 {
		o.Addr = DefaultOpts.Addr
	}
	if o.MaxTransfer <= 0 {
		o.MaxTransfer = DefaultMaxTransfer
	}
	if o.Contrast == 0 {
		o.Contrast = DefaultOpts.Contrast
	}
	// Maximum clock speed is 1/2.5µs = 400KHz.
	return newDev(&i2c.Dev{Bus: i, Addr: o.Addr}, &o)
}

// Dev is an open handle to the display controller.
type Dev struct {
	bus bus
	cs  commandSet
	pnl panel

	// Logical bounds, after rotation.
	rect image.Rectangle
	rot  frame.Rotation

	// Mutable
	// See page 25 for the GDDRAM pages structure.
	// There is one page per horizontal band of 8 pixels high (1 byte), W bytes
	// wide. 2*96 = 192 bytes total for 96x16 display.
	buffer []byte
	// next is lazy initialized on first Draw(). Flush() and Write() skip this
	// buffer.
	next *frame.Buffer
	// scratch holds the dirty window when flushing differentially.
	scratch      []byte
	differential bool
	// invalid is set when the controller RAM content is unknown and the next
	// flush must be complete.
	invalid bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s.Dev{%s, %s, %s}", d.cs.name, d.bus.c, image.Pt(d.pnl.w, d.pnl.h), d.rot)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// NewFramebuffer returns a cleared framebuffer matching the display geometry
// and rotation.
func (d *Dev) NewFramebuffer() *frame.Buffer {
	return frame.New(d.pnl.w, d.pnl.h, d.rot)
}

// Flush transmits the framebuffer to the controller.
//
// On a SSD1306 it addresses the visible window with one command transaction
// then streams the pixels as data transactions. The SH1106 lacks horizontal
// addressing so each page is addressed and sent separately.
func (d *Dev) Flush(fb *frame.Buffer) error {
	n := fb.Native()
	if n.Rect.Dx() != d.pnl.w || n.Rect.Dy() != d.pnl.h || fb.Rotation() != d.rot {
		return fmt.Errorf("%s: framebuffer %s does not match display %s", d.cs.name, fb, d)
	}
	return d.drawInternal(fb.Bytes())
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if fb, ok := src.(*frame.Buffer); ok && r == d.rect && fb.Bounds() == d.rect && fb.Rotation() == d.rot && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, native encoding: fast path!
		return d.drawInternal(fb.Bytes())
	}
	// Double buffering.
	if d.next == nil {
		d.next = d.NewFramebuffer()
	}
	draw.Src.Draw(d.next, r, src, sp)
	return d.drawInternal(d.next.Bytes())
}

// Write writes a buffer of pixels to the display.
//
// The format is unsual as each byte represent 8 vertical pixels at a time. The
// format is horizontal bands of 8 pixels high, in panel coordinates.
//
// This function accepts the content of frame.Buffer.Bytes().
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer) {
		return 0, fmt.Errorf("%s: invalid pixel stream length; expected %d bytes, got %d bytes", d.cs.name, len(d.buffer), len(pixels))
	}
	if err := d.drawInternal(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen contrast.
//
// Note: values other than 0xff do not seem useful...
func (d *Dev) SetContrast(level byte) error {
	return d.bus.sendCommands(Command{Op: _SETCONTRAST, Args: []byte{level}})
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	d.bus.halted = false
	err := d.bus.sendCommands(Command{Op: _DISPLAYOFF})
	if err == nil {
		d.bus.halted = true
		// The next flush must reach the bus to turn the display back on.
		d.invalid = true
	}
	return err
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	c := Command{Op: _NORMALDISPLAY}
	if blackOnWhite {
		c.Op = _INVERTDISPLAY
	}
	return d.bus.sendCommands(c)
}

// newDev validates the geometry then sends the initialization sequence.
func newDev(c *i2c.Dev, opts *Opts) (*Dev, error) {
	cs, ok := commandSets[opts.Controller]
	if !ok {
		return nil, fmt.Errorf("ssd1306: unknown controller %s", opts.Controller)
	}
	p, ok := findPanel(opts.W, opts.H)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported size %dx%d", cs.name, opts.W, opts.H)
	}
	if opts.Rotation > frame.Rotate270 {
		return nil, fmt.Errorf("%s: invalid rotation %s", cs.name, opts.Rotation)
	}
	d := &Dev{
		bus:          bus{c: c, maxTransfer: opts.MaxTransfer},
		cs:           cs,
		pnl:          p,
		rect:         image.Rect(0, 0, p.w, p.h),
		rot:          opts.Rotation,
		buffer:       make([]byte, p.h/8*p.w),
		differential: opts.Differential,
		// Signal that the screen must be redrawn on first flush.
		invalid: true,
	}
	if d.rot.Transposed() {
		d.rect = image.Rect(0, 0, p.h, p.w)
	}
	if err := d.bus.sendCommands(initCommands(cs, p, opts)...); err != nil {
		return nil, &InitError{Controller: opts.Controller, Err: err}
	}
	return d, nil
}

// calculateSubset returns the smallest window of pages and columns that
// differs between the last frame sent and next.
func (d *Dev) calculateSubset(next []byte) (int, int, int, int, bool) {
	w := d.pnl.w
	startPage := 0
	endPage := d.pnl.h / 8
	startCol := 0
	endCol := w
	if d.invalid || !d.differential {
		d.invalid = false
		return startPage, endPage, startCol, endCol, false
	}
	// Calculate the smallest square that need to be sent.
	pageSize := w

	// Top.
	for ; startPage < endPage; startPage++ {
		x := pageSize * startPage
		y := pageSize * (startPage + 1)
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	// Bottom.
	for ; endPage > startPage; endPage-- {
		x := pageSize * (endPage - 1)
		y := pageSize * endPage
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	if startPage == endPage {
		// Early exit, the image is exactly the same.
		return 0, 0, 0, 0, true
	}

	// Left.
	for ; startCol < endCol; startCol++ {
		for i := startPage; i < endPage; i++ {
			x := i*pageSize + startCol
			if d.buffer[x] != next[x] {
				goto breakLeft
			}
		}
	}
breakLeft:

	// Right.
	for ; endCol > startCol; endCol-- {
		for i := startPage; i < endPage; i++ {
			x := i*pageSize + endCol - 1
			if d.buffer[x] != next[x] {
				goto breakRight
			}
		}
	}
breakRight:
	return startPage, endPage, startCol, endCol, false
}

// drawInternal sends image data to the controller.
func (d *Dev) drawInternal(next []byte) error {
	startPage, endPage, startCol, endCol, skip := d.calculateSubset(next)
	if skip {
		return nil
	}
	copy(d.buffer, next)
	// If anything below fails, the RAM content is unknown.
	d.invalid = true
	if d.cs.windowed {
		if err := d.sendWindow(startPage, endPage, startCol, endCol); err != nil {
			return err
		}
	} else if err := d.sendPages(startPage, endPage, startCol, endCol); err != nil {
		return err
	}
	d.invalid = false
	return nil
}

// sendWindow addresses the window in horizontal addressing mode and streams
// it in one go; the controller wraps to the next page at endCol.
func (d *Dev) sendWindow(startPage, endPage, startCol, endCol int) error {
	off := d.pnl.colOffset + d.cs.ramOffset
	err := d.bus.sendCommands(
		Command{Op: _COLUMNADDR, Args: []byte{byte(off + startCol), byte(off + endCol - 1)}},
		Command{Op: _PAGEADDR, Args: []byte{byte(startPage), byte(endPage - 1)}},
	)
	if err != nil {
		return err
	}
	pageSize := d.pnl.w
	if startCol == 0 && endCol == pageSize {
		return d.bus.sendData(d.buffer[startPage*pageSize : endPage*pageSize])
	}
	d.scratch = d.scratch[:0]
	for page := startPage; page < endPage; page++ {
		pageStart := page * pageSize
		d.scratch = append(d.scratch, d.buffer[pageStart+startCol:pageStart+endCol]...)
	}
	return d.bus.sendData(d.scratch)
}

// sendPages uses page addressing mode.
func (d *Dev) sendPages(startPage, endPage, startCol, endCol int) error {
	col := byte(d.pnl.colOffset + d.cs.ramOffset + startCol)
	pageSize := d.pnl.w
	for page := startPage; page < endPage; page++ {
		err := d.bus.sendCommands(
			Command{Op: _PAGESTARTADDRESS | byte(page)},
			Command{Op: _SETLOWCOLUMN | (col & 0x0F)},
			Command{Op: _SETHIGHCOLUMN | (col >> 4)},
		)
		if err != nil {
			return err
		}
		pageStart := page * pageSize
		if err := d.bus.sendData(d.buffer[pageStart+startCol : pageStart+endCol]); err != nil {
			return err
		}
	}
	return nil
}

var _ display.Drawer = &Dev{}
