// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"fmt"

	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANDEC          = 0xC8
	_COMSCANINC          = 0xC0
	_DC_DC_SETTING       = 0xAD
	_DEACTIVATE_SCROLL   = 0x2E
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_PAGESTARTADDRESS    = 0xB0
	_SEGREMAP            = 0xA0
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETHIGHCOLUMN       = 0x10
	_SETLOWCOLUMN        = 0x00
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

// Controller is the display controller model.
type Controller uint8

// Supported controllers.
const (
	SSD1306 Controller = iota
	// SH1106 has 132 columns of RAM and no horizontal addressing mode.
	SH1106
)

func (c Controller) String() string {
	if s, ok := commandSets[c]; ok {
		return s.name
	}
	return fmt.Sprintf("Controller(%d)", uint8(c))
}

// commandSet is the part of the opcode table that differs between
// controllers.
type commandSet struct {
	name string
	// windowed is true when the controller supports COLUMNADDR/PAGEADDR in
	// horizontal addressing mode. Otherwise each page is addressed separately.
	windowed bool
	// ramOffset is added to every column address.
	ramOffset int
	// power enables the internal DC/DC or charge pump.
	power     Command
	precharge byte
	vcomh     byte
	// scroll is true when the controller has the scroll engine, which must be
	// stopped before writing to GDDRAM.
	scroll bool
}

var commandSets = map[Controller]commandSet{
	SSD1306: {
		name:      "SSD1306",
		windowed:  true,
		power:     Command{Op: _CHARGEPUMP, Args: []byte{0x14}},
		precharge: 0xF1,
		vcomh:     0x40,
		scroll:    true,
	},
	SH1106: {
		name:      "SH1106",
		ramOffset: 2,
		power:     Command{Op: _DC_DC_SETTING, Args: []byte{0x8B}},
		precharge: 0x22,
		vcomh:     0x35,
	},
}

// panel is the per-geometry part of the initialization sequence.
type panel struct {
	w, h int
	// clockDiv is the display clock divide ratio / oscillator frequency.
	clockDiv byte
	// comPins is the COM pins hardware configuration; see page 40.
	comPins byte
	// colOffset is the first RAM column wired to the glass.
	colOffset int
}

// panels lists the supported geometries.
var panels = []panel{
	{w: 96, h: 16, clockDiv: 0x60, comPins: 0x02},
	{w: 128, h: 32, clockDiv: 0x80, comPins: 0x02},
	{w: 128, h: 64, clockDiv: 0x80, comPins: 0x12},
	{w: 64, h: 48, clockDiv: 0x80, comPins: 0x12, colOffset: 32},
	{w: 64, h: 32, clockDiv: 0x80, comPins: 0x12, colOffset: 32},
}

func findPanel(w, h int) (panel, bool) {
	for _, p := range panels {
		if p.w == w && p.h == h {
			return p, true
		}
	}
	return panel{}, false
}

// remap returns the segment remap and COM scan direction commands for the
// rotation. Rotate90 and Rotate270 are transposed by frame.Buffer.
func remap(r frame.Rotation) (seg, com byte) {
	switch r {
	case frame.Rotate90:
		return _SEGREMAP, _COMSCANDEC
	case frame.Rotate180:
		return _SEGREMAP, _COMSCANINC
	case frame.Rotate270:
		return _SETSEGMENTREMAP, _COMSCANINC
	default:
		return _SETSEGMENTREMAP, _COMSCANDEC
	}
}

// initCommands returns the full power on sequence.
//
// Page 64 of the SSD1306 datasheet has the recommended flow, page 28 lists all
// the commands.
func initCommands(cs commandSet, p panel, opts *Opts) []Command {
	seg, com := remap(opts.Rotation)
	cmds := []Command{
		{Op: _DISPLAYOFF},
		{Op: _SETDISPLAYCLOCKDIV, Args: []byte{p.clockDiv}},
		{Op: _SETMULTIPLEX, Args: []byte{byte(p.h - 1)}},
		{Op: _SETDISPLAYOFFSET, Args: []byte{0x00}},
		{Op: _SETSTARTLINE},
		cs.power,
	}
	if cs.windowed {
		// Horizontal addressing mode.
		cmds = append(cmds, Command{Op: _MEMORYMODE, Args: []byte{0x00}})
	}
	cmds = append(cmds,
		Command{Op: seg},
		Command{Op: com},
		Command{Op: _SETCOMPINS, Args: []byte{p.comPins}},
		Command{Op: _SETCONTRAST, Args: []byte{opts.Contrast}},
		Command{Op: _SETPRECHARGE, Args: []byte{cs.precharge}},
		Command{Op: _SETVCOMDETECT, Args: []byte{cs.vcomh}},
		Command{Op: _DISPLAYALLON_RESUME},
		Command{Op: _NORMALDISPLAY},
	)
	if cs.scroll {
		cmds = append(cmds, Command{Op: _DEACTIVATE_SCROLL})
	}
	return append(cmds, Command{Op: _DISPLAYON})
}
