// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v2"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/scroller/board"
	"github.com/GermanBionicSystems/scroller/font6x10"
	"github.com/GermanBionicSystems/scroller/marquee"
	"github.com/GermanBionicSystems/scroller/screen2d"
	"github.com/GermanBionicSystems/scroller/ssd1306"
	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
	"github.com/GermanBionicSystems/scroller/text"
)

// Config is the content of the YAML configuration file.
type Config struct {
	// Output is "ssd1306" or "terminal".
	Output  string        `yaml:"output"`
	Verbose bool          `yaml:"verbose"`
	Board   BoardConfig   `yaml:"board"`
	Display DisplayConfig `yaml:"display"`
	Marquee MarqueeConfig `yaml:"marquee"`
}

// BoardConfig is the wiring.
type BoardConfig struct {
	Bus          string        `yaml:"bus"`
	SpeedKHz     int64         `yaml:"speedKHz"`
	Reset        string        `yaml:"reset"`
	ButtonA      string        `yaml:"buttonA"`
	ButtonB      string        `yaml:"buttonB"`
	PowerUpDelay time.Duration `yaml:"powerUpDelay"`
	ResetDelay   time.Duration `yaml:"resetDelay"`
}

// DisplayConfig is the panel.
type DisplayConfig struct {
	// Controller is "ssd1306" or "sh1106".
	Controller string `yaml:"controller"`
	Addr       uint16 `yaml:"addr"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	// Rotation is in degrees.
	Rotation     int   `yaml:"rotation"`
	Contrast     uint8 `yaml:"contrast"`
	MaxTransfer  int   `yaml:"maxTransfer"`
	Differential bool  `yaml:"differential"`
}

// MarqueeConfig is the animation.
type MarqueeConfig struct {
	Message string        `yaml:"message"`
	Start   int           `yaml:"start"`
	Low     int           `yaml:"low"`
	High    int           `yaml:"high"`
	Step    int           `yaml:"step"`
	Delay   time.Duration `yaml:"delay"`
	Y       int           `yaml:"y"`
	// Font is "6x10" or "7x13".
	Font string `yaml:"font"`
	// Baseline is "top", "middle", "bottom" or "alphabetic".
	Baseline string `yaml:"baseline"`
	// Align is "left", "center" or "right".
	Align string `yaml:"align"`
}

func defaultConfig() Config {
	return Config{
		Output: "ssd1306",
		Board: BoardConfig{
			SpeedKHz:     int64(board.DefaultOpts.Speed / physic.KiloHertz),
			PowerUpDelay: board.DefaultOpts.PowerUpDelay,
			ResetDelay:   board.DefaultOpts.ResetDelay,
		},
		Display: DisplayConfig{
			Controller:  "ssd1306",
			Addr:        ssd1306.DefaultOpts.Addr,
			Width:       ssd1306.DefaultOpts.W,
			Height:      ssd1306.DefaultOpts.H,
			Rotation:    180,
			Contrast:    ssd1306.DefaultOpts.Contrast,
			MaxTransfer: ssd1306.DefaultOpts.MaxTransfer,
		},
		Marquee: MarqueeConfig{
			Message:  marquee.DefaultOpts.Message,
			Start:    marquee.DefaultOpts.Start,
			Low:      marquee.DefaultOpts.Low,
			High:     marquee.DefaultOpts.High,
			Step:     marquee.DefaultOpts.Step,
			Delay:    marquee.DefaultOpts.Delay,
			Font:     "6x10",
			Baseline: "top",
			Align:    "left",
		},
	}
}

// loadConfig overlays the file at path over the defaults.
//
// A missing file is not an error when optional is true.
func loadConfig(path string, optional bool) (Config, error) {
	c := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			slog.Debug("no config file", "path", path)
			return c, nil
		}
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Output {
	case "ssd1306", "terminal":
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	if _, err := c.controller(); err != nil {
		return err
	}
	if _, err := c.rotation(); err != nil {
		return err
	}
	if _, err := c.font(); err != nil {
		return err
	}
	if _, err := c.baseline(); err != nil {
		return err
	}
	if _, err := c.alignment(); err != nil {
		return err
	}
	if c.Display.Addr == 0 || c.Display.Addr > 0x7f {
		return fmt.Errorf("invalid I²C address %#x", c.Display.Addr)
	}
	if c.Board.SpeedKHz < 0 {
		return fmt.Errorf("invalid bus speed %dkHz", c.Board.SpeedKHz)
	}
	return nil
}

// parseAddr converts the -addr flag, which must be a 7 bit I²C address.
func parseAddr(v uint) (uint16, error) {
	if v > 0x7f {
		return 0, fmt.Errorf("invalid I²C address %#x", v)
	}
	return uint16(v), nil
}

func (c *Config) controller() (ssd1306.Controller, error) {
	switch c.Display.Controller {
	case "ssd1306":
		return ssd1306.SSD1306, nil
	case "sh1106":
		return ssd1306.SH1106, nil
	}
	return 0, fmt.Errorf("unknown controller %q", c.Display.Controller)
}

func (c *Config) rotation() (frame.Rotation, error) {
	switch c.Display.Rotation {
	case 0:
		return frame.Rotate0, nil
	case 90:
		return frame.Rotate90, nil
	case 180:
		return frame.Rotate180, nil
	case 270:
		return frame.Rotate270, nil
	}
	return 0, fmt.Errorf("invalid rotation %d", c.Display.Rotation)
}

func (c *Config) font() (text.Font, error) {
	switch c.Marquee.Font {
	case "6x10":
		return font6x10.Font, nil
	case "7x13":
		return text.FromFace(basicfont.Face7x13), nil
	}
	return nil, fmt.Errorf("unknown font %q", c.Marquee.Font)
}

func (c *Config) baseline() (text.Baseline, error) {
	switch c.Marquee.Baseline {
	case "top":
		return text.Top, nil
	case "middle":
		return text.Middle, nil
	case "bottom":
		return text.Bottom, nil
	case "alphabetic":
		return text.Alphabetic, nil
	}
	return 0, fmt.Errorf("unknown baseline %q", c.Marquee.Baseline)
}

func (c *Config) alignment() (text.Alignment, error) {
	switch c.Marquee.Align {
	case "left":
		return text.Left, nil
	case "center":
		return text.Center, nil
	case "right":
		return text.Right, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", c.Marquee.Align)
}

// The accessors below are only valid after validate() succeeded.

func (c *Config) boardOpts() *board.Opts {
	return &board.Opts{
		Bus:          c.Board.Bus,
		Speed:        physic.Frequency(c.Board.SpeedKHz) * physic.KiloHertz,
		Reset:        c.Board.Reset,
		ButtonA:      c.Board.ButtonA,
		ButtonB:      c.Board.ButtonB,
		PowerUpDelay: c.Board.PowerUpDelay,
		ResetDelay:   c.Board.ResetDelay,
	}
}

func (c *Config) displayOpts() *ssd1306.Opts {
	ctrl, _ := c.controller()
	rot, _ := c.rotation()
	return &ssd1306.Opts{
		W:            c.Display.Width,
		H:            c.Display.Height,
		Rotation:     rot,
		Controller:   ctrl,
		Addr:         c.Display.Addr,
		MaxTransfer:  c.Display.MaxTransfer,
		Contrast:     c.Display.Contrast,
		Differential: c.Display.Differential,
	}
}

func (c *Config) screenOpts() *screen2d.Opts {
	rot, _ := c.rotation()
	o := screen2d.DefaultOpts
	o.W = c.Display.Width
	o.H = c.Display.Height
	o.Rotation = rot
	return &o
}

func (c *Config) marqueeOpts(logger *slog.Logger) *marquee.Opts {
	f, _ := c.font()
	b, _ := c.baseline()
	a, _ := c.alignment()
	return &marquee.Opts{
		Message:   c.Marquee.Message,
		Start:     c.Marquee.Start,
		Low:       c.Marquee.Low,
		High:      c.Marquee.High,
		Step:      c.Marquee.Step,
		Delay:     c.Marquee.Delay,
		Font:      f,
		Baseline:  b,
		Alignment: a,
		Y:         c.Marquee.Y,
		Logger:    logger,
	}
}
