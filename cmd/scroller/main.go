// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// scroller scrolls a line of text on a small OLED panel, or in the terminal.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/dikkadev/prettyslog"

	"github.com/GermanBionicSystems/scroller/board"
	"github.com/GermanBionicSystems/scroller/delay"
	"github.com/GermanBionicSystems/scroller/marquee"
	"github.com/GermanBionicSystems/scroller/screen2d"
	"github.com/GermanBionicSystems/scroller/ssd1306"
	"github.com/GermanBionicSystems/scroller/ssd1306/frame"
)

const defaultConfigFile = "scroller.yaml"

// output is where frames go.
type output interface {
	marquee.Flusher
	NewFramebuffer() *frame.Buffer
	Halt() error
	String() string
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(prettyslog.NewPrettyslogHandler("scroller", prettyslog.WithLevel(level)))
}

func mainImpl() error {
	configFile := flag.String("config", defaultConfigFile, "YAML configuration file")
	out := flag.String("output", "", "ssd1306 or terminal")
	bus := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", 0, "I²C address of the display")
	rst := flag.String("reset", "", "display reset pin")
	msg := flag.String("message", "", "text to scroll")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := loadConfig(*configFile, !explicit)
	if err != nil {
		return err
	}
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *out
		case "bus":
			cfg.Board.Bus = *bus
		case "addr":
			cfg.Display.Addr, flagErr = parseAddr(*addr)
		case "reset":
			cfg.Board.Reset = *rst
		case "message":
			cfg.Marquee.Message = *msg
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	slog.SetDefault(logger)

	var dev output
	var clock delay.Sleeper = delay.System
	switch cfg.Output {
	case "terminal":
		s, err := screen2d.New(cfg.screenOpts())
		if err != nil {
			return err
		}
		dev = s
	default:
		bOpts := cfg.boardOpts()
		bOpts.Logger = logger
		p, err := board.Take(bOpts)
		if err != nil {
			return err
		}
		defer p.Close()
		d, err := ssd1306.NewI2C(p.Bus, cfg.displayOpts())
		if err != nil {
			return err
		}
		dev = d
		clock = p.Clock
	}
	defer dev.Halt()
	logger.Info("display ready", "device", dev.String())

	m, err := marquee.New(dev.NewFramebuffer(), dev, clock, cfg.marqueeOpts(logger))
	if err != nil {
		return err
	}
	return m.Run()
}

func main() {
	if err := mainImpl(); err != nil {
		slog.Error("scroller failed", "err", err)
		os.Exit(1)
	}
}
