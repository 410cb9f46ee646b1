// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package board brings up the peripherals the marquee needs: the I²C bus the
// display sits on, the display reset line and the two button lines.
//
// Take is called once at startup. The returned Peripherals owns every handle
// and is handed to the display driver and the animation loop.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/scroller/delay"
)

// Opts describes how the board is wired.
type Opts struct {
	// Bus is the I²C bus name as known by i2creg. Empty selects the first bus.
	Bus string
	// Speed is the bus clock.
	Speed physic.Frequency
	// Reset is the display reset line, active low. Empty when the panel has
	// no reset line.
	Reset string
	// ButtonA and ButtonB are the button lines. Empty when not wired.
	//
	// ButtonA is pulled low externally and configured floating; ButtonB uses
	// the internal pull-down. They are configured but never read.
	ButtonA string
	ButtonB string
	// PowerUpDelay is how long reset is held low after power up.
	PowerUpDelay time.Duration
	// ResetDelay is the wait after reset is released, before the first
	// command.
	ResetDelay time.Duration
	// Clock defaults to delay.System when nil.
	Clock delay.Sleeper
	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultOpts is the reference wiring timing: 400kHz bus, 100ms power up
// delay, 3µs after reset.
var DefaultOpts = Opts{
	Speed:        400 * physic.KiloHertz,
	PowerUpDelay: 100 * time.Millisecond,
	ResetDelay:   3 * time.Microsecond,
}

// Peripherals are the handles owned after bring-up.
type Peripherals struct {
	// Bus is configured at the requested speed.
	Bus i2c.BusCloser
	// Reset is nil when not wired.
	Reset gpio.PinOut
	// ButtonA and ButtonB are nil when not wired.
	ButtonA gpio.PinIn
	ButtonB gpio.PinIn
	// Clock is the delay provider used for bring-up.
	Clock delay.Sleeper
}

// Close releases the bus.
func (p *Peripherals) Close() error {
	return p.Bus.Close()
}

// Take initializes the host drivers, opens the bus, resolves the pins and
// resets the display.
//
// On failure, everything acquired so far is released.
func Take(opts *Opts) (*Peripherals, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("board: host init: %w", err)
	}
	rst, err := pinByName(opts.Reset)
	if err != nil {
		return nil, err
	}
	a, err := pinByName(opts.ButtonA)
	if err != nil {
		return nil, err
	}
	b, err := pinByName(opts.ButtonB)
	if err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(opts.Bus)
	if err != nil {
		return nil, fmt.Errorf("board: opening I²C bus %q: %w", opts.Bus, err)
	}
	p := &Peripherals{Bus: bus, Reset: rst, ButtonA: a, ButtonB: b}
	if err := bringUp(p, opts); err != nil {
		_ = bus.Close()
		return nil, err
	}
	return p, nil
}

func pinByName(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("board: unknown pin %q", name)
	}
	return p, nil
}

// bringUp configures handles already acquired in p.
func bringUp(p *Peripherals, opts *Opts) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	p.Clock = opts.Clock
	if p.Clock == nil {
		p.Clock = delay.System
	}
	if opts.Speed != 0 {
		if err := p.Bus.SetSpeed(opts.Speed); err != nil {
			return fmt.Errorf("board: setting %s to %s: %w", p.Bus, opts.Speed, err)
		}
	}
	if p.ButtonA != nil {
		if err := p.ButtonA.In(gpio.Float, gpio.NoEdge); err != nil {
			return fmt.Errorf("board: button A: %w", err)
		}
	}
	if p.ButtonB != nil {
		if err := p.ButtonB.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return fmt.Errorf("board: button B: %w", err)
		}
	}
	if p.Reset == nil {
		p.Clock.Sleep(opts.PowerUpDelay)
	} else if err := ResetDisplay(p.Reset, p.Clock, opts.PowerUpDelay, opts.ResetDelay); err != nil {
		return err
	}
	log.Debug("board ready", "bus", p.Bus.String(), "speed", opts.Speed.String(), "reset", opts.Reset)
	return nil
}

// ResetDisplay drives rst low for powerUp, then high, then waits settle.
func ResetDisplay(rst gpio.PinOut, clock delay.Sleeper, powerUp, settle time.Duration) error {
	if rst == nil {
		return errors.New("board: no reset line")
	}
	if err := rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("board: reset low: %w", err)
	}
	clock.Sleep(powerUp)
	if err := rst.Out(gpio.High); err != nil {
		return fmt.Errorf("board: reset high: %w", err)
	}
	clock.Sleep(settle)
	return nil
}
