// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package board

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/scroller/delay/delaytest"
)

// bus records the speed it was set to.
type bus struct {
	i2ctest.Playback
	speed  physic.Frequency
	closed bool
	err    error
}

func (b *bus) SetSpeed(f physic.Frequency) error {
	b.speed = f
	return b.err
}

func (b *bus) Close() error {
	b.closed = true
	return nil
}

// resetPin logs level changes.
type resetPin struct {
	*gpiotest.Pin
	log *[]string
}

func (r resetPin) Out(l gpio.Level) error {
	*r.log = append(*r.log, "out "+l.String())
	return r.Pin.Out(l)
}

func newClock(log *[]string) *delaytest.Recorder {
	return &delaytest.Recorder{OnSleep: func(d time.Duration) { *log = append(*log, "sleep "+d.String()) }}
}

func TestBringUp(t *testing.T) {
	var log []string
	b := &bus{}
	rst := &gpiotest.Pin{N: "PA9", L: gpio.Low}
	btnA := &gpiotest.Pin{N: "PB1"}
	btnB := &gpiotest.Pin{N: "PB0"}
	p := &Peripherals{Bus: b, Reset: resetPin{rst, &log}, ButtonA: btnA, ButtonB: btnB}
	opts := DefaultOpts
	opts.Clock = newClock(&log)
	if err := bringUp(p, &opts); err != nil {
		t.Fatal(err)
	}
	if b.speed != 400*physic.KiloHertz {
		t.Fatalf("speed = %s", b.speed)
	}
	want := []string{"out Low", "sleep 100ms", "out High", "sleep 3µs"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if rst.L != gpio.High {
		t.Fatal("display left in reset")
	}
	if btnA.P != gpio.Float || btnB.P != gpio.PullDown {
		t.Fatalf("buttons: %s, %s", btnA.P, btnB.P)
	}
	if p.Clock != opts.Clock {
		t.Fatal("clock not kept")
	}
	if err := p.Close(); err != nil || !b.closed {
		t.Fatal("bus not closed")
	}
}

func TestBringUp_NoPins(t *testing.T) {
	var log []string
	p := &Peripherals{Bus: &bus{}}
	opts := DefaultOpts
	opts.Clock = newClock(&log)
	if err := bringUp(p, &opts); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"sleep 100ms"}, log); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestBringUp_SpeedError(t *testing.T) {
	errSpeed := errors.New("unsupported")
	var log []string
	p := &Peripherals{Bus: &bus{err: errSpeed}, Reset: resetPin{&gpiotest.Pin{N: "PA9"}, &log}}
	opts := DefaultOpts
	opts.Clock = newClock(&log)
	if err := bringUp(p, &opts); !errors.Is(err, errSpeed) {
		t.Fatalf("bringUp() = %v", err)
	}
	if len(log) != 0 {
		t.Fatalf("display touched after bus failure: %v", log)
	}
}

func TestResetDisplay(t *testing.T) {
	clock := &delaytest.Recorder{}
	if err := ResetDisplay(nil, clock, time.Second, time.Second); err == nil {
		t.Fatal("expected error")
	}
	rst := &gpiotest.Pin{N: "RST", L: gpio.High}
	if err := ResetDisplay(rst, clock, time.Millisecond, time.Microsecond); err != nil {
		t.Fatal(err)
	}
	if rst.L != gpio.High {
		t.Fatal("reset not released")
	}
	if diff := cmp.Diff([]time.Duration{time.Millisecond, time.Microsecond}, clock.Ops); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPinByName(t *testing.T) {
	if p, err := pinByName(""); p != nil || err != nil {
		t.Fatal(p, err)
	}
	if _, err := pinByName("NO_SUCH_PIN"); err == nil {
		t.Fatal("expected error")
	}
}
