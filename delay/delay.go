// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package delay provides blocking waits that tests can replace.
//
// Any clockwork.Clock is a Sleeper; tests that need to control time from
// another goroutine can pass a clockwork.FakeClock.
package delay

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Sleeper blocks the calling goroutine.
type Sleeper interface {
	// Sleep blocks for at least d. Non-positive durations return immediately.
	Sleep(d time.Duration)
}

// System sleeps on the wall clock.
var System Sleeper = clockwork.NewRealClock()

var _ Sleeper = clockwork.Clock(nil)
