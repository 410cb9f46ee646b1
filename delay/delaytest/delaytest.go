// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package delaytest is meant to be used to test code sleeping through
// delay.Sleeper without waiting.
//
// Unlike clockwork.FakeClock, Recorder never blocks: the code under test can
// run on the test goroutine and the requested durations are kept in order.
package delaytest

import (
	"sync"
	"time"

	"github.com/GermanBionicSystems/scroller/delay"
)

// Recorder records every requested duration and returns immediately.
type Recorder struct {
	sync.Mutex
	Ops []time.Duration
	// OnSleep, if set, is called after a duration is recorded.
	OnSleep func(d time.Duration)
}

// Sleep implements delay.Sleeper.
func (r *Recorder) Sleep(d time.Duration) {
	r.Lock()
	r.Ops = append(r.Ops, d)
	f := r.OnSleep
	r.Unlock()
	if f != nil {
		f(d)
	}
}

// Total returns the sum of all recorded durations.
func (r *Recorder) Total() time.Duration {
	r.Lock()
	defer r.Unlock()
	var t time.Duration
	for _, d := range r.Ops {
		t += d
	}
	return t
}

var _ delay.Sleeper = &Recorder{}
