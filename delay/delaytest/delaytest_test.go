// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package delaytest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRecorder(t *testing.T) {
	calls := 0
	r := Recorder{OnSleep: func(time.Duration) { calls++ }}
	r.Sleep(100 * time.Millisecond)
	r.Sleep(3 * time.Microsecond)
	if diff := cmp.Diff([]time.Duration{100 * time.Millisecond, 3 * time.Microsecond}, r.Ops); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if calls != 2 {
		t.Fatalf("OnSleep called %d times", calls)
	}
	if r.Total() != 100*time.Millisecond+3*time.Microsecond {
		t.Fatal(r.Total())
	}
}
