// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"errors"
	"fmt"
)

// ErrTransmission matches any *TxError with errors.Is.
var ErrTransmission = errors.New("ssd1306: transmission failed")

// TxError is returned when a bus transaction is not acknowledged or times
// out. The driver never retries.
type TxError struct {
	Kind Kind
	Err  error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("ssd1306: %s transaction failed: %v", e.Kind, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is.
func (e *TxError) Is(target error) bool {
	return target == ErrTransmission
}

// InitError is returned by NewI2C when the controller did not accept the
// initialization sequence. The device must not be used.
type InitError struct {
	Controller Controller
	Err        error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("ssd1306: %s initialization failed: %v", e.Controller, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
