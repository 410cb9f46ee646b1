// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 controls a monochrome OLED display via a SSD1306 or SH1106
// controller over I²C.
//
// Every I²C write starts with a control byte telling the controller whether the
// rest of the transaction is a command stream (0x00) or pixel data (0x40).
// Commands are never split across transactions; pixel data is split in chunks
// of Opts.MaxTransfer bytes. A failed transaction is reported as a *TxError
// and is never retried.
//
// Drawing happens in a frame.Buffer, which never touches the bus.
// Dev.Flush() then addresses the visible window and streams the framebuffer.
// The driver can optionally do differential updates: it only sends modified
// pixels for the smallest rectangle, to economize bus bandwidth.
//
// The RES / Reset pin must be cycled before NewI2C is called; see package
// board.
//
// # Datasheets
//
// SSD1306
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
//
// SH1106
//
// https://cdn.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
package ssd1306
