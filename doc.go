// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package scroller scrolls a line of text on a 96x16 SSD1306 OLED panel.
//
// The display driver lives in ssd1306, its framebuffer in ssd1306/frame,
// text rendering in text and font6x10, and the animation in marquee. board
// brings up the bus and reset line; screen2d emulates the panel in a
// terminal. cmd/scroller ties them together.
package scroller
