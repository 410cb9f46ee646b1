// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"periph.io/x/conn/v3"
)

// Kind is the I²C control byte that prefixes every transaction. The controller
// multiplexes command and data streams over the same address.
type Kind byte

// Transaction kinds.
const (
	KindCommand Kind = 0x00 // I²C transaction has stream of command bytes
	KindData    Kind = 0x40 // I²C transaction has stream of data bytes
)

func (k Kind) String() string {
	if k == KindData {
		return "data"
	}
	return "command"
}

// Command is one controller opcode and its argument bytes.
type Command struct {
	Op   byte
	Args []byte
}

func (c Command) len() int {
	return 1 + len(c.Args)
}

// Transaction is one framed write to the controller.
type Transaction struct {
	Kind    Kind
	Payload []byte
}

// Bytes returns the bytes put on the wire, control byte first.
func (t Transaction) Bytes() []byte {
	return append([]byte{byte(t.Kind)}, t.Payload...)
}

// DefaultMaxTransfer is the payload size used when Opts.MaxTransfer is zero.
// Many I²C adapters cannot buffer more than 32 bytes per write.
const DefaultMaxTransfer = 32

// bus frames transactions to the controller.
type bus struct {
	c conn.Conn
	// maxTransfer is the maximum payload size of a transaction, not counting
	// the control byte.
	maxTransfer int
	halted      bool
}

// tx writes one transaction.
func (b *bus) tx(t Transaction) error {
	if err := b.c.Tx(t.Bytes(), nil); err != nil {
		return &TxError{Kind: t.Kind, Err: err}
	}
	return nil
}

// sendCommands packs whole commands into as few command transactions as
// possible. A command is never split across transactions; a single command
// larger than maxTransfer is sent on its own.
func (b *bus) sendCommands(cmds ...Command) error {
	if b.halted {
		// Transparently enable the display.
		cmds = append([]Command{{Op: _DISPLAYON}}, cmds...)
		b.halted = false
	}
	var payload []byte
	for _, c := range cmds {
		if len(payload) != 0 && len(payload)+c.len() > b.maxTransfer {
			if err := b.tx(Transaction{Kind: KindCommand, Payload: payload}); err != nil {
				return err
			}
			payload = nil
		}
		payload = append(payload, c.Op)
		payload = append(payload, c.Args...)
	}
	if len(payload) == 0 {
		return nil
	}
	return b.tx(Transaction{Kind: KindCommand, Payload: payload})
}

// sendData streams pixel bytes in chunks of at most maxTransfer bytes, each
// prefixed with the data control byte.
func (b *bus) sendData(p []byte) error {
	if b.halted {
		if err := b.sendCommands(); err != nil {
			return err
		}
	}
	for len(p) != 0 {
		n := min(len(p), b.maxTransfer)
		if err := b.tx(Transaction{Kind: KindData, Payload: p[:n]}); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
