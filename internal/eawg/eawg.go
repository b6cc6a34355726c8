// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package eawg defines the interface to the per AP External Access Wave
// Generator, a FIFO of register writes replayed by the hardware in order
// with a delay after each.
package eawg

import (
	"errors"

	"github.com/platinasystems/ap810/internal/mmio"
)

const MaxTransactions = 32

var ErrFifoFull = errors.New("eawg: fifo full")

// Transaction addresses may be relative to addrmap.LocalBase to select the
// registers of the AP that replays it.
type Transaction struct {
	Address uintptr
	Data    uint32
	Delay   uint32
}

type Sequencer interface {
	// Load appends transactions to the AP's FIFO.
	Load(ap int, t []Transaction) error
	// Start replays the AP's FIFO; the AP's CPUs wait for an event
	// once it has completed.
	Start(ap int)
	// Done reports whether the AP's sequence wrote its scratch flag.
	Done(ap int, scratch mmio.Reg) bool
	Disable(ap int)
}
