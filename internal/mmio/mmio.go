// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mmio provides 32 bit memory mapped register access.
//
// All AP810 configuration is done with 32 bit loads and stores at
// (per-die base address) + (fixed offset). A Bus performs the access; a Reg
// is the absolute address of one register on that bus.
package mmio

import "fmt"

type Bus interface {
	Read32(addr uintptr) uint32
	Write32(addr uintptr, data uint32)
}

type Reg uintptr

func (r Reg) String() string { return fmt.Sprintf("0x%x", uintptr(r)) }

func (r Reg) Get(b Bus) uint32    { return b.Read32(uintptr(r)) }
func (r Reg) Set(b Bus, v uint32) { b.Write32(uintptr(r), v) }

func (r Reg) Or(b Bus, v uint32) (x uint32) {
	x = r.Get(b) | v
	r.Set(b, x)
	return
}

func (r Reg) AndNot(b Bus, v uint32) (x uint32) {
	x = r.Get(b) &^ v
	r.Set(b, x)
	return
}

// Modify clears mask then sets v, leaving all other bits as read.
func (r Reg) Modify(b Bus, mask, v uint32) (x uint32) {
	x = (r.Get(b) &^ mask) | (v & mask)
	r.Set(b, x)
	return
}
