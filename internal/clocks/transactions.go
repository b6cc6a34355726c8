// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package clocks

import (
	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/eawg"
)

const (
	TransPerPLL     = 4
	PrimaryCPUTrans = 1
	// NTrans is the per AP sequence: the PLLs then the scratch flag.
	NTrans = int(NPLL)*TransPerPLL + 1
)

// PLL control, at the PLL address + 4
const (
	PllUseRF      = 0x200
	PllRingBypass = 0x1
	pllControl    = 0x4
)

// Transactions reprogram each PLL through its reference clock
// configuration (RF) mode with the ring bypassed, then set the local
// scratch pad flag.
func Transactions(p Profile) []eawg.Transaction {
	t := make([]eawg.Transaction, 0, NTrans)
	for pll := Ring; pll < NPLL; pll++ {
		addr := pll.Address()
		t = append(t,
			eawg.Transaction{Address: addr + pllControl, Data: PllUseRF, Delay: 1},
			eawg.Transaction{Address: addr + pllControl,
				Data: PllUseRF | PllRingBypass, Delay: 1},
			eawg.Transaction{Address: addr, Data: p.PLL[pll], Delay: 1},
			eawg.Transaction{Address: addr + pllControl, Data: PllUseRF, Delay: 0},
		)
	}
	return append(t, eawg.Transaction{Address: addrmap.ScratchPadLocal, Data: 1, Delay: 0})
}

// PrimaryCPU wakes CPU0 of AP0.
func PrimaryCPU(m *addrmap.Map) []eawg.Transaction {
	return []eawg.Transaction{
		{Address: uintptr(m.CPUWakeup(0)), Data: 1, Delay: 3},
	}
}
