// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package addrmap provides AP810 register addresses.
//
// Each AP die has its own register space, the base of which is supplied by
// a Bases implementation; every register below is a fixed offset from that
// base. Addresses relative to LocalBase select the register space of
// whichever AP issues the access and are only meaningful to that AP's EAWG.
package addrmap

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/mmio"
)

const MaxAP = 4

const (
	DefaultRegsBase = 0xe8000000
	DefaultRegsSize = 0x1000000
	LocalBase       = 0xec000000
)

// AP register blocks
const (
	ltcCR       = 0x344
	ccu         = 0x4000
	ccuLoclCntl = 0x6000
	smmu        = 0x100000
	gtcr        = 0x581000
	mriXbar     = 0x6a0000
	ihbx4Cntrl  = 0x6c0000
	bankedStop  = 0x6e0000
	arRFU       = 0x6f0000
	apMPP       = 0x6f4000
	apMiscSoc   = 0x6f4300
	scratchPad  = 0x6f43e0
	axiAttr     = 0x6f4580
	dfxSAR      = 0x6f8200
)

// Sampled at reset
const (
	SarCoherentEnOffset = 16
	SarCoherentEnMask   = 0x7
)

// PLL registers relative to LocalBase.
const (
	PllRing = LocalBase + dfxSAR + 0x2f0
	PllIO   = LocalBase + dfxSAR + 0x2f8
	PllDSS  = LocalBase + dfxSAR + 0x300
	PllPIDI = LocalBase + dfxSAR + 0x310

	ScratchPadLocal = LocalBase + scratchPad
)

// Bases returns the register base of each of Len APs.
type Bases interface {
	RegsBase(ap int) uintptr
	Len() int
}

// Static bases indexed by AP.
type Static []uintptr

func (s Static) RegsBase(ap int) uintptr {
	if ap < 0 || ap >= len(s) {
		panic(fmt.Errorf("addrmap: AP%d: no register base", ap))
	}
	return s[ap]
}

func (s Static) Len() int { return len(s) }

// Default is the reference board map, one 16MiB register space per AP.
func Default() Static {
	s := make(Static, MaxAP)
	for ap := range s {
		s[ap] = DefaultRegsBase + uintptr(ap)*DefaultRegsSize
	}
	return s
}

type Map struct {
	Bases
}

func New(b Bases) *Map { return &Map{b} }

func (m *Map) reg(ap int, offset uintptr) mmio.Reg {
	return mmio.Reg(m.RegsBase(ap) + offset)
}

// Local translates a LocalBase relative address to the given AP's space.
func (m *Map) Local(ap int, addr uintptr) uintptr {
	if addr >= LocalBase && addr < LocalBase+DefaultRegsSize {
		return m.RegsBase(ap) + addr - LocalBase
	}
	return addr
}

func (m *Map) DfxSar(ap, n int) mmio.Reg {
	return m.reg(ap, dfxSAR+uintptr(n)*4)
}

func (m *Map) BankedGIDACR(ap, stop int) mmio.Reg {
	return m.reg(ap, bankedStop+uintptr(stop)*0x100+0x34)
}

func (m *Map) LTCCR(ap int) mmio.Reg { return m.reg(ap, ltcCR) }

func (m *Map) XbarRouting0(ap, port int) mmio.Reg {
	return m.reg(ap, mriXbar+0x10+uintptr(port)*0x8)
}

func (m *Map) CCUGUID(ap int) mmio.Reg  { return m.reg(ap, ccu+0x808) }
func (m *Map) HTCCR(ap int) mmio.Reg    { return m.reg(ap, ccu+0x200) }
func (m *Map) HTCASET(ap int) mmio.Reg  { return m.reg(ap, ccu+0x264) }
func (m *Map) HTCGASET(ap int) mmio.Reg { return m.reg(ap, ccu+0x268) }

func (m *Map) HTCACR(ap, master int) mmio.Reg {
	return m.reg(ap, ccu+0x300+uintptr(master)*4)
}

func (m *Map) HTCGACR(ap, master int) mmio.Reg {
	return m.reg(ap, ccu+0x380+uintptr(master)*4)
}

func (m *Map) GSPMUCR(ap int) mmio.Reg   { return m.reg(ap, ccuLoclCntl+0x3f0) }
func (m *Map) CPUWakeup(ap int) mmio.Reg { return m.reg(ap, ccuLoclCntl+0x80) }
func (m *Map) SMMUSACR(ap int) mmio.Reg  { return m.reg(ap, smmu+0x10) }
func (m *Map) IIDR2(ap int) mmio.Reg     { return m.reg(ap, arRFU+0x240) }
func (m *Map) SysRstOut(ap int) mmio.Reg { return m.reg(ap, apMiscSoc+0x4) }
func (m *Map) EfuseFreq(ap int) mmio.Reg { return m.reg(ap, apMPP+0x410) }
func (m *Map) GTCR(ap int) mmio.Reg      { return m.reg(ap, gtcr) }
func (m *Map) GTCVLR(ap int) mmio.Reg    { return m.reg(ap, gtcr+0x8) }
func (m *Map) GTCVHR(ap int) mmio.Reg    { return m.reg(ap, gtcr+0xc) }

func (m *Map) IHBX4SR(ap, mci int) mmio.Reg {
	return m.reg(ap, ihbx4Cntrl+uintptr(mci)*0x1000+0xc)
}

func (m *Map) GEventMask(ap, port int) mmio.Reg {
	return m.reg(ap, arRFU+0x500+uintptr(port)*0x4)
}

func (m *Map) AXIAttr(ap, index int) mmio.Reg {
	return m.reg(ap, axiAttr+uintptr(index)*0x4)
}

// Offset is an arbitrary register of the AP's space.
func (m *Map) Offset(ap int, o uintptr) mmio.Reg { return m.reg(ap, o) }

func (m *Map) ScratchPad(ap, n int) mmio.Reg {
	return m.reg(ap, scratchPad+uintptr(n)*0x4)
}
