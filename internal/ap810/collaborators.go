// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"github.com/platinasystems/ap810/internal/clocks"
	"github.com/platinasystems/log"
)

// LLC enables the last level cache of an AP.
type LLC interface {
	Enable(ap int, exclusive bool)
}

// SecureMasters opens an AP to incoming access from every master.
type SecureMasters interface {
	AccessEnable(ap int, enable bool) error
}

// AddrDecoder programs the IO, GWIN and CCU windows of an AP.
type AddrDecoder interface {
	IOWin(ap int)
	GWin(ap int)
	CCU(ap int)
}

// NoSecureMasters is the placeholder until secure master access is
// defined for the AP810.
type NoSecureMasters struct{}

func (NoSecureMasters) AccessEnable(ap int, enable bool) error {
	log.Printf("info", "AP%d: secure masters access: place holder", ap)
	return nil
}

// Tracer logs each collaborator call in place of the drivers that aren't
// part of this tree.
type Tracer struct{}

func (Tracer) Enable(ap int, exclusive bool) {
	log.Printf("info", "AP%d: llc enable, exclusive %t", ap, exclusive)
}

func (Tracer) IOWin(ap int) { log.Printf("info", "AP%d: io windows", ap) }
func (Tracer) GWin(ap int)  { log.Printf("info", "AP%d: gwin windows", ap) }
func (Tracer) CCU(ap int)   { log.Printf("info", "AP%d: ccu windows", ap) }

func (Tracer) Init(ap int, freq clocks.CPUFreq) error {
	log.Printf("info", "AP%d: aro %v MHz", ap, uint32(freq))
	return nil
}

func (Tracer) FreqUpdate(freq clocks.DDRFreq) {
	log.Printf("info", "dram %v MHz", uint32(freq))
}

var (
	_ LLC         = Tracer{}
	_ AddrDecoder = Tracer{}
	_ clocks.ARO  = Tracer{}
	_ clocks.DRAM = Tracer{}
)
