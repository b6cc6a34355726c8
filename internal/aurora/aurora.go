// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package aurora enumerates the AP810 dies on the Aurora2 fabric.
//
// Enumeration opens the banked (remote ring) register windows of AP0,
// programs the MRI crossbar of every AP while AP0 is in multi-chip
// training mode and finally gives each AP its fabric id. Until then no AP
// can reach the registers of another.
package aurora

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
	"github.com/platinasystems/log"
)

// AP810 ring stops
const (
	StopMC0 = iota
	StopIO0
	StopIO1
	StopMC1
	StopP0
	StopP1
	StopP2
	StopP3
	StopMC2
	StopG
	StopIO2
	NStops
)

const LTCMultiChipTrainModeEn = 1 << 15

type Fabric struct {
	Bus  mmio.Bus
	Map  *addrmap.Map
	Topo *topology.Topology

	// Read back the crossbar routing of each remote AP after it's
	// programmed.
	Readback bool
}

// Originates is false for the memory controller and general stops, which
// never start transactions to another ring.
func Originates(stop int) bool {
	switch stop {
	case StopMC0, StopMC1, StopMC2, StopG:
		return false
	}
	return true
}

// OpenBankedRGF opens access from the given AP's IO and processor stops to
// the registers of every AP in the package.
func (f *Fabric) OpenBankedRGF(ap int) {
	log.Printf("debug", "AP%d: open banked RGF", ap)
	mask := f.Topo.Mask()
	for stop := 0; stop < NStops; stop++ {
		if Originates(stop) {
			f.Map.BankedGIDACR(ap, stop).Set(f.Bus, mask)
		}
	}
}

// Enumerate is a no-op for a single AP; otherwise it leaves every AP
// addressable from every other with fabric id equal to its index.
func (f *Fabric) Enumerate() error {
	if err := f.Topo.Supported(); err != nil {
		return fmt.Errorf("aurora: %w", err)
	}
	count := f.Topo.APCount()
	if count == 1 {
		return nil
	}
	routing, err := Routing(count)
	if err != nil {
		return err
	}
	log.Printf("debug", "enumerate %d APs", count)

	f.OpenBankedRGF(0)

	ltc := f.Map.LTCCR(0)
	saved := ltc.Get(f.Bus)
	ltc.Set(f.Bus, saved|LTCMultiChipTrainModeEn)
	for ap, v := range routing {
		f.Map.XbarRouting0(ap, 0).Set(f.Bus, v)
	}
	ltc.Set(f.Bus, saved)

	if f.Readback {
		for ap := 1; ap < count; ap++ {
			got := f.Map.XbarRouting0(ap, 0).Get(f.Bus)
			if got != routing[ap] {
				log.Printf("err", "AP%d: routing %#x != %#x",
					ap, got, routing[ap])
			} else {
				log.Printf("info", "AP%d: routing %#x", ap, got)
			}
		}
	}

	for ap := 0; ap < count; ap++ {
		f.Map.CCUGUID(ap).Set(f.Bus, uint32(ap))
	}
	return nil
}
