// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package topology discovers the AP and CP dies of an AP810 package.
//
// The AP count comes from the coherent-port enable straps sampled at reset
// on AP0, which is assumed to be linked to every other AP. The CPs of an AP
// are its MCI ports that are up and not coherent. Both are read once and
// cached for the life of the Topology.
package topology

import (
	"errors"
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/log"
)

const MaxMCI = 8

// MCI (IHBX4) control status
const (
	IHBReady     = 1 << 5
	CoherentPort = 1 << 7
)

// Revision id in GWD IIDR2
const (
	RevIDOffset = 16
	RevIDMask   = 0xf
	RevA0       = 0
)

const unknown = -1

var (
	ErrUnsupported = errors.New("unsupported AP count")
	ErrNoRegsBase  = errors.New("more APs than register bases")
)

type Topology struct {
	bus mmio.Bus
	m   *addrmap.Map

	// CPDies is the number of CP dies in the package used by
	// StaticCPCount.
	CPDies int

	apCount int
	cpPerAP [addrmap.MaxAP]int
}

func New(bus mmio.Bus, m *addrmap.Map) *Topology {
	t := &Topology{bus: bus, m: m, apCount: unknown}
	for i := range t.cpPerAP {
		t.cpPerAP[i] = unknown
	}
	return t
}

// APCount is one, for AP0, plus the number of coherent ports enabled in
// its straps.
func (t *Topology) APCount() int {
	if t.apCount != unknown {
		return t.apCount
	}
	reg := t.m.DfxSar(0, 0).Get(t.bus)
	reg = (reg >> addrmap.SarCoherentEnOffset) & addrmap.SarCoherentEnMask
	count := 1
	for ; reg != 0; reg >>= 1 {
		count += int(reg & 1)
	}
	t.apCount = count
	log.Printf("info", "found %d APs", count)
	return count
}

// Supported returns ErrUnsupported unless the package has 1, 2 or 4 APs
// and ErrNoRegsBase if the address map has fewer.
func (t *Topology) Supported() error {
	n := t.APCount()
	switch n {
	case 1, 2, 4:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupported, n)
	}
	if bases := t.m.Len(); n > bases {
		return fmt.Errorf("%w: %d > %d", ErrNoRegsBase, n, bases)
	}
	return nil
}

// Mask has a bit set for each AP, 2^count - 1.
func (t *Topology) Mask() uint32 {
	return uint32(1)<<uint(t.APCount()) - 1
}

// CPCount is the number of CPs linked to the given AP.
func (t *Topology) CPCount(ap int) int {
	if t.cpPerAP[ap] != unknown {
		return t.cpPerAP[ap]
	}
	n := 0
	for mci := 0; mci < MaxMCI; mci++ {
		reg := t.m.IHBX4SR(ap, mci).Get(t.bus)
		switch {
		case reg&IHBReady == 0:
			log.Printf("debug", "AP%d MCI-%d: disabled", ap, mci)
		case reg&CoherentPort != 0:
			log.Printf("debug", "AP%d MCI-%d: linked to AP", ap, mci)
		default:
			log.Printf("debug", "AP%d MCI-%d: linked to CP", ap, mci)
			n++
		}
	}
	log.Printf("info", "found %d CPs linked to AP%d", n, ap)
	t.cpPerAP[ap] = n
	return n
}

// StaticCPCount distributes CPDies across the APs; those that don't divide
// evenly go to the lowest numbered APs.
func (t *Topology) StaticCPCount(ap int) int {
	count := t.APCount()
	n := t.CPDies / count
	if ap < t.CPDies%count {
		n++
	}
	return n
}

func (t *Topology) RevID(ap int) int {
	return int(t.m.IIDR2(ap).Get(t.bus)>>RevIDOffset) & RevIDMask
}
