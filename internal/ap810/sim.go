// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/clocks"
	"github.com/platinasystems/ap810/internal/eawg"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
)

// Straps are the reset sampled values seeded into a simulated package.
type Straps struct {
	APs    int
	CPDies int
	// Mode is the efuse frequency mode; Option the scratch pad clock
	// option left by the previous boot stage.
	Mode, Option int
	Rev          int
}

// Simulate returns a Platform on a register file seeded with the given
// straps and an EAWG simulator.
func Simulate(st Straps, cfg Config) (*Platform, *mmio.Sim) {
	sim := mmio.NewSim()
	bases := addrmap.Default()
	m := addrmap.New(bases)
	st.Seed(sim, m)
	p := New(sim, bases, cfg)
	seq := eawg.NewSim(sim, m)
	if cfg.FifoDepth > 0 {
		seq.Depth = cfg.FifoDepth
	}
	p.Seq = seq
	return p, sim
}

// Seed pokes the straps into a simulated register file. Each AP's MCI
// ports are linked first to the other APs then to its share of CPs.
func (st Straps) Seed(sim *mmio.Sim, m *addrmap.Map) {
	if st.APs < 1 || st.APs > addrmap.MaxAP {
		return
	}
	coherent := uint32(1)<<uint(st.APs-1) - 1
	sim.Poke(uintptr(m.DfxSar(0, 0)), coherent<<addrmap.SarCoherentEnOffset)
	sim.Poke(uintptr(m.EfuseFreq(0)),
		uint32(st.Mode)<<clocks.EfuseFreqOffset)
	sim.Poke(uintptr(m.ScratchPad(0, 1)), uint32(st.Option))
	topo := topology.New(sim, m)
	topo.CPDies = st.CPDies
	for ap := 0; ap < st.APs; ap++ {
		sim.Poke(uintptr(m.IIDR2(ap)), uint32(st.Rev)<<topology.RevIDOffset)
		cps := topo.StaticCPCount(ap)
		mci := 0
		for i := 0; i < st.APs-1 && mci < topology.MaxMCI; i++ {
			sim.Poke(uintptr(m.IHBX4SR(ap, mci)),
				topology.IHBReady|topology.CoherentPort)
			mci++
		}
		for i := 0; i < cps && mci < topology.MaxMCI; i++ {
			sim.Poke(uintptr(m.IHBX4SR(ap, mci)), topology.IHBReady)
			mci++
		}
	}
}
