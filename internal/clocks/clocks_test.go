// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package clocks

import (
	"errors"
	"reflect"
	"testing"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/eawg"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
)

var coherentStraps = map[int]uint32{1: 0, 2: 1, 4: 7}

type aro struct {
	aps  []int
	freq CPUFreq
	err  error
}

func (a *aro) Init(ap int, freq CPUFreq) error {
	a.aps = append(a.aps, ap)
	a.freq = freq
	return a.err
}

type dram []DDRFreq

func (d *dram) FreqUpdate(freq DDRFreq) { *d = append(*d, freq) }

type fixture struct {
	*Engine
	bus  *mmio.Sim
	seq  *eawg.Sim
	aro  *aro
	dram *dram
}

func newFixture(count, mode, option int) *fixture {
	bus := mmio.NewSim()
	m := addrmap.New(addrmap.Default())
	bus.Poke(uintptr(m.DfxSar(0, 0)),
		coherentStraps[count]<<addrmap.SarCoherentEnOffset)
	bus.Poke(uintptr(m.EfuseFreq(0)), uint32(mode)<<EfuseFreqOffset|0x3)
	bus.Poke(uintptr(m.ScratchPad(0, 1)), uint32(option))
	f := &fixture{
		bus:  bus,
		seq:  eawg.NewSim(bus, m),
		aro:  new(aro),
		dram: new(dram),
	}
	f.Engine = &Engine{
		Bus:  bus,
		Map:  m,
		Topo: topology.New(bus, m),
		Seq:  f.seq,
		ARO:  f.aro,
		DRAM: f.dram,
	}
	return f
}

func TestLookup(t *testing.T) {
	for mode := 0; mode < Modes; mode++ {
		for option := 0; option < Options; option++ {
			a, err := Lookup(mode, option)
			if err != nil {
				t.Fatal(err)
			}
			b, _ := Lookup(mode, option)
			if a != b || a != profiles[mode][option] {
				t.Error("lookup isn't pure")
			}
		}
	}
	for _, option := range []int{-1, 8, 15, 0x107} {
		if _, err := Lookup(0, option); !errors.Is(err, ErrOption) {
			t.Errorf("option %d: %v", option, err)
		}
	}
	if _, err := Lookup(2, 0); err == nil {
		t.Error("mode 2 accepted")
	}
	p, _ := Lookup(1, 7)
	if p.PLL[Ring] != PllFreq1300 || p.CPU != CPUFreq2000 {
		t.Error("wrong:", p)
	}
}

func TestTransactions(t *testing.T) {
	p, _ := Lookup(0, 4)
	tr := Transactions(p)
	if len(tr) != int(NPLL)*TransPerPLL+1 || len(tr) != NTrans {
		t.Fatal("wrong count:", len(tr))
	}
	for pll := Ring; pll < NPLL; pll++ {
		a := pll.Address()
		want := []eawg.Transaction{
			{Address: a + 4, Data: 0x200, Delay: 1},
			{Address: a + 4, Data: 0x201, Delay: 1},
			{Address: a, Data: p.PLL[pll], Delay: 1},
			{Address: a + 4, Data: 0x200, Delay: 0},
		}
		got := tr[int(pll)*TransPerPLL : int(pll+1)*TransPerPLL]
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%v: %v", pll, got)
		}
	}
	last := tr[len(tr)-1]
	if last != (eawg.Transaction{Address: addrmap.ScratchPadLocal, Data: 1, Delay: 0}) {
		t.Error("wrong:", last)
	}
}

func TestDual(t *testing.T) {
	f := newFixture(2, 0, 3)
	if err := f.Run(); err != nil {
		t.Fatal(err)
	}
	if f.State != Done {
		t.Error("state", f.State)
	}
	if !reflect.DeepEqual(f.seq.Ops(eawg.OpStart), []int{1, 0}) {
		t.Error("start order:", f.seq.Events)
	}
	if !reflect.DeepEqual(f.seq.Ops(eawg.OpDone), []int{1, 0}) {
		t.Error("verify order:", f.seq.Events)
	}
	if !reflect.DeepEqual(f.seq.Ops(eawg.OpLoad), []int{0, 0, 1, 1}) {
		t.Error("load:", f.seq.Events)
	}
	for ap := 0; ap < 2; ap++ {
		if !f.Verified[ap] {
			t.Errorf("AP%d not verified", ap)
		}
		got := f.bus.Peek(f.Map.Local(ap, addrmap.PllRing))
		if got != PllFreq1400 {
			t.Errorf("AP%d ring 0x%x", ap, got)
		}
	}
	if !reflect.DeepEqual(f.aro.aps, []int{0, 1}) || f.aro.freq != CPUFreq2200 {
		t.Error("aro:", f.aro)
	}
	if !reflect.DeepEqual(*f.dram, dram{DDRFreq1200}) {
		t.Error("dram:", *f.dram)
	}
	if f.bus.Peek(uintptr(f.Map.CPUWakeup(0))) != 1 {
		t.Error("CPU0 not woken")
	}
}

func TestHighFrequencyMode(t *testing.T) {
	f := newFixture(1, 1, 0)
	if err := f.Run(); err != nil {
		t.Fatal(err)
	}
	if f.Mode != 1 || f.Profile != profiles[1][0] {
		t.Error("wrong:", f.Mode, f.Profile)
	}
}

func TestOptionOutOfRange(t *testing.T) {
	f := newFixture(2, 0, 8)
	if err := f.Run(); !errors.Is(err, ErrOption) {
		t.Fatal("wrong:", err)
	}
	if f.State != Error || len(f.bus.Trace) != 0 || len(f.seq.Events) != 0 {
		t.Error("configuration error after mutation")
	}
}

func TestNoSampleAtReset(t *testing.T) {
	f := newFixture(2, 0, 0)
	f.bus.Poke(uintptr(f.Map.IIDR2(0)), 1<<topology.RevIDOffset)
	if err := f.Run(); !errors.Is(err, ErrNoSampleAtReset) {
		t.Fatal("wrong:", err)
	}
	if len(f.seq.Events) != 0 {
		t.Error("loaded")
	}
}

func TestFifoCapacity(t *testing.T) {
	f := newFixture(2, 0, 0)
	f.FifoDepth = NTrans + PrimaryCPUTrans
	if err := f.Run(); !errors.Is(err, ErrFifoCapacity) {
		t.Fatal("wrong:", err)
	}
	if len(f.seq.Events) != 0 || len(*f.dram) != 0 {
		t.Error("mutated")
	}
	f = newFixture(2, 0, 0)
	f.FifoDepth = NTrans + PrimaryCPUTrans + 1
	if err := f.Run(); err != nil {
		t.Error(err)
	}
}

func TestLoadFailure(t *testing.T) {
	f := newFixture(4, 0, 0)
	f.seq.LoadErr[2] = eawg.ErrFifoFull
	if err := f.Run(); err == nil {
		t.Fatal("no error")
	}
	if f.State != Error {
		t.Error("state", f.State)
	}
	if f.seq.Ops(eawg.OpStart) != nil {
		t.Error("triggered:", f.seq.Events)
	}
	if f.seq.Pending(0) != NTrans+PrimaryCPUTrans || f.seq.Pending(3) != 0 {
		t.Error("wrong loads")
	}
}

func TestIncompleteAPIsDisabled(t *testing.T) {
	f := newFixture(4, 0, 0)
	f.seq.Stall[2] = true
	if err := f.Run(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(f.seq.Ops(eawg.OpDisable), []int{2}) {
		t.Error("disabled:", f.seq.Events)
	}
	if f.Verified[2] || !f.Verified[3] || !f.Verified[0] {
		t.Error("verified:", f.Verified)
	}
	if !reflect.DeepEqual(f.aro.aps, []int{0, 1, 2, 3}) {
		t.Error("aro:", f.aro.aps)
	}
}

func TestUnsupportedTopology(t *testing.T) {
	f := newFixture(1, 0, 0)
	f.bus.Poke(uintptr(f.Map.DfxSar(0, 0)), 3<<addrmap.SarCoherentEnOffset)
	if err := f.Run(); !errors.Is(err, topology.ErrUnsupported) {
		t.Error("wrong:", err)
	}
}
