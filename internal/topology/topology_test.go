// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package topology

import (
	"errors"
	"testing"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/mmio"
)

func straps(s *mmio.Sim, m *addrmap.Map, coherent uint32) {
	s.Poke(uintptr(m.DfxSar(0, 0)), 0x5|coherent<<addrmap.SarCoherentEnOffset)
}

func TestAPCount(t *testing.T) {
	m := addrmap.New(addrmap.Default())
	for _, x := range []struct {
		coherent uint32
		count    int
		ok       bool
	}{
		{0, 1, true},
		{1, 2, true},
		{4, 2, true},
		{7, 4, true},
		{3, 3, false},
	} {
		s := mmio.NewSim()
		straps(s, m, x.coherent)
		topo := New(s, m)
		if got := topo.APCount(); got != x.count {
			t.Errorf("straps %#x: count %d != %d", x.coherent, got,
				x.count)
		}
		if err := topo.Supported(); (err == nil) != x.ok {
			t.Errorf("straps %#x: wrong: %v", x.coherent, err)
		} else if err != nil && !errors.Is(err, ErrUnsupported) {
			t.Error("wrong:", err)
		}
	}
}

func TestAPCountCached(t *testing.T) {
	m := addrmap.New(addrmap.Default())
	s := mmio.NewSim()
	reads := 0
	s.OnRead = func(addr uintptr, v uint32) uint32 {
		reads++
		return v
	}
	straps(s, m, 1)
	topo := New(s, m)
	topo.APCount()
	straps(s, m, 7)
	if topo.APCount() != 2 || topo.Mask() != 0x3 {
		t.Error("count not cached")
	}
	if reads != 1 {
		t.Error("reads:", reads)
	}
}

func TestCPCount(t *testing.T) {
	m := addrmap.New(addrmap.Default())
	s := mmio.NewSim()
	s.Poke(uintptr(m.IHBX4SR(1, 0)), IHBReady|CoherentPort)
	s.Poke(uintptr(m.IHBX4SR(1, 1)), IHBReady)
	s.Poke(uintptr(m.IHBX4SR(1, 2)), CoherentPort)
	s.Poke(uintptr(m.IHBX4SR(1, 5)), IHBReady)
	topo := New(s, m)
	if n := topo.CPCount(1); n != 2 {
		t.Error("wrong:", n)
	}
	if n := topo.CPCount(0); n != 0 {
		t.Error("wrong:", n)
	}
	s.Poke(uintptr(m.IHBX4SR(1, 3)), IHBReady)
	if n := topo.CPCount(1); n != 2 {
		t.Error("not cached:", n)
	}
}

func TestStaticCPCount(t *testing.T) {
	m := addrmap.New(addrmap.Default())
	for _, coherent := range []uint32{0, 1, 7} {
		for dies := 0; dies <= 8; dies++ {
			s := mmio.NewSim()
			straps(s, m, coherent)
			topo := New(s, m)
			topo.CPDies = dies
			sum, prev := 0, dies
			for ap := 0; ap < topo.APCount(); ap++ {
				n := topo.StaticCPCount(ap)
				if n > prev {
					t.Errorf("AP%d has more CPs than AP%d", ap,
						ap-1)
				}
				prev = n
				sum += n
			}
			if sum != dies {
				t.Errorf("%d APs %d CPs: distributed %d",
					topo.APCount(), dies, sum)
			}
		}
	}
}

func TestRevID(t *testing.T) {
	m := addrmap.New(addrmap.Default())
	s := mmio.NewSim()
	s.Poke(uintptr(m.IIDR2(0)), 0x0001043b)
	s.Poke(uintptr(m.IIDR2(1)), 0x0002043b)
	topo := New(s, m)
	if topo.RevID(0) != 1 || topo.RevID(1) != 2 || topo.RevID(2) != RevA0 {
		t.Error("wrong")
	}
}

func TestSupportedBases(t *testing.T) {
	for _, x := range []struct {
		coherent uint32
		bases    int
		err      error
	}{
		{7, 4, nil},
		{7, 2, ErrNoRegsBase},
		{1, 2, nil},
		{1, 1, ErrNoRegsBase},
		{0, 1, nil},
		{3, 2, ErrUnsupported},
	} {
		m := addrmap.New(addrmap.Default()[:x.bases])
		s := mmio.NewSim()
		straps(s, m, x.coherent)
		err := New(s, m).Supported()
		if !errors.Is(err, x.err) {
			t.Errorf("straps %#x, %d bases: wrong: %v", x.coherent,
				x.bases, err)
		}
	}
}
