// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/clocks"
	"github.com/platinasystems/log"
)

// Report is what Bringup found and configured.
type Report struct {
	APs     int
	CPs     []int
	Revs    []int
	Streams []Stream
	// Clocks is nil if the Platform has no sequencer.
	Clocks *clocks.Engine
}

// Bringup runs BLEInit, AddrDecodeInit, Init and clock distribution. The
// Report is returned with whatever was completed, even on error.
func (p *Platform) Bringup() (*Report, error) {
	r := &Report{}
	if err := p.Topo.Supported(); err != nil {
		return r, err
	}
	if err := p.BLEInit(); err != nil {
		return r, fmt.Errorf("ble: %w", err)
	}
	r.APs = p.Topo.APCount()
	for ap := 0; ap < r.APs; ap++ {
		r.CPs = append(r.CPs, p.Topo.CPCount(ap))
		r.Revs = append(r.Revs, p.Topo.RevID(ap))
	}
	if err := p.AddrDecodeInit(); err != nil {
		return r, fmt.Errorf("address decode: %w", err)
	}
	if err := p.Init(); err != nil {
		return r, err
	}
	r.Streams = p.Streams
	if p.Seq == nil {
		log.Print("info", "no EAWG, clocks unchanged")
		return r, nil
	}
	r.Clocks = p.Clocks()
	return r, r.Clocks.Run()
}

// Clocks returns a clock distribution engine for the Platform's dies.
func (p *Platform) Clocks() *clocks.Engine {
	return &clocks.Engine{
		Bus:       p.Bus,
		Map:       p.Map,
		Topo:      p.Topo,
		Seq:       p.Seq,
		ARO:       p.ARO,
		DRAM:      p.DRAM,
		FifoDepth: p.FifoDepth,
	}
}

// Verified reports whether the given AP completed its clock sequence.
func (r *Report) Verified(ap int) bool {
	return r.Clocks != nil && ap < addrmap.MaxAP && r.Clocks.Verified[ap]
}
