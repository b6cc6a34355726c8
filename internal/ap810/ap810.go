// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ap810 brings up the AP dies of an AP810 package: interconnect
// enumeration, per die coherency and security setup, the generic timer and
// clock distribution.
//
// A Platform carries the state shared by these steps; nothing is kept in
// package variables.
package ap810

import (
	"errors"
	"fmt"
	"log/syslog"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/affinity"
	"github.com/platinasystems/ap810/internal/aurora"
	"github.com/platinasystems/ap810/internal/clocks"
	"github.com/platinasystems/ap810/internal/eawg"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
	"github.com/platinasystems/log"
)

const (
	GSPMUCPUControl     = 1 << 0
	HTCPointOfCoherency = 1 << 5
	SMMUPageSize64K     = 1 << 16
	WDMaskSysRstOut     = 1 << 2
)

var ErrNotEnumerated = errors.New("ap810: interconnect not enumerated")

type Platform struct {
	Config

	Bus      mmio.Bus
	Map      *addrmap.Map
	Topo     *topology.Topology
	Fabric   *aurora.Fabric
	Affinity *affinity.Configurator

	LLC    LLC
	Secure SecureMasters
	Decode AddrDecoder
	// Seq is nil where no EAWG driver is available; clocks are left as
	// sampled at reset.
	Seq  eawg.Sequencer
	ARO  clocks.ARO
	DRAM clocks.DRAM

	// Streams lists the IDs assigned so far.
	Streams []Stream

	enumerated bool
	streamID   uint32
}

// New returns a Platform with Tracer collaborators and NoSecureMasters.
func New(bus mmio.Bus, bases addrmap.Bases, cfg Config) *Platform {
	m := addrmap.New(bases)
	topo := topology.New(bus, m)
	topo.CPDies = cfg.CPDies
	return &Platform{
		Config: cfg,
		Bus:    bus,
		Map:    m,
		Topo:   topo,
		Fabric: &aurora.Fabric{
			Bus:      bus,
			Map:      m,
			Topo:     topo,
			Readback: cfg.Verbose(syslog.LOG_INFO),
		},
		Affinity: &affinity.Configurator{Bus: bus, Map: m, Topo: topo},
		LLC:      Tracer{},
		Secure:   NoSecureMasters{},
		Decode:   Tracer{},
		ARO:      Tracer{},
		DRAM:     Tracer{},
		streamID: FirstStreamID,
	}
}

// BLEInit enumerates the interconnect between dies. It must precede Init
// on multi die packages.
func (p *Platform) BLEInit() error {
	if err := p.Fabric.Enumerate(); err != nil {
		return err
	}
	p.enumerated = true
	return nil
}

// AddrDecodeInit opens the address windows of each AP.
func (p *Platform) AddrDecodeInit() error {
	if err := p.Topo.Supported(); err != nil {
		return err
	}
	for ap := 0; ap < p.Topo.APCount(); ap++ {
		p.Decode.IOWin(ap)
		p.Decode.GWin(ap)
		p.Decode.CCU(ap)
	}
	return nil
}

// Init runs the per die setup on each AP then starts the generic timer.
func (p *Platform) Init() error {
	if err := p.Topo.Supported(); err != nil {
		return err
	}
	n := p.Topo.APCount()
	if n > 1 && !p.enumerated {
		return ErrNotEnumerated
	}
	for ap := 0; ap < n; ap++ {
		if err := p.InitAP(ap); err != nil {
			return fmt.Errorf("AP%d: %w", ap, err)
		}
	}
	p.GenericTimerInit()
	return nil
}

// InitAP sets up the coherency, security and interrupt routing of a
// single AP.
func (p *Platform) InitAP(ap int) error {
	log.Printf("debug", "AP%d: init", ap)
	p.Fabric.OpenBankedRGF(ap)
	p.Map.GSPMUCR(ap).Or(p.Bus, GSPMUCPUControl)
	if !p.LLCDisable {
		p.LLC.Enable(ap, true)
	}
	p.Map.HTCCR(ap).Or(p.Bus, HTCPointOfCoherency)
	if err := p.Affinity.Affinity(ap); err != nil {
		return err
	}
	p.Map.SMMUSACR(ap).Or(p.Bus, SMMUPageSize64K)
	if err := p.Secure.AccessEnable(ap, true); err != nil {
		return err
	}
	p.AXIAttrInit(ap)
	if err := p.Affinity.Events(ap); err != nil {
		return err
	}
	p.StreamIDInit(ap)
	p.Map.SysRstOut(ap).AndNot(p.Bus, WDMaskSysRstOut)
	return nil
}
