// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package clocks distributes the AP810 PLL configuration through the EAWG
// of every AP.
//
// The boot CPU loads the same PLL sequence into every AP's EAWG, starts
// them from the highest AP down, so that AP0 is last, then checks the
// scratch pad flag each sequence writes on completion. An AP whose flag
// isn't set has its EAWG disabled and the rest carry on.
package clocks

import (
	"errors"
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/eawg"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
	"github.com/platinasystems/log"
)

// Frequency mode eFuse
const (
	EfuseFreqOffset = 24
	EfuseFreqMask   = 1 << EfuseFreqOffset
)

var (
	ErrFifoCapacity    = errors.New("clocks: transactions exceed fifo")
	ErrNoSampleAtReset = errors.New("clocks: no sampled at reset option")
)

// ARO applies the CPU frequency of an AP through its oscillator ring.
type ARO interface {
	Init(ap int, freq CPUFreq) error
}

// DRAM is told of the DDR frequency before the PLLs change.
type DRAM interface {
	FreqUpdate(freq DDRFreq)
}

type State int

const (
	FetchConfig State = iota
	BuildTransactions
	LoadPerDie
	TriggerAll
	VerifyAll
	ApplyCPUFreq
	Done
	Error
)

func (s State) String() string {
	return [...]string{
		"fetch-config",
		"build-transactions",
		"load-per-die",
		"trigger-all",
		"verify-all",
		"apply-cpu-freq",
		"done",
		"error",
	}[s]
}

type Engine struct {
	Bus  mmio.Bus
	Map  *addrmap.Map
	Topo *topology.Topology
	Seq  eawg.Sequencer
	ARO  ARO
	DRAM DRAM

	// FifoDepth of each EAWG, eawg.MaxTransactions if zero.
	FifoDepth int

	State State
	Err   error

	Mode, Option int
	Profile      Profile
	// Verified APs completed their sequence.
	Verified [addrmap.MaxAP]bool

	trans, primary []eawg.Transaction
}

// Run steps the engine from its current state to Done or Error.
func (e *Engine) Run() error {
	for e.State != Done && e.State != Error {
		next, err := e.step()
		if err != nil {
			log.Print("err", err)
			e.Err = err
			next = Error
		}
		log.Printf("debug", "clocks: %v -> %v", e.State, next)
		e.State = next
	}
	return e.Err
}

func (e *Engine) step() (State, error) {
	switch e.State {
	case FetchConfig:
		return BuildTransactions, e.fetchConfig()
	case BuildTransactions:
		return LoadPerDie, e.build()
	case LoadPerDie:
		return TriggerAll, e.load()
	case TriggerAll:
		for ap := e.Topo.APCount() - 1; ap >= 0; ap-- {
			e.Seq.Start(ap)
		}
		return VerifyAll, nil
	case VerifyAll:
		e.verify()
		return ApplyCPUFreq, nil
	case ApplyCPUFreq:
		return Done, e.applyCPUFreq()
	}
	return Error, fmt.Errorf("clocks: %v: invalid state", e.State)
}

func (e *Engine) fetchConfig() error {
	if err := e.Topo.Supported(); err != nil {
		return fmt.Errorf("clocks: %w", err)
	}
	fuse := e.Map.EfuseFreq(0).Get(e.Bus)
	e.Mode = int((fuse & EfuseFreqMask) >> EfuseFreqOffset)
	// The A0 sampled at reset register doesn't work so an earlier boot
	// stage leaves the option in scratch pad 1 instead.
	if rev := e.Topo.RevID(0); rev != topology.RevA0 {
		return fmt.Errorf("%w, revision %d", ErrNoSampleAtReset, rev)
	}
	e.Option = int(e.Map.ScratchPad(0, 1).Get(e.Bus))
	p, err := Lookup(e.Mode, e.Option)
	if err != nil {
		return err
	}
	e.Profile = p
	log.Printf("info", "clocks: mode %d option %d: cpu %d MHz ddr %d MHz",
		e.Mode, e.Option, p.CPU, p.DDR)
	return nil
}

func (e *Engine) build() error {
	depth := e.FifoDepth
	if depth == 0 {
		depth = eawg.MaxTransactions
	}
	if n := NTrans + PrimaryCPUTrans; n > depth-1 {
		return fmt.Errorf("%w: %d > %d", ErrFifoCapacity, n, depth-1)
	}
	e.trans = Transactions(e.Profile)
	e.primary = PrimaryCPU(e.Map)
	return nil
}

func (e *Engine) load() error {
	if e.DRAM != nil {
		e.DRAM.FreqUpdate(e.Profile.DDR)
	}
	for ap := 0; ap < e.Topo.APCount(); ap++ {
		for _, t := range [][]eawg.Transaction{e.trans, e.primary} {
			if err := e.Seq.Load(ap, t); err != nil {
				return fmt.Errorf("clocks: AP%d: load: %v", ap, err)
			}
		}
	}
	return nil
}

func (e *Engine) verify() {
	for ap := e.Topo.APCount() - 1; ap >= 0; ap-- {
		if e.Seq.Done(ap, e.Map.ScratchPad(ap, 0)) {
			e.Verified[ap] = true
			continue
		}
		log.Printf("err", "clocks: AP%d: EAWG incomplete, disabled", ap)
		e.Seq.Disable(ap)
	}
}

func (e *Engine) applyCPUFreq() error {
	if e.ARO == nil {
		return nil
	}
	for ap := 0; ap < e.Topo.APCount(); ap++ {
		if err := e.ARO.Init(ap, e.Profile.CPU); err != nil {
			return fmt.Errorf("clocks: AP%d: aro: %v", ap, err)
		}
	}
	return nil
}
