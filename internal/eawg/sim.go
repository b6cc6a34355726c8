// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eawg

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/mmio"
)

type Op int

const (
	OpLoad Op = iota
	OpStart
	OpDone
	OpDisable
)

func (op Op) String() string {
	return [...]string{"load", "start", "done", "disable"}[op]
}

type Event struct {
	Op Op
	AP int
}

func (e Event) String() string { return fmt.Sprint(e.Op, " AP", e.AP) }

// Sim replays each AP's FIFO onto Bus when started.
type Sim struct {
	Bus   mmio.Bus
	Map   *addrmap.Map
	Depth int

	Events []Event

	// Stall keeps an AP's sequence from running; LoadErr fails its
	// Load.
	Stall   [addrmap.MaxAP]bool
	LoadErr [addrmap.MaxAP]error

	fifo     [addrmap.MaxAP][]Transaction
	disabled [addrmap.MaxAP]bool
}

func NewSim(bus mmio.Bus, m *addrmap.Map) *Sim {
	return &Sim{Bus: bus, Map: m, Depth: MaxTransactions}
}

func (s *Sim) Load(ap int, t []Transaction) error {
	s.Events = append(s.Events, Event{OpLoad, ap})
	if err := s.LoadErr[ap]; err != nil {
		return err
	}
	if len(s.fifo[ap])+len(t) > s.Depth {
		return ErrFifoFull
	}
	s.fifo[ap] = append(s.fifo[ap], t...)
	return nil
}

func (s *Sim) Start(ap int) {
	s.Events = append(s.Events, Event{OpStart, ap})
	if s.Stall[ap] || s.disabled[ap] {
		return
	}
	for _, t := range s.fifo[ap] {
		s.Bus.Write32(s.Map.Local(ap, t.Address), t.Data)
	}
	s.fifo[ap] = s.fifo[ap][:0]
}

func (s *Sim) Done(ap int, scratch mmio.Reg) bool {
	s.Events = append(s.Events, Event{OpDone, ap})
	return scratch.Get(s.Bus) != 0
}

func (s *Sim) Disable(ap int) {
	s.Events = append(s.Events, Event{OpDisable, ap})
	s.disabled[ap] = true
}

func (s *Sim) Disabled(ap int) bool { return s.disabled[ap] }

// Pending is the number of transactions loaded but not yet replayed.
func (s *Sim) Pending(ap int) int { return len(s.fifo[ap]) }

// Ops returns the APs of each event with the given op, in order.
func (s *Sim) Ops(op Op) (aps []int) {
	for _, e := range s.Events {
		if e.Op == op {
			aps = append(aps, e.AP)
		}
	}
	return
}
