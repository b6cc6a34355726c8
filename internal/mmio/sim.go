// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mmio

// Access is one store recorded by Sim.
type Access struct {
	Addr uintptr
	Data uint32
}

// Sim is a sparse register file. Unwritten registers read as zero.
// Every Write32 is appended to Trace; Poke doesn't trace.
type Sim struct {
	regs  map[uintptr]uint32
	Trace []Access

	// If non-nil, OnRead may override the stored value.
	OnRead func(addr uintptr, stored uint32) uint32
}

func NewSim() *Sim {
	return &Sim{regs: make(map[uintptr]uint32)}
}

func (s *Sim) Read32(addr uintptr) uint32 {
	v := s.regs[addr]
	if s.OnRead != nil {
		v = s.OnRead(addr, v)
	}
	return v
}

func (s *Sim) Write32(addr uintptr, data uint32) {
	s.regs[addr] = data
	s.Trace = append(s.Trace, Access{addr, data})
}

func (s *Sim) Peek(addr uintptr) uint32 { return s.regs[addr] }

func (s *Sim) Poke(addr uintptr, data uint32) { s.regs[addr] = data }

// Writes returns the values stored to addr in order.
func (s *Sim) Writes(addr uintptr) (v []uint32) {
	for _, a := range s.Trace {
		if a.Addr == addr {
			v = append(v, a.Data)
		}
	}
	return
}

// Written reports whether addr was ever stored to.
func (s *Sim) Written(addr uintptr) bool {
	for _, a := range s.Trace {
		if a.Addr == addr {
			return true
		}
	}
	return false
}

// Index returns the trace position of the first store to addr, or -1.
func (s *Sim) Index(addr uintptr) int {
	for i, a := range s.Trace {
		if a.Addr == addr {
			return i
		}
	}
	return -1
}

func (s *Sim) ClearTrace() { s.Trace = s.Trace[:0] }
