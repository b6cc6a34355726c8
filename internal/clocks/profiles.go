// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package clocks

import (
	"errors"
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
)

type PLL int

const (
	Ring PLL = iota
	IO
	PIDI
	DSS
	NPLL
)

func (pll PLL) String() string {
	return [...]string{"ring", "io", "pidi", "dss"}[pll]
}

// Address of the PLL's frequency register; its control register follows.
func (pll PLL) Address() uintptr {
	return [...]uintptr{
		addrmap.PllRing,
		addrmap.PllIO,
		addrmap.PllPIDI,
		addrmap.PllDSS,
	}[pll]
}

// PLL frequency encodings
const (
	PllFreq3000 = 0x2d477001
	PllFreq2700 = 0x2b06b001
	PllFreq2400 = 0x2ae5f001
	PllFreq2000 = 0x2fc9f002
	PllFreq1800 = 0x2d88f002
	PllFreq1600 = 0x2d47f002
	PllFreq1466 = 0x3535f012 // 1466.5
	PllFreq1400 = 0x2d26f002
	PllFreq1333 = 0x3313f012 // 1333.5
	PllFreq1300 = 0x2b067002
	PllFreq1200 = 0x2ae5f002
	PllFreq1100 = 0x2ac57002
	PllFreq1066 = 0x30cff012
	PllFreq1000 = 0x2ac4f002
	PllFreq800  = 0x2883f002
)

// CPUFreq is the ARO target in MHz.
type CPUFreq uint32

const (
	CPUFreq1200 CPUFreq = 1200
	CPUFreq1600 CPUFreq = 1600
	CPUFreq1800 CPUFreq = 1800
	CPUFreq2000 CPUFreq = 2000
	CPUFreq2200 CPUFreq = 2200
	CPUFreq2500 CPUFreq = 2500
	CPUFreq2700 CPUFreq = 2700
)

// DDRFreq is the DRAM frequency option in MHz.
type DDRFreq uint32

const (
	DDRFreq800  DDRFreq = 800
	DDRFreq1200 DDRFreq = 1200
	DDRFreq1333 DDRFreq = 1333
	DDRFreq1466 DDRFreq = 1466
	DDRFreq1600 DDRFreq = 1600
)

type Profile struct {
	PLL [NPLL]uint32
	CPU CPUFreq
	DDR DDRFreq
}

// The eFuse selects the mode table; the sampled at reset option selects
// the profile within it.
const (
	Modes   = 2
	Options = 8
)

var ErrOption = errors.New("clocks: unsupported option")

var profiles = [Modes][Options]Profile{
	{
		{[NPLL]uint32{PllFreq1200, PllFreq800, PllFreq1000, PllFreq800}, CPUFreq1600, DDRFreq800},
		{[NPLL]uint32{PllFreq1200, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq2000, DDRFreq1200},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1200}, CPUFreq2000, DDRFreq1200},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1200}, CPUFreq2200, DDRFreq1200},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1333}, CPUFreq2200, DDRFreq1333},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1200}, CPUFreq2500, DDRFreq1200},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1466}, CPUFreq2500, DDRFreq1466},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1600}, CPUFreq2700, DDRFreq1600},
	},
	{
		{[NPLL]uint32{PllFreq800, PllFreq800, PllFreq1000, PllFreq800}, CPUFreq1200, DDRFreq800},
		{[NPLL]uint32{PllFreq1000, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq1800, DDRFreq1200},
		{[NPLL]uint32{PllFreq1100, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq1800, DDRFreq1200},
		{[NPLL]uint32{PllFreq1200, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq1800, DDRFreq1200},
		{[NPLL]uint32{PllFreq1400, PllFreq1000, PllFreq1000, PllFreq1200}, CPUFreq1800, DDRFreq1200},
		{[NPLL]uint32{PllFreq1100, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq2000, DDRFreq1200},
		{[NPLL]uint32{PllFreq1200, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq2000, DDRFreq1200},
		{[NPLL]uint32{PllFreq1300, PllFreq800, PllFreq1000, PllFreq1200}, CPUFreq2000, DDRFreq1200},
	},
}

// Lookup returns the profile of the given fuse mode and option.
func Lookup(mode, option int) (Profile, error) {
	if mode < 0 || mode >= Modes {
		return Profile{}, fmt.Errorf("clocks: mode %d: unsupported",
			mode)
	}
	if option < 0 || option >= Options {
		return Profile{}, fmt.Errorf("%w %d", ErrOption, option)
	}
	return profiles[mode][option], nil
}
