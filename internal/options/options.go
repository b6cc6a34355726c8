// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package options parses the command line shared by the ap810 commands and
// opens the Platform it describes.
package options

import (
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/ap810"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
)

const Usage = `[-llc-disable] [-q] [-log-level PRIORITY] [-cp-dies N]
	[-fdt FILE | -simulate [-dies N] [-fuse MODE] [-clk OPTION] [-rev ID]]`

const Man = `
OPTIONS
	-llc-disable
		Leave the last level cache off.

	-q	Don't publish to redis.

	-log-level PRIORITY
		One of emerg, alert, crit, err, warn, note, info or debug;
		info and above reads back programmed registers.
		Default: note.

	-cp-dies N
		CP dies in the package. Default: 2.

	-fdt FILE
		Take AP register bases from the "marvell,ap810" nodes of
		this flattened device tree rather than the reference board.

	-simulate
		Run against a simulated register file seeded with
		-dies (default 2), -fuse, -clk and -rev.`

type Options struct {
	ap810.Config
	Quiet    bool
	Simulate bool
	FDT      string
	Straps   ap810.Straps
}

// New parses the shared options from args and returns the rest.
func New(args []string) (*Options, []string, error) {
	flag, args := flags.New(args, "-llc-disable", "-simulate", "-q")
	parm, args := parms.New(args, "-log-level", "-cp-dies", "-fdt",
		"-dies", "-fuse", "-clk", "-rev")
	o := &Options{
		Config:   ap810.DefaultConfig(),
		Quiet:    flag.ByName["-q"],
		Simulate: flag.ByName["-simulate"],
		FDT:      parm.ByName["-fdt"],
	}
	o.LLCDisable = flag.ByName["-llc-disable"]
	if s := parm.ByName["-log-level"]; len(s) > 0 {
		pri, err := ap810.ParseLogLevel(s)
		if err != nil {
			return nil, args, err
		}
		o.LogLevel = pri
	}
	o.Straps = ap810.Straps{APs: 2}
	for _, x := range []struct {
		name string
		p    *int
	}{
		{"-cp-dies", &o.CPDies},
		{"-dies", &o.Straps.APs},
		{"-fuse", &o.Straps.Mode},
		{"-clk", &o.Straps.Option},
		{"-rev", &o.Straps.Rev},
	} {
		s := parm.ByName[x.name]
		if len(s) == 0 {
			continue
		}
		u, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, args, fmt.Errorf("%s: %v", x.name, err)
		}
		*x.p = int(u)
	}
	o.Straps.CPDies = o.CPDies
	return o, args, nil
}

// Open returns the Platform and a func to release it. Without -simulate
// the AP register spaces are mapped from /dev/mem and there's no EAWG.
func (o *Options) Open() (*ap810.Platform, func() error, error) {
	if o.Simulate {
		log.Printf("info", "simulate %d APs", o.Straps.APs)
		p, _ := ap810.Simulate(o.Straps, o.Config)
		return p, func() error { return nil }, nil
	}
	bases := addrmap.Default()
	if len(o.FDT) > 0 {
		blob, err := ioutil.ReadFile(o.FDT)
		if err != nil {
			return nil, nil, err
		}
		if bases, err = addrmap.FromFDT(blob); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", o.FDT, err)
		}
	}
	windows := make([]mmio.Window, len(bases))
	for i, base := range bases {
		windows[i] = mmio.Window{
			Base: base,
			Size: addrmap.DefaultRegsSize,
		}
	}
	mem, err := mmio.OpenMem(windows...)
	if err != nil {
		return nil, nil, err
	}
	return ap810.New(mem, bases, o.Config), mem.Close, nil
}
