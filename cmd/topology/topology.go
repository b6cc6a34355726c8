// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package topology

import (
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/ap810/internal/ap810"
	"github.com/platinasystems/ap810/internal/lang"
	"github.com/platinasystems/ap810/internal/options"
)

type Command struct{}

func (Command) String() string { return "topology" }

func (Command) Usage() string { return "topology " + options.Usage }

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print the AP and CP dies of the AP810 package",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Print the number of AP dies sampled at reset on AP0 and, for each
	AP, its revision and the CP dies linked to it. Only AP0 is read
	unless the interconnect has been enumerated by bringup.
` + options.Man,
	}
}

func (Command) Main(args ...string) error {
	o, args, err := options.New(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	p, done, err := o.Open()
	if err != nil {
		return err
	}
	defer done()
	return Print(os.Stdout, p, o.Simulate)
}

// Print the topology; remote APs are included if enumerated.
func Print(w io.Writer, p *ap810.Platform, enumerated bool) error {
	t := p.Topo
	if err := t.Supported(); err != nil {
		return err
	}
	n := t.APCount()
	fmt.Fprintln(w, "APs:", n)
	if !enumerated {
		n = 1
	}
	for ap := 0; ap < n; ap++ {
		_, err := fmt.Fprintf(w, "AP%d: rev %d, %d CPs, %d expected\n",
			ap, t.RevID(ap), t.CPCount(ap), t.StaticCPCount(ap))
		if err != nil {
			return err
		}
	}
	return nil
}
