// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package bringup

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/ap810"
	"github.com/platinasystems/ap810/internal/lang"
	"github.com/platinasystems/ap810/internal/options"
	"github.com/platinasystems/log"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	uuid "github.com/satori/go.uuid"
)

type Command struct{}

func (Command) String() string { return "bringup" }

func (Command) Usage() string { return "bringup " + options.Usage }

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "enumerate and initialize the AP810 dies",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Enumerate the interconnect between AP dies, then set up coherency,
	security, interrupt routing and the generic timer of each, and
	distribute the clock profile through the EAWG sequencers.

	The resulting report is printed and, unless -q, published to redis
	as ap810.* keys stamped with a new ap810.session.
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
	r, err := p.Bringup()
	if perr := Print(stdout{}, r); perr != nil {
		log.Print("err", "report: ", perr)
	}
	if err != nil {
		return err
	}
	if o.Quiet {
		return nil
	}
	if err = redis.IsReady(); err != nil {
		log.Print("info", "redis: ", err, ", not published")
		return nil
	}
	pub, err := publisher.New()
	if err != nil {
		return err
	}
	defer pub.Close()
	if _, err = pub.Print("ap810.session: ", Session()); err != nil {
		return err
	}
	return Print(pub, r)
}

// Printer is satisfied by *publisher.Publisher.
type Printer interface {
	Print(a ...interface{}) (int, error)
}

type stdout struct{}

func (stdout) Print(a ...interface{}) (int, error) {
	return fmt.Print(append(a, "\n")...)
}

// Print the report as "key: value" to p.
func Print(p Printer, r *ap810.Report) (err error) {
	if r == nil {
		return nil
	}
	kv := func(k string, v interface{}) {
		if err == nil {
			_, err = p.Print(k, ": ", v)
		}
	}
	kv("ap810.count", r.APs)
	for ap, n := range r.CPs {
		kv(fmt.Sprint("ap810.ap", ap, ".cp.count"), n)
	}
	for ap, rev := range r.Revs {
		kv(fmt.Sprint("ap810.ap", ap, ".rev"), rev)
	}
	for _, s := range r.Streams {
		kv(fmt.Sprintf("ap810.ap%d.stream.%v", s.AP, s.Reg),
			fmt.Sprintf("0x%x", s.ID))
	}
	e := r.Clocks
	if e == nil {
		return
	}
	kv("ap810.clocks.state", e.State)
	kv("ap810.clocks.mode", e.Mode)
	kv("ap810.clocks.option", e.Option)
	kv("ap810.clocks.cpu", uint32(e.Profile.CPU))
	kv("ap810.clocks.ddr", uint32(e.Profile.DDR))
	for ap := 0; ap < r.APs; ap++ {
		status := "disabled"
		if r.Verified(ap) {
			status = "done"
		}
		kv(fmt.Sprint("ap810.ap", ap, ".eawg"), status)
	}
	return
}

// Session returns a random (version 4) UUID.
func Session() string {
	return uuid.NewV4().String()
}
