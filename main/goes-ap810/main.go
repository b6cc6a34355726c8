// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the AP810 early platform bring-up machine.
package main

import (
	"github.com/platinasystems/ap810/cmd/bringup"
	"github.com/platinasystems/ap810/cmd/topology"
	"github.com/platinasystems/ap810/internal/goes"
)

func Goes() goes.ByName {
	g := make(goes.ByName)
	g.Plot(bringup.Command{}, topology.Command{})
	return g
}

func main() {
	Goes().Main()
}
