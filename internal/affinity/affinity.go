// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package affinity creates the AP810 coherency affinity groups and routes
// CPU events between dies.
//
// No affinity group exists at power up. The memory affinity group is the
// set of ring stops snooped when a memory transaction enters the coherency
// fabric, which must include every CPU cluster; the DVM group receives
// cache and TLB maintenance broadcasts. The global groups and GASET extend
// snooping across dies and must not be set until the fabric is enumerated.
package affinity

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/aurora"
	"github.com/platinasystems/ap810/internal/mmio"
	"github.com/platinasystems/ap810/internal/topology"
	"github.com/platinasystems/log"
)

const MastersInRing = 16

// HTC affinity control
const (
	MemAffGrpOffset = 0
	DVMAffGrpOffset = 16
	GlobalStop      = 1 << aurora.StopG
	// AURORA2-1615: a DVM inserted to the global ring through SG must
	// not have zero affinity so the SMMU's IO stop stays open.
	ASETWorkaround = 1 << 5
)

// Cluster is the affinity bit of CPU cluster x.
func Cluster(x int) uint32 { return 1 << uint(aurora.StopP0+x) }

// Local is the memory and DVM affinity of every ring master: all four
// clusters and the global stop.
func Local() uint32 {
	v := Cluster(0) | Cluster(1) | Cluster(2) | Cluster(3) | GlobalStop
	return v<<MemAffGrpOffset | v<<DVMAffGrpOffset
}

type Configurator struct {
	Bus  mmio.Bus
	Map  *addrmap.Map
	Topo *topology.Topology
}

// Affinity sets the local and global affinity of each ring master of the
// given AP then opens cross die coherency with GASET.
func (c *Configurator) Affinity(ap int) error {
	if err := c.Topo.Supported(); err != nil {
		return fmt.Errorf("affinity: %w", err)
	}
	log.Printf("debug", "AP%d: affinity", ap)
	local := Local()
	for i := 0; i < MastersInRing; i++ {
		c.Map.HTCACR(ap, i).Set(c.Bus, local)
	}
	c.Map.HTCASET(ap).Set(c.Bus, GlobalStop|ASETWorkaround)
	global := c.Topo.Mask()
	for i := 0; i < MastersInRing; i++ {
		c.Map.HTCGACR(ap, i).Set(c.Bus, global)
	}
	c.Map.HTCGASET(ap).Set(c.Bus, global)
	return nil
}

// Events programs the GEvent port masks of the given AP.
func (c *Configurator) Events(ap int) error {
	routes, err := EventRoutes(c.Topo.APCount(), ap)
	if err != nil {
		return err
	}
	log.Printf("info", "AP%d: event propagation", ap)
	for _, r := range routes {
		c.Map.GEventMask(ap, r.Port).Set(c.Bus, r.Mask)
	}
	return nil
}
