// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package affinity

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/topology"
)

// GEvent masks are indexed by destination port. Each bit masks the source
// port of the same number; the unmasked sources are ORed onto the
// destination. Ports 0 through 3 link to other dies, 4 is local.
//
//	quad:	AP0: 0 -> AP3, 1 -> NC, 2 -> AP2, 3 -> AP1
//		AP1: 0 -> AP3, 1 -> AP0, 2 -> AP2, 3 -> NC
//		AP2: 0 -> AP1, 1 -> NC, 2 -> AP0, 3 -> AP3
//		AP3: 0 -> AP2, 1 -> AP2, 2 -> AP0, 3 -> NC
//	dual:	AP0: 2 -> AP1
//		AP1: 0 -> AP0
const (
	LocalPort  = 4
	NPorts     = 6
	AllSources = 1<<NPorts - 1
)

type EventRoute struct {
	Port int
	Mask uint32
}

var eventRoutes = [addrmap.MaxAP + 1][addrmap.MaxAP][]EventRoute{
	2: {
		{{2, 0x2f}, {LocalPort, 0x3b}},
		{{0, 0x2f}, {LocalPort, 0x3e}},
	},
	4: {
		{{0, 0x2f}, {2, 0x2f}, {3, 0x2f}, {LocalPort, 0x32}},
		{{0, 0x2f}, {1, 0x2f}, {2, 0x2f}, {LocalPort, 0x38}},
		{{0, 0x2f}, {2, 0x2f}, {3, 0x2f}, {LocalPort, 0x32}},
		{{0, 0x2f}, {1, 0x2f}, {2, 0x2f}, {LocalPort, 0x38}},
	},
}

// EventRoutes returns the GEvent masks of an AP in port order. A single AP
// has none.
func EventRoutes(count, ap int) ([]EventRoute, error) {
	switch count {
	case 1:
		return nil, nil
	case 2, 4:
		if ap < 0 || ap >= count {
			return nil, fmt.Errorf("affinity: AP%d of %d", ap, count)
		}
		return append([]EventRoute(nil), eventRoutes[count][ap]...), nil
	}
	return nil, fmt.Errorf("affinity: %w: %d", topology.ErrUnsupported,
		count)
}
