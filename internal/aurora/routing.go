// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package aurora

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/addrmap"
	"github.com/platinasystems/ap810/internal/topology"
)

// The MRI crossbar has 5 ports: port 0 is the local global stop and 1
// through 4 link to other APs, one of which is not connected.
// PORT0_ROUTING0 has a nibble per destination AP-ID with the port that
// transactions from port 0 exit on; the local AP-ID returns on port 0.
//
//	AP0.PORT0_ROUTING0 0x1340: AP-ID 0 -> 0, 1 -> 4, 2 -> 3, 3 -> 1
//
// Nibbles of AP-IDs beyond the AP count are zero, unprogrammed.
const NPorts = 5

var port0Routing0 = [addrmap.MaxAP + 1][addrmap.MaxAP]uint32{
	2: {0x30, 0x1},
	4: {0x1340, 0x1302, 0x4013, 0x0213},
}

// Routing returns the PORT0_ROUTING0 value of each AP. There is no
// routing for a single AP.
func Routing(count int) ([]uint32, error) {
	switch count {
	case 1:
		return nil, nil
	case 2, 4:
		return append([]uint32(nil), port0Routing0[count][:count]...),
			nil
	}
	return nil, fmt.Errorf("aurora: %w: %d", topology.ErrUnsupported,
		count)
}

// Port is the crossbar port that a routing value sends the given AP-ID to.
func Port(routing uint32, apid int) int {
	return int(routing>>(4*uint(apid))) & 0xf
}
