// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"fmt"

	"github.com/platinasystems/ap810/internal/mmio"
)

const FirstStreamID = 0xa0

// StreamIDRegs are the register offsets of the AP stream ID masters.
var StreamIDRegs = []uintptr{
	0x410010,
	0x430010,
	0x450010,
	0x470010,
}

type Stream struct {
	AP  int
	Reg mmio.Reg
	ID  uint32
}

func (s Stream) String() string {
	return fmt.Sprintf("AP%d %v 0x%x", s.AP, s.Reg, s.ID)
}

// StreamIDInit gives each master of an AP the next stream ID, unique
// across all APs of the Platform.
func (p *Platform) StreamIDInit(ap int) {
	for _, off := range StreamIDRegs {
		r := p.Map.Offset(ap, off)
		id := p.streamID
		p.streamID++
		r.Set(p.Bus, id<<16|id)
		p.Streams = append(p.Streams, Stream{ap, r, id})
	}
}
