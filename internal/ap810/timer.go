// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"log/syslog"

	"github.com/platinasystems/log"
)

const GTCREnable = 1 << 0

// GenericTimerInit zeros and restarts the generic timer counter of every
// AP so they count together.
func (p *Platform) GenericTimerInit() {
	n := p.Topo.APCount()
	for ap := 0; ap < n; ap++ {
		p.Map.GTCR(ap).AndNot(p.Bus, GTCREnable)
		p.Map.GTCVHR(ap).Set(p.Bus, 0)
		p.Map.GTCVLR(ap).Set(p.Bus, 0)
	}
	for ap := 0; ap < n; ap++ {
		p.Map.GTCR(ap).Or(p.Bus, GTCREnable)
	}
	if p.Verbose(syslog.LOG_INFO) {
		for ap := 0; ap < n; ap++ {
			log.Printf("info", "AP%d: timer 0x%x", ap,
				p.Map.GTCVLR(ap).Get(p.Bus))
		}
	}
}
