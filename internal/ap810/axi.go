// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import "github.com/platinasystems/log"

// AXI attribute registers
const (
	AXISDIO = iota
	AXIDFX
	AXIEIP197
	NAXI
)

const (
	ARCacheOffset  = 0
	ARCacheMask    = 0xf << ARCacheOffset
	ARDomainOffset = 12
	ARDomainMask   = 0x3 << ARDomainOffset
	AWCacheOffset  = 16
	AWCacheMask    = 0xf << AWCacheOffset
	AWDomainOffset = 28
	AWDomainMask   = 0x3 << AWDomainOffset
)

const (
	CacheBufferable = 1 << iota
	CacheModifiable
	CacheReadAlloc
	CacheWriteAlloc
)

const DomainOuterShareable = 2

const (
	ARCache = CacheWriteAlloc | CacheModifiable | CacheBufferable
	AWCache = CacheReadAlloc | CacheModifiable | CacheBufferable
)

const (
	AXIAttrMask = ARCacheMask | ARDomainMask | AWCacheMask | AWDomainMask
	AXIAttr     = ARCache<<ARCacheOffset |
		DomainOuterShareable<<ARDomainOffset |
		AWCache<<AWCacheOffset |
		DomainOuterShareable<<AWDomainOffset
)

// AXIAttrInit makes the AXI masters of an AP cacheable and outer
// shareable. DFX is left as reset.
func (p *Platform) AXIAttrInit(ap int) {
	log.Printf("debug", "AP%d: axi attributes", ap)
	for i := 0; i < NAXI; i++ {
		if i == AXIDFX {
			continue
		}
		p.Map.AXIAttr(ap, i).Modify(p.Bus, AXIAttrMask, AXIAttr)
	}
}
