// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package addrmap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/platinasystems/fdt"
)

const (
	Compatible = "marvell,ap810"
	fdtMagic   = 0xd00dfeed
)

var ErrNoAP = errors.New("addrmap: no " + Compatible + " nodes")

// FromFDT returns the register bases of the nodes compatible with
// "marvell,ap810". Each node has a single cell "marvell,ap-id" and a
// "reg = <base size>" property of 32 bit cells.
func FromFDT(blob []byte) (Static, error) {
	if len(blob) < 40 || binary.BigEndian.Uint32(blob) != fdtMagic {
		return nil, errors.New("addrmap: not a flattened device tree")
	}
	t := &fdt.Tree{}
	if err := t.Parse(blob); err != nil {
		return nil, fmt.Errorf("addrmap: %v", err)
	}
	if t.RootNode == nil {
		return nil, ErrNoAP
	}
	var (
		bases [MaxAP]uintptr
		found [MaxAP]bool
		n     int
		err   error
	)
	t.EachProperty("compatible", Compatible,
		func(node *fdt.Node, name, value string) {
			if err != nil {
				return
			}
			id, ok := node.Properties["marvell,ap-id"]
			if !ok || len(id) != 4 {
				err = fmt.Errorf("addrmap: %s: missing ap-id",
					node.Name)
				return
			}
			ap := int(t.PropUint32(id))
			if ap >= MaxAP {
				err = fmt.Errorf("addrmap: %s: AP%d out of range",
					node.Name, ap)
				return
			}
			if found[ap] {
				err = fmt.Errorf("addrmap: AP%d: duplicate", ap)
				return
			}
			reg := t.PropUint32Slice(node.Properties["reg"])
			if len(reg) < 1 {
				err = fmt.Errorf("addrmap: %s: missing reg",
					node.Name)
				return
			}
			bases[ap] = uintptr(reg[0])
			found[ap] = true
			n++
		})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoAP
	}
	for ap := 0; ap < n; ap++ {
		if !found[ap] {
			return nil, fmt.Errorf("addrmap: AP%d: missing", ap)
		}
	}
	return Static(bases[:n]), nil
}
