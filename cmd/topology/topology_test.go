// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package topology

import (
	"bytes"
	"testing"

	"github.com/platinasystems/ap810/internal/ap810"
	"github.com/platinasystems/ap810/internal/test"
	"github.com/platinasystems/ap810/internal/topology"
)

func TestPrint(t *testing.T) {
	assert := test.Assert{TB: t}
	p, _ := ap810.Simulate(ap810.Straps{APs: 4, CPDies: 2},
		ap810.DefaultConfig())
	buf := new(bytes.Buffer)
	assert.Nil(Print(buf, p, true))
	assert.Equal(buf.String(), `APs: 4
AP0: rev 0, 1 CPs, 1 expected
AP1: rev 0, 1 CPs, 1 expected
AP2: rev 0, 0 CPs, 0 expected
AP3: rev 0, 0 CPs, 0 expected
`)
	buf.Reset()
	assert.Nil(Print(buf, p, false))
	assert.Equal(buf.String(), "APs: 4\nAP0: rev 0, 1 CPs, 1 expected\n")
}

func TestPrintUnsupported(t *testing.T) {
	assert := test.Assert{TB: t}
	p, _ := ap810.Simulate(ap810.Straps{APs: 3}, ap810.DefaultConfig())
	assert.Error(Print(new(bytes.Buffer), p, true), topology.ErrUnsupported)
}
