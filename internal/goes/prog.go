// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"os"
	"path/filepath"
)

const InstallName = "/usr/bin/goes-ap810"

var progbase string

// ProgBase is the base name of the running executable.
func ProgBase() string {
	if len(progbase) == 0 {
		prog, err := os.Executable()
		if err != nil {
			prog = InstallName
		}
		progbase = filepath.Base(prog)
	}
	return progbase
}
