// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ap810

import (
	"fmt"
	"log/syslog"

	"github.com/platinasystems/ap810/internal/eawg"
	"github.com/platinasystems/log"
)

type Config struct {
	// LLCDisable leaves the last level cache off.
	LLCDisable bool
	// LogLevel enables diagnostic readbacks at syslog.LOG_INFO and
	// above.
	LogLevel syslog.Priority
	// CPDies in the package, distributed across APs by
	// topology.StaticCPCount.
	CPDies int
	// FifoDepth of each AP's EAWG.
	FifoDepth int
}

func DefaultConfig() Config {
	return Config{
		LogLevel:  syslog.LOG_NOTICE,
		CPDies:    2,
		FifoDepth: eawg.MaxTransactions,
	}
}

// Verbose reports whether pri is within LogLevel.
func (c *Config) Verbose(pri syslog.Priority) bool { return pri <= c.LogLevel }

// ParseLogLevel accepts the names of log.PriorityByName.
func ParseLogLevel(s string) (syslog.Priority, error) {
	pri, found := log.PriorityByName[s]
	if !found {
		return 0, fmt.Errorf("%s: unknown log level", s)
	}
	return pri, nil
}
