// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes multiplexes commands of a single binary by name.
//
// A command is any value with String and Main methods; Usage, Apropos and
// Man are optional.
package goes

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/platinasystems/ap810/internal/lang"
	"github.com/platinasystems/flags"
)

var Exit = os.Exit

type ByName map[string]*Goes

type Goes struct {
	Name    string
	Main    func(...string) error
	Usage   string
	Apropos lang.Alt
	Man     lang.Alt
}

type aproposer interface {
	Apropos() lang.Alt
}

type mainer interface {
	Main(...string) error
}

type manner interface {
	Man() lang.Alt
}

type usager interface {
	Usage() string
}

func (byName ByName) Keys() []string {
	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Plot commands on map.
func (byName ByName) Plot(cmds ...interface{}) {
	for _, v := range cmds {
		g := new(Goes)
		if method, found := v.(fmt.Stringer); found {
			g.Name = method.String()
		} else {
			panic(fmt.Errorf("%T: doesn't have String method", v))
		}
		if _, found := byName[g.Name]; found {
			panic(fmt.Errorf("%s: duplicate", g.Name))
		}
		if method, found := v.(mainer); found {
			g.Main = method.Main
		} else {
			panic(fmt.Errorf("%s: doesn't have Main method",
				g.Name))
		}
		if method, found := v.(usager); found {
			g.Usage = method.Usage()
		} else {
			g.Usage = g.Name
		}
		if method, found := v.(aproposer); found {
			g.Apropos = method.Apropos()
		}
		if method, found := v.(manner); found {
			g.Man = method.Man()
		}
		byName[g.Name] = g
	}
}

// Main runs the args[0] command. When run w/o args this uses os.Args and
// exits instead of returns on error.
//
// If args[0] isn't a command, it's taken as the program name and dropped.
// With "-h", "-help", or "--help" this prints the command's usage and man
// page; with "-apropos" or "-usage" just that line.
func (byName ByName) Main(args ...string) (err error) {
	if len(args) == 0 {
		args = os.Args
		defer func() {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n",
					ProgBase(), err)
				Exit(1)
			}
		}()
	}
	if len(args) > 0 {
		if _, found := byName[args[0]]; !found {
			args = args[1:]
		}
	}
	if len(args) == 0 {
		byName.apropos()
		return nil
	}
	name := args[0]
	g := byName[name]
	if g == nil {
		return fmt.Errorf("%s: command not found", name)
	}
	flag, args := flags.New(args[1:],
		[]string{"-h", "-help", "--help"},
		[]string{"-apropos", "--apropos"},
		[]string{"-usage", "--usage"})
	switch {
	case flag.ByName["-h"]:
		fmt.Print("usage:\t", g.Usage, "\n")
		if s := strings.TrimSpace(g.Man.String()); len(s) > 0 {
			fmt.Print("\n", s, "\n")
		}
	case flag.ByName["-apropos"]:
		fmt.Println(g.Apropos)
	case flag.ByName["-usage"]:
		fmt.Print("usage:\t", g.Usage, "\n")
	default:
		err = g.Main(args...)
	}
	return
}

func (byName ByName) apropos() {
	for _, k := range byName.Keys() {
		fmt.Printf("%-12s %s\n", k, byName[k].Apropos)
	}
}
