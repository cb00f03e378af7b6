// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command lifectl drives a life.Universe from either a scenario file or
// a built-in demo pattern and prints its report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/conwaylife/lifecore/life"
)

var (
	dashv      bool
	dashh      bool
	dashengine string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dashengine, "engine", "quicklife", "engine for the demo subcommand: hashlife or quicklife")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if !dashv {
		return
	}
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

func newUniverse(engine string) life.Universe {
	switch engine {
	case "hashlife":
		return life.NewHashLife()
	case "quicklife":
		return life.NewQuickLife()
	default:
		exitf("unknown engine %q (want hashlife or quicklife)\n", engine)
		return nil
	}
}

// run executes a scenario loaded from path and prints a final report.
func run(path string) {
	f, err := os.Open(path)
	if err != nil {
		exitf("%s\n", err)
	}
	defer f.Close()
	s, err := DecodeScenario(f, filepath.Ext(path))
	if err != nil {
		exitf("%s\n", err)
	}
	logf("running scenario %q: %s at (%d,%d) for %d generations (speed %d)\n",
		s.Name, s.Pattern, s.OriginX, s.OriginY, s.Generations, s.Speed)
	u := newUniverse(s.Engine)
	seed(u, s.Pattern, s.OriginX, s.OriginY)

	done := 0
	step := 1 << uint(s.Speed)
	for done < s.Generations {
		u.Step(s.Speed)
		done += step
		logf("generation %d: %s\n", done, u.Report())
	}
	fmt.Println(u.Report())
}

// demo seeds a single named pattern at the origin and runs it for n
// generations, logging the live-cell count at each step (visible with
// -v) and printing the final Report.
func demo(name string, n int) {
	if _, ok := patterns[name]; !ok {
		names := make([]string, 0, len(patterns))
		for k := range patterns {
			names = append(names, k)
		}
		sort.Strings(names)
		exitf("unknown pattern %q, have: %v\n", name, names)
	}
	u := newUniverse(dashengine)
	seed(u, name, 0, 0)
	for i := 0; i < n; i++ {
		u.Step(0)
		count := 0
		u.Draw(life.Rect{MinX: -256, MinY: -256, MaxX: 256, MaxY: 256}, func(x, y int64) { count++ })
		logf("generation %d: %d live cells\n", i+1, count)
	}
	fmt.Println(u.Report())
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 || dashh {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s run <scenario.json|scenario.yaml>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        run a scenario file against the engine it names\n")
		fmt.Fprintf(os.Stderr, "    %s [-engine hashlife|quicklife] demo <pattern> <generations>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        run a built-in pattern for a fixed number of generations\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		if len(args) != 2 {
			exitf("usage: run <scenario.json|scenario.yaml>\n")
		}
		run(args[1])
	case "demo":
		if len(args) != 3 {
			exitf("usage: demo <pattern> <generations>\n")
		}
		var n int
		if _, err := fmt.Sscanf(args[2], "%d", &n); err != nil || n < 0 {
			exitf("invalid generation count %q\n", args[2])
		}
		demo(args[1], n)
	default:
		exitf("commands: run, demo\n")
	}
}
