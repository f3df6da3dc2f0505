package main

import (
	"fmt"
	"os"
	"strings"

	buildversion "github.com/gwillem/go-buildversion"
	"github.com/jessevdk/go-flags"
)

const defaultCmd = "split"

type globalOpt struct {
	Verbose []bool `short:"v" long:"verbose" description:"Verbose output (-v info, -vv debug)"`
	Version bool   `long:"version" description:"Print version and exit"`
}

var (
	globalOpts        globalOpt
	cli               = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)
	splitmergeVersion = buildversion.String()
)

func main() {
	if len(os.Args) == 2 && os.Args[1] == "--version" {
		fmt.Println("splitmerge", splitmergeVersion)
		return
	}
	os.Args = ensureDefaultCommand(cli, os.Args, defaultCmd)
	cli.SubcommandsOptional = false
	if _, err := cli.Parse(); err != nil {
		os.Exit(exitCode(err))
	}
}

// ensureDefaultCommand inserts cmd when the first non-flag argument is not a
// command, so "splitmerge -v big.iso" means "splitmerge split -v big.iso".
// Help requests and flag-only command lines are left alone.
func ensureDefaultCommand(p *flags.Parser, args []string, cmd string) []string {
	for _, a := range args[min(1, len(args)):] {
		switch {
		case a == "-h" || a == "--help" || a == "--":
			return args
		case strings.HasPrefix(a, "-"):
			continue
		}
		for _, c := range p.Commands() {
			if c.Name == a {
				return args
			}
		}
		return append([]string{args[0], cmd}, args[1:]...)
	}
	return args
}
