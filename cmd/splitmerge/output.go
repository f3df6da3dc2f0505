package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/size"
	"github.com/sansecio/splitmerge/internal/task"
)

var (
	boldred   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	grey      = color.New(color.FgHiBlack).SprintFunc()
	boldwhite = color.New(color.FgHiWhite).SprintFunc()
	warn      = color.New(color.FgYellow, color.Bold).SprintFunc()
	green     = color.New(color.FgGreen).SprintFunc()

	log = logrus.New()
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// applyVerbose sets the log level from the global -v flag count.
func applyVerbose() {
	switch n := len(globalOpts.Verbose); {
	case n >= 2:
		log.SetLevel(logrus.DebugLevel)
	case n == 1:
		log.SetLevel(logrus.InfoLevel)
	}
	log.Debugf("splitmerge %s", splitmergeVersion)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run executes op on a worker goroutine, drawing a live percentage on stderr
// when it is a terminal. Ctrl-C cancels the operation between buffers.
func run[T any](label string, op task.Op[T]) (T, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := task.Start(ctx, op)
	live := isTerminal(os.Stderr)
	drawn := false
	for f := range h.Progress() {
		if live {
			fmt.Fprintf(os.Stderr, "\r%s %3d%%", grey(label), int(f*100))
			drawn = true
		}
	}
	if drawn {
		fmt.Fprintln(os.Stderr)
	}
	return h.Wait()
}

// exitCode prints err and maps it to a process exit status: 0 for help, 2 for
// usage and configuration mistakes, 1 otherwise.
func exitCode(err error) int {
	var ferr *flags.Error
	if errors.As(err, &ferr) {
		if ferr.Type == flags.ErrHelp {
			fmt.Println(ferr.Message)
			return 0
		}
		fmt.Fprintln(os.Stderr, boldred("Error:"), ferr.Message)
		return 2
	}

	fmt.Fprintln(os.Stderr, boldred("Error:"), err)
	var fe *fault.Error
	if errors.As(err, &fe) && len(fe.Candidates) > 0 {
		for _, c := range fe.Candidates {
			fmt.Fprintln(os.Stderr, "  ", grey("-"), c)
		}
	}
	if fault.KindOf(err) == fault.InvalidConfiguration {
		return 2
	}
	return 1
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func fileSize(p string) string {
	fi, err := os.Stat(p)
	if err != nil {
		return "?"
	}
	return size.Format(fi.Size())
}
