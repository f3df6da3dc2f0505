package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	cdpath "github.com/sansecio/splitmerge/internal/path"
	"github.com/sansecio/splitmerge/internal/progress"
	"github.com/sansecio/splitmerge/internal/size"
	"github.com/sansecio/splitmerge/internal/split"
)

type splitArg struct {
	Size   string `short:"s" long:"size" default:"100M" description:"Chunk size, e.g. 512K, 100M, 2GB (a bare number means MiB)"`
	Output string `short:"o" long:"output" description:"Output directory (default: next to the source file)"`
	Path   struct {
		File string `positional-arg-name:"<file>" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

type linesArg struct {
	Lines  int    `short:"n" long:"lines" required:"yes" description:"Lines per chunk"`
	Output string `short:"o" long:"output" required:"yes" description:"Output directory, must be empty or absent"`
	Path   struct {
		File string `positional-arg-name:"<file>" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

var (
	splitCmd splitArg
	linesCmd linesArg
)

func init() {
	cli.AddCommand("split", "Split a file into fixed-size chunks",
		"Split any file into chunks of --size bytes named name_01.ext, name_02.ext, ... "+
			"Existing files in the output directory are left alone.", &splitCmd)
	cli.AddCommand("lines", "Split a text file into chunks of N lines",
		"Split a text or log file into chunks of --lines lines. Line endings are written as \\n.", &linesCmd)
}

func (s *splitArg) Execute(_ []string) error {
	applyVerbose()

	src := cdpath.Unquote(s.Path.File)
	out := cdpath.Unquote(s.Output)
	chunkSize, err := size.Parse(s.Size)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"source": src, "chunk_size": chunkSize, "output": out}).Info("splitting by size")
	n, err := run("Splitting", func(ctx context.Context, report progress.Func) (int, error) {
		return split.ByBytes(ctx, src, out, chunkSize, report)
	})
	if err != nil {
		return err
	}

	if n == 0 {
		fmt.Println(warn("Source file is empty, no chunks written."))
		return nil
	}
	if out == "" {
		out = filepath.Dir(src)
	}
	log.WithFields(logrus.Fields{"source": src, "chunks": n}).Info("split done")
	fmt.Println(green("Split complete:"), n, "chunks of up to", size.Format(chunkSize))
	fmt.Println("Output directory:", boldwhite(absPath(out)))
	return nil
}

func (l *linesArg) Execute(_ []string) error {
	applyVerbose()

	src := cdpath.Unquote(l.Path.File)
	out := cdpath.Unquote(l.Output)

	log.WithFields(logrus.Fields{"source": src, "lines": l.Lines, "output": out}).Info("splitting by lines")
	n, err := run("Splitting", func(ctx context.Context, report progress.Func) (int, error) {
		return split.ByLines(ctx, src, out, l.Lines, report)
	})
	if err != nil {
		return err
	}

	if n == 0 {
		fmt.Println(warn("Source file is empty, no chunks written."))
		return nil
	}
	log.WithFields(logrus.Fields{"source": src, "chunks": n}).Info("split done")
	fmt.Println(green("Split complete:"), n, "chunks of up to", l.Lines, "lines")
	fmt.Println("Output directory:", boldwhite(absPath(out)))
	return nil
}
