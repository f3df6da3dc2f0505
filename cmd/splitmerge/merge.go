package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sansecio/splitmerge/internal/group"
	"github.com/sansecio/splitmerge/internal/merge"
	cdpath "github.com/sansecio/splitmerge/internal/path"
	"github.com/sansecio/splitmerge/internal/progress"
)

type mergeArg struct {
	Match string `long:"match" description:"Only consider chunk files matching this glob, e.g. 'report_*.pdf'"`
	Path  struct {
		Dir string `positional-arg-name:"<dir>" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

var mergeCmd mergeArg

func init() {
	cli.AddCommand("merge", "Merge the chunk set found in a directory",
		"Find the one complete set of name_NN.ext chunks in <dir> and rebuild name.ext next to them. "+
			"Fails when the set is ambiguous or name.ext already exists.", &mergeCmd)
}

func (m *mergeArg) Execute(_ []string) error {
	applyVerbose()

	dir := cdpath.Unquote(m.Path.Dir)
	match, err := group.CompileMatch(m.Match)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"dir": dir, "match": m.Match}).Info("detecting chunk group")
	out, err := run("Merging", func(ctx context.Context, report progress.Func) (string, error) {
		return merge.AutoDetect(ctx, dir, group.Detector{Match: match}, report)
	})
	if err != nil {
		return err
	}

	log.WithField("output", out).Info("merge done")
	fmt.Println(green("Merge complete:"), boldwhite(absPath(out)), grey("("+fileSize(out)+")"))
	return nil
}
