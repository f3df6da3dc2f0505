package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sansecio/splitmerge/internal/group"
	"github.com/sansecio/splitmerge/internal/manifest"
	cdpath "github.com/sansecio/splitmerge/internal/path"
	"github.com/sansecio/splitmerge/internal/progress"
)

type manifestArg struct {
	Manifest string `short:"m" long:"manifest" description:"Manifest path (default: <dir>/!merge_order.txt)"`
	Match    string `long:"match" description:"Only list chunk files matching this glob"`
	Path     struct {
		Dir string `positional-arg-name:"<dir>" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

type joinArg struct {
	Manifest string `short:"m" long:"manifest" description:"Manifest path (default: <dir>/!merge_order.txt, generated when absent)"`
	Output   string `short:"o" long:"output" description:"Output directory (default: <dir>)"`
	Path     struct {
		Dir string `positional-arg-name:"<dir>" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

var (
	manifestCmd manifestArg
	joinCmd     joinArg
)

func init() {
	cli.AddCommand("manifest", "Write the default merge order for a chunk directory",
		"List the chunk files in <dir> by index into a manifest. Edit it to reorder or comment out (#) chunks, then run join.", &manifestCmd)
	cli.AddCommand("join", "Merge chunks in manifest order",
		"Concatenate the files listed in the manifest, in order. The output is named after the first entry.", &joinCmd)
}

func (a *manifestArg) Execute(_ []string) error {
	applyVerbose()

	dir := cdpath.Unquote(a.Path.Dir)
	match, err := group.CompileMatch(a.Match)
	if err != nil {
		return err
	}

	path, err := manifest.Generate(dir, cdpath.Unquote(a.Manifest), match)
	if err != nil {
		return err
	}
	fmt.Println(green("Wrote merge order:"), boldwhite(absPath(path)))
	fmt.Println("Edit it with a text editor (one file name per line, # to skip), then run:")
	fmt.Println("  splitmerge join", dir)
	return nil
}

func (a *joinArg) Execute(_ []string) error {
	applyVerbose()

	dir := cdpath.Unquote(a.Path.Dir)
	manifestPath := cdpath.Unquote(a.Manifest)
	if manifestPath == "" {
		manifestPath = manifest.PathFor(dir)
		if !cdpath.Exists(manifestPath) {
			if _, err := manifest.Generate(dir, manifestPath, nil); err != nil {
				return err
			}
			log.WithField("manifest", manifestPath).Info("generated default manifest")
		}
	}

	log.WithFields(logrus.Fields{"dir": dir, "manifest": manifestPath}).Info("merging by manifest")
	out, err := run("Merging", func(ctx context.Context, report progress.Func) (string, error) {
		return manifest.Merge(ctx, dir, manifestPath, cdpath.Unquote(a.Output), report)
	})
	if err != nil {
		return err
	}

	log.WithField("output", out).Info("merge done")
	fmt.Println(green("Merge complete:"), boldwhite(absPath(out)), grey("("+fileSize(out)+")"))
	return nil
}
