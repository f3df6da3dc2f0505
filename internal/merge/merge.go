// Package merge concatenates chunk files back into one file, either from an
// explicit ordered list or from the single complete chunk group found in a
// directory.
package merge

import (
	"context"
	"errors"
	"os"

	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/progress"
)

// InOrder concatenates files, in order, into outputPath and returns the
// number of bytes written. Every input is checked before outputPath is
// created. A failure while streaming leaves the partial output in place.
func InOrder(ctx context.Context, files []string, outputPath string, report progress.Func) (int64, error) {
	const op = "merge"

	if len(files) == 0 {
		return 0, fault.New(fault.InvalidInput, op, "", "no input files")
	}
	if outputPath == "" {
		return 0, fault.New(fault.InvalidConfiguration, op, "", "output file is required")
	}

	outInfo, _ := os.Stat(outputPath)

	var total int64
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil {
			return 0, fault.New(fault.InvalidInput, op, f, "input file does not exist")
		}
		if !fi.Mode().IsRegular() {
			return 0, fault.New(fault.InvalidInput, op, f, "input is not a regular file")
		}
		if outInfo != nil && os.SameFile(fi, outInfo) {
			return 0, fault.New(fault.OutputConflict, op, outputPath, "output file is also an input")
		}
		total += fi.Size()
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fault.IO(op, outputPath, err)
	}
	defer out.Close()

	tracker := progress.NewTracker(total, report)
	buf := make([]byte, progress.BufferSize)
	for _, f := range files {
		if err := appendFile(ctx, out, f, buf, tracker); err != nil {
			var re *progress.ReadError
			if errors.As(err, &re) {
				return tracker.Done(), fault.IO(op, f, re.Err)
			}
			return tracker.Done(), fault.IO(op, outputPath, err)
		}
	}
	if err := out.Close(); err != nil {
		return tracker.Done(), fault.IO(op, outputPath, err)
	}

	tracker.Finish()
	return tracker.Done(), nil
}

func appendFile(ctx context.Context, out *os.File, path string, buf []byte, tracker *progress.Tracker) error {
	in, err := os.Open(path)
	if err != nil {
		return &progress.ReadError{Err: err}
	}
	defer in.Close()

	_, err = progress.Copy(ctx, out, in, buf, tracker)
	return err
}
