// Package split cuts a source file into numbered chunk files, either by byte
// count (binary safe) or by line count (text and log files).
//
// A failure after streaming has started leaves any chunk files already
// written in place.
package split

import (
	"os"
	"path/filepath"

	"github.com/sansecio/splitmerge/internal/chunkname"
	"github.com/sansecio/splitmerge/internal/fault"
	cdpath "github.com/sansecio/splitmerge/internal/path"
)

// sourceInfo validates that source is a regular file and returns its size.
func sourceInfo(op, source string) (int64, error) {
	fi, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fault.New(fault.InvalidInput, op, source, "source file does not exist")
		}
		return 0, fault.IO(op, source, err)
	}
	if !fi.Mode().IsRegular() {
		return 0, fault.New(fault.InvalidInput, op, source, "source is not a regular file")
	}
	return fi.Size(), nil
}

// checkOutputDir fails when dir exists but is not a directory. It reports
// whether dir exists.
func checkOutputDir(op, dir string) (bool, error) {
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fault.IO(op, dir, err)
	}
	if !fi.IsDir() {
		return true, fault.New(fault.InvalidConfiguration, op, dir, "output path is not a directory")
	}
	return true, nil
}

func makeDir(op, dir string) error {
	if cdpath.IsDir(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.IO(op, dir, err)
	}
	return nil
}

// nameParts returns the base and extension chunk names derive from.
func nameParts(source string) (base, ext string) {
	return chunkname.SplitExt(filepath.Base(source))
}
