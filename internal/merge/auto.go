package merge

import (
	"context"
	"path/filepath"

	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/group"
	cdpath "github.com/sansecio/splitmerge/internal/path"
	"github.com/sansecio/splitmerge/internal/progress"
)

// AutoDetect merges the only complete chunk group in dir into dir/<key>,
// where key is the original filename, and returns the output path. An
// existing file of that name is never overwritten.
func AutoDetect(ctx context.Context, dir string, d group.Detector, report progress.Func) (string, error) {
	const op = "merge"

	if !cdpath.IsDir(dir) {
		return "", fault.New(fault.InvalidInput, op, dir, "not a directory")
	}
	key, files, err := d.Target(dir)
	if err != nil {
		return "", err
	}

	output := filepath.Join(dir, key)
	if cdpath.Exists(output) {
		return "", fault.New(fault.OutputConflict, op, output, "target file already exists, remove it first")
	}
	if _, err := InOrder(ctx, files, output, report); err != nil {
		return "", err
	}
	return output, nil
}
