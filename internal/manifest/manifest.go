// Package manifest handles the user-editable merge order file: a UTF-8 text
// file listing one chunk filename per line. Blank lines and lines starting
// with # are ignored, so users can comment out chunks.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sansecio/splitmerge/internal/chunkname"
	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/merge"
	cdpath "github.com/sansecio/splitmerge/internal/path"
	"github.com/sansecio/splitmerge/internal/progress"
)

const (
	// DefaultName is the manifest written into the chunk directory.
	DefaultName = "!merge_order.txt"
	// FallbackOutput is used when no output name can be inferred.
	FallbackOutput = "merged_output"
)

var trailingIndexRe = regexp.MustCompile(`_[0-9]+(\.[^.]+)?$`)

// PathFor returns the default manifest path for chunkDir.
func PathFor(chunkDir string) string {
	return filepath.Join(chunkDir, DefaultName)
}

// Generate writes the default merge order for the chunk files in chunkDir to
// manifestPath (PathFor(chunkDir) when empty) and returns that path. Files
// are ordered by numeric index; names whose index does not parse go last.
// When match is non-nil only matching names are listed.
func Generate(chunkDir, manifestPath string, match glob.Glob) (string, error) {
	const op = "manifest"

	if !cdpath.IsDir(chunkDir) {
		return "", fault.New(fault.InvalidInput, op, chunkDir, "not a directory")
	}
	if manifestPath == "" {
		manifestPath = PathFor(chunkDir)
	}

	entries, err := os.ReadDir(chunkDir)
	if err != nil {
		return "", fault.IO(op, chunkDir, err)
	}

	type entry struct {
		name  string
		index int
	}
	var files []entry
	for _, e := range entries {
		name := e.Name()
		if match != nil && !match.Match(name) {
			continue
		}
		_, digits, _, ok := chunkname.Shape(name)
		if !ok || !cdpath.IsFile(filepath.Join(chunkDir, name)) {
			continue
		}
		index, err := strconv.Atoi(digits)
		if err != nil {
			index = math.MaxInt
		}
		files = append(files, entry{name: name, index: index})
	}
	if len(files) == 0 {
		return "", fault.New(fault.InvalidInput, op, chunkDir, "no chunk files found")
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].index < files[j].index })

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	if err := write(manifestPath, names); err != nil {
		return "", fault.IO(op, manifestPath, err)
	}
	return manifestPath, nil
}

// write replaces the content of path with one name per line while holding
// an exclusive lock on it.
func write(path string, names []string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	if err := lock(f); err != nil {
		return fmt.Errorf("locking manifest %s: %w", path, err)
	}
	defer unlock(f)

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncating manifest %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return fmt.Errorf("writing to manifest: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing to manifest: %w", err)
	}
	return f.Sync()
}

// Resolve reads manifestPath and returns the listed chunk files, inside
// chunkDir, in manifest order.
func Resolve(chunkDir, manifestPath string) ([]string, error) {
	const op = "manifest"

	if !cdpath.IsDir(chunkDir) {
		return nil, fault.New(fault.InvalidInput, op, chunkDir, "chunk directory is not a directory")
	}
	if !cdpath.IsFile(manifestPath) {
		return nil, fault.New(fault.InvalidInput, op, manifestPath, "manifest file does not exist")
	}

	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fault.IO(op, manifestPath, err)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "." || line == ".." || strings.ContainsAny(line, `/\`) {
			return nil, &fault.Error{Kind: fault.ManifestError, Op: op, Line: lineNo, Path: line,
				Msg: "entry must be a plain file name"}
		}
		p := filepath.Join(chunkDir, line)
		if !cdpath.IsFile(p) {
			return nil, &fault.Error{Kind: fault.ManifestError, Op: op, Line: lineNo, Path: line,
				Msg: "listed file does not exist"}
		}
		files = append(files, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fault.IO(op, manifestPath, err)
	}
	if len(files) == 0 {
		return nil, fault.New(fault.ManifestError, op, manifestPath, "manifest lists no chunk files")
	}
	return files, nil
}

// InferOutputName derives the original filename from the first chunk name,
// e.g. data_01.bin -> data.bin.
func InferOutputName(first string) string {
	if base, _, ext, ok := chunkname.Shape(first); ok {
		return base + ext
	}
	if name := trailingIndexRe.ReplaceAllString(first, "$1"); name != "" {
		return name
	}
	return FallbackOutput
}

// Merge concatenates the chunks listed in manifestPath into outputDir
// (chunkDir when empty), naming the result after the first listed chunk.
// It returns the output path.
func Merge(ctx context.Context, chunkDir, manifestPath, outputDir string, report progress.Func) (string, error) {
	const op = "manifest"

	files, err := Resolve(chunkDir, manifestPath)
	if err != nil {
		return "", err
	}
	name := InferOutputName(filepath.Base(files[0]))

	if outputDir == "" {
		outputDir = chunkDir
	}
	fi, err := os.Stat(outputDir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fault.IO(op, outputDir, err)
		}
	case err != nil:
		return "", fault.IO(op, outputDir, err)
	case !fi.IsDir():
		return "", fault.New(fault.InvalidConfiguration, op, outputDir, "output path is not a directory")
	}

	output := filepath.Join(outputDir, name)
	if _, err := merge.InOrder(ctx, files, output, report); err != nil {
		return "", err
	}
	return output, nil
}
