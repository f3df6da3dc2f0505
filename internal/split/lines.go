package split

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sansecio/splitmerge/internal/chunkname"
	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/progress"
	cdpath "github.com/sansecio/splitmerge/internal/path"
)

const (
	maxLineSize = 1024 * 1024 * 10 // 10 MB
	lineEnding  = '\n'
)

var replacementChar = []byte("\uFFFD")

// ByLines splits the text file source into chunks of linesPerChunk lines
// written to outputDir, which is created when missing and must otherwise be
// an empty directory. It returns the number of chunks.
//
// The source is read twice: once to count lines for progress reporting and
// once to write the chunks. Input lines may end in \n, \r\n or \r; output
// lines always end in \n. Invalid UTF-8 is replaced with U+FFFD.
func ByLines(ctx context.Context, source, outputDir string, linesPerChunk int, report progress.Func) (int, error) {
	const op = "split-lines"

	if _, err := sourceInfo(op, source); err != nil {
		return 0, err
	}
	if linesPerChunk <= 0 {
		return 0, fault.New(fault.InvalidConfiguration, op, "", "lines per chunk must be greater than 0, got %d", linesPerChunk)
	}
	if outputDir == "" {
		return 0, fault.New(fault.InvalidConfiguration, op, "", "output directory is required")
	}
	exists, err := checkOutputDir(op, outputDir)
	if err != nil {
		return 0, err
	}
	if exists {
		empty, err := cdpath.IsEmptyDir(outputDir)
		if err != nil {
			return 0, fault.IO(op, outputDir, err)
		}
		if !empty {
			return 0, fault.New(fault.OutputConflict, op, outputDir, "output directory is not empty")
		}
	} else if err := makeDir(op, outputDir); err != nil {
		return 0, err
	}

	total, err := countLines(ctx, source)
	if err != nil {
		return 0, fault.IO(op, source, err)
	}
	if total == 0 {
		return 0, nil
	}

	src, err := os.Open(source)
	if err != nil {
		return 0, fault.IO(op, source, err)
	}
	defer src.Close()

	base, ext := nameParts(source)
	tracker := progress.NewTracker(total, report)
	sc := newLineScanner(src)

	var (
		out     *chunkFile
		count   int
		inChunk int
	)
	defer func() {
		if out != nil {
			out.f.Close()
		}
	}()

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return count, fault.IO(op, source, err)
		}
		if out == nil {
			count++
			path := filepath.Join(outputDir, chunkname.Generate(base, count, ext))
			c, err := createChunk(path)
			if err != nil {
				return count, fault.IO(op, path, err)
			}
			out = c
		}
		if err := out.writeLine(sc.Bytes()); err != nil {
			return count, fault.IO(op, out.path, err)
		}
		tracker.Add(1)

		inChunk++
		if inChunk == linesPerChunk {
			if err := out.close(); err != nil {
				return count, fault.IO(op, out.path, err)
			}
			out, inChunk = nil, 0
		}
	}
	if err := sc.Err(); err != nil {
		return count, fault.IO(op, source, err)
	}
	if out != nil {
		if err := out.close(); err != nil {
			return count, fault.IO(op, out.path, err)
		}
		out = nil
	}

	tracker.Finish()
	return count, nil
}

type chunkFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func createChunk(path string) (*chunkFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &chunkFile{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (c *chunkFile) writeLine(line []byte) error {
	if _, err := c.w.Write(bytes.ToValidUTF8(line, replacementChar)); err != nil {
		return err
	}
	return c.w.WriteByte(lineEnding)
}

func (c *chunkFile) close() error {
	if err := c.w.Flush(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

func countLines(ctx context.Context, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var n int64
	sc := newLineScanner(f)
	for sc.Scan() {
		n++
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
	}
	return n, sc.Err()
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	sc.Split(scanLines)
	return sc
}

// scanLines is bufio.ScanLines extended to treat a lone \r as a line break.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need the next byte to tell \r from \r\n
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
