package split

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sansecio/splitmerge/internal/chunkname"
	"github.com/sansecio/splitmerge/internal/fault"
	"github.com/sansecio/splitmerge/internal/progress"
)

// ByBytes splits source into chunks of chunkSize bytes written to outputDir
// (the source directory when empty) and returns the number of chunks.
//
// An empty source yields zero chunks. A source no larger than chunkSize is
// rejected since it would produce a single chunk. Unlike ByLines, a non-empty
// output directory is accepted and same-named chunks are overwritten.
func ByBytes(ctx context.Context, source, outputDir string, chunkSize int64, report progress.Func) (int, error) {
	const op = "split"

	total, err := sourceInfo(op, source)
	if err != nil {
		return 0, err
	}
	if chunkSize <= 0 {
		return 0, fault.New(fault.InvalidConfiguration, op, "", "chunk size must be greater than 0, got %d", chunkSize)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if _, err := checkOutputDir(op, outputDir); err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if total <= chunkSize {
		return 0, fault.New(fault.InvalidConfiguration, op, source,
			"source not larger than chunk size (%d <= %d bytes)", total, chunkSize)
	}
	if err := makeDir(op, outputDir); err != nil {
		return 0, err
	}

	src, err := os.Open(source)
	if err != nil {
		return 0, fault.IO(op, source, err)
	}
	defer src.Close()

	base, ext := nameParts(source)
	tracker := progress.NewTracker(total, report)
	count, err := writeChunks(ctx, src, source, outputDir, base, ext, chunkSize, tracker)
	if err != nil {
		return count, err
	}
	tracker.Finish()
	return count, nil
}

// writeChunks copies src into consecutive chunks of chunkSize bytes. Errors
// are attributed to source when reading and to the chunk when writing.
func writeChunks(ctx context.Context, src io.Reader, source, outputDir, base, ext string, chunkSize int64, tracker *progress.Tracker) (int, error) {
	const op = "split"

	buf := make([]byte, progress.BufferSize)
	count := 0
	for {
		// read ahead one block so no empty trailing chunk is created
		n, rerr := io.ReadFull(src, buf[:min(int64(len(buf)), chunkSize)])
		failed := rerr != nil && !errors.Is(rerr, io.EOF) && !errors.Is(rerr, io.ErrUnexpectedEOF)
		if n == 0 {
			if failed {
				return count, fault.IO(op, source, rerr)
			}
			return count, nil
		}
		count++
		part := filepath.Join(outputDir, chunkname.Generate(base, count, ext))
		if failed {
			// keep what was read, then stop
			if err := writeChunk(ctx, part, buf, n, src, int64(n), tracker); err != nil {
				return count, ioFault(op, source, part, err)
			}
			return count, fault.IO(op, source, rerr)
		}
		if err := writeChunk(ctx, part, buf, n, src, chunkSize, tracker); err != nil {
			return count, ioFault(op, source, part, err)
		}
	}
}

// writeChunk writes the first n bytes of buf followed by up to
// chunkSize-n more bytes from src into path.
func writeChunk(ctx context.Context, path string, buf []byte, n int, src io.Reader, chunkSize int64, tracker *progress.Tracker) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(buf[:n]); err != nil {
		return err
	}
	tracker.Add(int64(n))

	if _, err := progress.Copy(ctx, f, io.LimitReader(src, chunkSize-int64(n)), buf, tracker); err != nil {
		return err
	}
	return f.Close()
}

// ioFault attributes err to the source when it came from reading, otherwise
// to the chunk being written.
func ioFault(op, source, part string, err error) error {
	var re *progress.ReadError
	if errors.As(err, &re) {
		return fault.IO(op, source, re.Err)
	}
	return fault.IO(op, part, err)
}
