// Package size parses and formats chunk sizes given on the command line.
package size

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sansecio/splitmerge/internal/fault"
)

// DefaultChunk is the chunk size used when none is given.
const DefaultChunk = 100 * humanize.MiByte

// A bare number is MiB. K, M, G and T are binary multiples with or without a
// trailing B (or iB); a lone B means bytes.
var sizeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:([KMGT])(?:I?B)?|(B))?$`)

// Parse converts s to a byte count.
func Parse(s string) (int64, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return 0, fault.New(fault.InvalidConfiguration, "size", "", "empty chunk size")
	}
	m := sizeRe.FindStringSubmatch(in)
	if m == nil {
		return 0, fault.New(fault.InvalidConfiguration, "size", "", "unrecognized chunk size %q (try 100, 512K, 100M, 2GB)", s)
	}

	var expr string
	switch {
	case m[3] != "":
		expr = m[1] + "B"
	case m[2] != "":
		expr = m[1] + m[2] + "iB"
	default:
		expr = m[1] + "MiB"
	}
	n, err := humanize.ParseBytes(expr)
	if err != nil {
		return 0, &fault.Error{Kind: fault.InvalidConfiguration, Op: "size", Msg: "unrecognized chunk size " + s, Err: err}
	}
	if n == 0 || n > 1<<62 {
		return 0, fault.New(fault.InvalidConfiguration, "size", "", "chunk size must be between 1 byte and 4 EiB, got %q", s)
	}
	return int64(n), nil
}

// Format renders n bytes for humans, e.g. "100 MiB".
func Format(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
