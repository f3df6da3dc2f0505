// Package chunkname implements the base_NN.ext naming convention used for
// chunk files. The numeric suffix is zero-padded to at least two digits and
// sits between the last underscore of the stem and the final dot.
package chunkname

import (
	"fmt"
	"strconv"
	"strings"
)

// Name is a parsed chunk filename.
type Name struct {
	Base  string
	Index int
	Ext   string // includes the leading dot, empty when the source had none
}

func (n Name) String() string {
	return Generate(n.Base, n.Index, n.Ext)
}

// Key returns the group key: the original filename before splitting.
func (n Name) Key() string {
	return n.Base + n.Ext
}

// Generate renders the chunk filename for index.
func Generate(base string, index int, ext string) string {
	return fmt.Sprintf("%s_%02d%s", base, index, ext)
}

// SplitExt splits filename at its final dot. The dot stays with ext.
func SplitExt(filename string) (base, ext string) {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return filename[:i], filename[i:]
	}
	return filename, ""
}

// Shape matches filename against base_<digits>[.ext] without interpreting the
// digits. The digit run is the text between the rightmost underscore of the
// stem and the final dot, so underscores inside base are preserved.
func Shape(filename string) (base, digits, ext string, ok bool) {
	stem, ext := SplitExt(filename)
	if ext == "." {
		return "", "", "", false
	}
	u := strings.LastIndexByte(stem, '_')
	if u <= 0 {
		return "", "", "", false
	}
	digits = stem[u+1:]
	if !isDigits(digits) {
		return "", "", "", false
	}
	return stem[:u], digits, ext, true
}

// Parse parses a chunk filename. It reports false when filename has no
// numeric suffix or the index is zero or out of range.
func Parse(filename string) (Name, bool) {
	base, digits, ext, ok := Shape(filename)
	if !ok {
		return Name{}, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return Name{}, false
	}
	return Name{Base: base, Index: index, Ext: ext}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
