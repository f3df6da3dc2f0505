package chunkname

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		base  string
		index int
		ext   string
		want  string
	}{
		{"x", 1, ".ext", "x_01.ext"},
		{"report", 12, ".pdf", "report_12.pdf"},
		{"big", 123, ".iso", "big_123.iso"},
		{"Makefile", 3, "", "Makefile_03"},
		{"a_b", 1, ".txt", "a_b_01.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Generate(tt.base, tt.index, tt.ext))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Name
		ok   bool
	}{
		{"x_01.ext", Name{"x", 1, ".ext"}, true},
		{"a_b_01.txt", Name{"a_b", 1, ".txt"}, true},
		{"a_1_2.txt", Name{"a_1", 2, ".txt"}, true},
		{"big_123.iso", Name{"big", 123, ".iso"}, true},
		{"data_7.log", Name{"data", 7, ".log"}, true},
		{"Makefile_02", Name{"Makefile", 2, ""}, true},
		{"a__01.txt", Name{"a_", 1, ".txt"}, true},
		{"notes.txt", Name{}, false},
		{"x_00.bin", Name{}, false},
		{"_01.txt", Name{}, false},
		{"x_01.", Name{}, false},
		{"x_0a.bin", Name{}, false},
		{"x_.bin", Name{}, false},
		{"x_01.tar.gz", Name{}, false},
		{"x_99999999999999999999.bin", Name{}, false},
		{"!merge_order.txt", Name{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenerateRoundTrip(t *testing.T) {
	bases := []string{"x", "report", "a_b", "my file", "v1.2"}
	exts := []string{".txt", ".pdf", ".bin", ""}
	for _, base := range bases {
		for _, ext := range exts {
			if ext == "" && base == "v1.2" {
				// "v1.2_01" carries its own extension.
				continue
			}
			for index := 1; index <= 99; index++ {
				name := Generate(base, index, ext)
				got, ok := Parse(name)
				if assert.True(t, ok, name) {
					assert.Equal(t, Name{base, index, ext}, got, name)
					assert.Equal(t, name, got.String())
				}
			}
		}
	}
}

func TestSplitExtRoundTrip(t *testing.T) {
	for _, src := range []string{"report.pdf", "archive.tar.gz", "Makefile", "a_b.txt"} {
		base, ext := SplitExt(src)
		n, ok := Parse(Generate(base, 5, ext))
		assert.True(t, ok, src)
		assert.Equal(t, src, n.Key(), fmt.Sprintf("key for %s", src))
	}
}

func TestShapeAcceptsZero(t *testing.T) {
	base, digits, ext, ok := Shape("data_00.bin")
	assert.True(t, ok)
	assert.Equal(t, "data", base)
	assert.Equal(t, "00", digits)
	assert.Equal(t, ".bin", ext)
}
