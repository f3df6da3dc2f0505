package group

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansecio/splitmerge/internal/fault"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func groupOf(indices ...int) *Group {
	g := &Group{Key: "x.bin"}
	for _, i := range indices {
		g.Members = append(g.Members, Member{Index: i})
	}
	return g
}

func TestValid(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    bool
	}{
		{"contiguous", []int{1, 2, 3}, true},
		{"pair", []int{1, 2}, true},
		{"gap", []int{1, 2, 4}, false},
		{"not from one", []int{2, 3, 4}, false},
		{"single", []int{1}, false},
		{"empty", nil, false},
		{"duplicate", []int{1, 1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, groupOf(tt.indices...).Valid())
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_b_02.txt", "a_b_01.txt", "report_1.pdf", "notes.txt", "c_01.log")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d_01.bin"), 0o755))

	groups, err := Detector{}.Scan(dir)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	ab := groups["a_b.txt"]
	require.NotNil(t, ab)
	assert.Equal(t, []string{filepath.Join(dir, "a_b_01.txt"), filepath.Join(dir, "a_b_02.txt")}, ab.Paths())
	assert.True(t, ab.Valid())

	assert.Contains(t, groups, "report.pdf")
	assert.Contains(t, groups, "c.log")
	assert.NotContains(t, groups, "d.bin")
}

func TestScanMissingDir(t *testing.T) {
	_, err := Detector{}.Scan(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, fault.InvalidInput))
}

func TestTargetSingleGroup(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "report_02.pdf", "report_01.pdf", "notes.txt")

	key, files, err := Detector{}.Target(dir)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", key)
	assert.Equal(t, []string{filepath.Join(dir, "report_01.pdf"), filepath.Join(dir, "report_02.pdf")}, files)
}

func TestTargetIgnoresInvalidGroups(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_01.bin", "a_02.bin", "b_01.bin", "c_02.bin", "c_03.bin", "d_01.bin", "d_03.bin")

	key, _, err := Detector{}.Target(dir)
	require.NoError(t, err)
	assert.Equal(t, "a.bin", key)
}

func TestTargetNone(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt", "x_01.bin")

	_, _, err := Detector{}.Target(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.AmbiguousGroup))
	assert.Contains(t, err.Error(), "no valid chunk group")
}

func TestTargetMultiple(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_01.log", "b_02.log", "a_01.bin", "a_02.bin")

	_, _, err := Detector{}.Target(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.AmbiguousGroup))

	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"a.bin", "b.log"}, fe.Candidates)
	assert.Contains(t, err.Error(), "a.bin, b.log")
}

func TestTargetMatchDisambiguates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_01.log", "b_02.log", "a_01.bin", "a_02.bin")

	m, err := CompileMatch("*.log")
	require.NoError(t, err)

	key, files, err := Detector{Match: m}.Target(dir)
	require.NoError(t, err)
	assert.Equal(t, "b.log", key)
	assert.Len(t, files, 2)
}

func TestCompileMatch(t *testing.T) {
	g, err := CompileMatch("")
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = CompileMatch("[")
	assert.True(t, errors.Is(err, fault.InvalidConfiguration))
}
