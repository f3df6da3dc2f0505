package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	assert.True(t, Exists(existing))
	assert.False(t, Exists(filepath.Join(dir, "nope.txt")))

	dangling := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), dangling))
	assert.True(t, Exists(dangling))
	assert.False(t, IsFile(dangling))
}

func TestIsFileIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, IsFile(file))
	assert.False(t, IsDir(file))
	assert.True(t, IsDir(dir))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsEmptyDir(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), nil, 0o644))
	empty, err = IsEmptyDir(dir)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = IsEmptyDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"/tmp/a b.txt"`, "/tmp/a b.txt"},
		{`'/tmp/x'`, "/tmp/x"},
		{`  /tmp/plain  `, "/tmp/plain"},
		{`"/tmp/mismatch'`, `"/tmp/mismatch'`},
		{`"`, `"`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Unquote(tt.in), "input %q", tt.in)
	}
}
